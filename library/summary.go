// Copyright 2026
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package library

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xeonx/timeago"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Summary returns a completeness report for the library in markdown
func (myLibrary *Library) Summary(ctx context.Context) (string, error) {
	p := message.NewPrinter(language.English)
	builder := strings.Builder{}

	if _, err := builder.WriteString(fmt.Sprintf("# %s\n", myLibrary.Name)); err != nil {
		return "", err
	}

	if _, err := builder.WriteString("## Details\n\n"); err != nil {
		return "", err
	}

	// Database connection string
	if _, err := builder.WriteString(fmt.Sprintf("Database: %s\n\n", myLibrary.DBUrl)); err != nil {
		return "", err
	}

	counts, err := myLibrary.Counts(ctx)
	if err != nil {
		return "", err
	}

	if _, err := builder.WriteString(p.Sprintf("  * Funds Tracked: %d\n\n", counts.TotalFunds)); err != nil {
		return "", err
	}

	// Last index observation
	lastIndexDate, err := myLibrary.LastIndexDate(ctx)
	if err != nil {
		return "", err
	}

	age := timeago.English.Format(lastIndexDate)

	if lastIndexDate.Equal(time.Time{}) || lastIndexDate.Year() <= 1 {
		if _, err := builder.WriteString("Last Index Quote: Never\n\n"); err != nil {
			return "", err
		}
	} else {
		if _, err := builder.WriteString(fmt.Sprintf("Last Index Quote: %s (%s)\n\n", age, lastIndexDate.Local().Format("01/02/2006"))); err != nil {
			return "", err
		}
	}

	// Deficiency counts
	if _, err := builder.WriteString("## Deficiencies\n\n"); err != nil {
		return "", err
	}

	deficiencies := []struct {
		label string
		count int
	}{
		{"Missing Holdings", counts.MissingHoldings},
		{"Missing AUM", counts.MissingAum},
		{"Missing Benchmark", counts.MissingBenchmark},
		{"Holdings Out Of Tolerance", counts.HoldingsOutOfTolerance},
		{"Duplicate AUM", counts.DuplicateAum},
	}

	complete := true
	for _, deficiency := range deficiencies {
		if deficiency.count == 0 {
			continue
		}
		complete = false

		if _, err := builder.WriteString(p.Sprintf("  * %s: %d\n", deficiency.label, deficiency.count)); err != nil {
			return "", err
		}
	}

	if complete {
		if _, err := builder.WriteString("No deficiencies found.\n"); err != nil {
			return "", err
		}
	}

	if _, err := builder.WriteString("\n## Categories\n\n"); err != nil {
		return "", err
	}

	groups, err := myLibrary.CategoryGroups(ctx)
	if err != nil {
		return "", err
	}

	for _, group := range groups {
		subcategory := group.Subcategory
		if subcategory == "" {
			subcategory = "Uncategorized"
		}

		if _, err := builder.WriteString(p.Sprintf("  * %s / %s: %d funds\n", group.Category, subcategory, group.FundCount)); err != nil {
			return "", err
		}
	}

	return builder.String(), nil
}

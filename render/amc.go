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
package render

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// croreFigure matches an amount followed by a crore unit, e.g. "7,25,000
// crore" or "Rs. 54,000 Cr". Indian digit grouping is handled by stripping
// the commas.
var croreFigure = regexp.MustCompile(`([\d,]+(?:\.\d+)?)\s*(?:crores?|cr\.?)\b`)

// FetchAmcTotals renders the url and scans it for AMC-level asset totals in
// crores. Only names from amcNames are looked for; names not found on the
// page are simply absent from the result, and the caller falls back to its
// static table for them.
func FetchAmcTotals(ctx context.Context, fetcher Fetcher, url string, amcNames []string) (map[string]float64, error) {
	content, err := fetcher.FetchRendered(ctx, url)
	if err != nil {
		return nil, err
	}

	totals := ParseAmcTotals(content, amcNames)
	log.Info().Str("Url", url).Int("NumTotals", len(totals)).Msg("scraped amc asset totals")

	return totals, nil
}

// ParseAmcTotals extracts the first crore figure following each AMC name in
// the document.
func ParseAmcTotals(content string, amcNames []string) map[string]float64 {
	lowered := strings.ToLower(content)
	totals := make(map[string]float64, len(amcNames))

	for _, amcName := range amcNames {
		pos := strings.Index(lowered, strings.ToLower(amcName))
		if pos < 0 {
			continue
		}

		// the figure appears shortly after the name
		window := lowered[pos:]
		if len(window) > 500 {
			window = window[:500]
		}

		match := croreFigure.FindStringSubmatch(window)
		if match == nil {
			continue
		}

		crores, err := ParseCroreFigure(match[1])
		if err != nil {
			log.Warn().Err(err).Str("AmcName", amcName).Str("Figure", match[1]).
				Msg("could not parse crore figure")
			continue
		}

		totals[amcName] = crores
	}

	return totals
}

// ParseCroreFigure converts a comma-grouped amount such as "7,25,000" to a
// float.
func ParseCroreFigure(figure string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(figure, ",", ""), 64)
}

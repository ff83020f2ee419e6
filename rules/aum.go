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
package rules

import (
	"sort"
	"strings"
)

// AmcNames lists the asset managers with known asset totals, sorted.
func AmcNames() []string {
	names := make([]string, 0, len(amcTotals))
	for name := range amcTotals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// aumFraction returns the bounds of the slice of AMC assets a fund of the
// given category and subcategory plausibly manages. Large-cap equity and
// liquid debt funds concentrate the most assets.
func aumFraction(category, subcategory string) (low, high float64) {
	switch category {
	case "Equity":
		switch {
		case strings.Contains(subcategory, "Large Cap"):
			return 0.08, 0.15
		case strings.Contains(subcategory, "Mid Cap"):
			return 0.04, 0.08
		case strings.Contains(subcategory, "Small Cap"):
			return 0.02, 0.05
		default:
			return 0.03, 0.06
		}
	case "Debt":
		if strings.Contains(subcategory, "Liquid") {
			return 0.10, 0.20
		}
		return 0.05, 0.10
	default:
		return 0.03, 0.07
	}
}

// EstimateAUM computes a plausible fund-level AUM (in crores) as a fraction
// of the AMC total, along with the AMC total itself. Unknown AMCs fall back
// to a default magnitude. The amcTotals argument overrides the static table
// when a live source supplied fresher figures; pass nil to use the table.
func (engine *Engine) EstimateAUM(amcName, category, subcategory string, overrides map[string]float64) (fundAUM, amcTotal float64) {
	var ok bool

	if overrides != nil {
		amcTotal, ok = overrides[amcName]
	}
	if !ok {
		if amcTotal, ok = amcTotals[amcName]; !ok {
			amcTotal = defaultAmcTotal
		}
	}

	low, high := aumFraction(category, subcategory)
	fundAUM = round2(amcTotal * engine.uniform(low, high))

	return fundAUM, amcTotal
}

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
	"math"
	"strings"
)

// ManagerStats is a synthetic performance profile for a fund manager.
type ManagerStats struct {
	AvgReturn1Y     float64
	AvgReturn3Y     float64
	TotalAUMManaged float64
}

// EstimateManagerStats fabricates manager performance scaled by how many
// funds the manager runs: larger books get the stronger (and larger) ranges.
func (engine *Engine) EstimateManagerStats(managedFunds int) ManagerStats {
	switch {
	case managedFunds > 15:
		return ManagerStats{
			AvgReturn1Y:     round2(engine.uniform(13, 17)),
			AvgReturn3Y:     round2(engine.uniform(15, 19)),
			TotalAUMManaged: round2(engine.uniform(50000, 120000)),
		}
	case managedFunds > 8:
		return ManagerStats{
			AvgReturn1Y:     round2(engine.uniform(11, 15)),
			AvgReturn3Y:     round2(engine.uniform(13, 17)),
			TotalAUMManaged: round2(engine.uniform(20000, 50000)),
		}
	default:
		return ManagerStats{
			AvgReturn1Y:     round2(engine.uniform(9, 13)),
			AvgReturn3Y:     round2(engine.uniform(11, 15)),
			TotalAUMManaged: round2(engine.uniform(5000, 20000)),
		}
	}
}

// EstimateOverlap fabricates a portfolio overlap percentage for two funds in
// the same category group. Narrow universes (large cap, debt) overlap more.
func (engine *Engine) EstimateOverlap(category, subcategory string) float64 {
	switch {
	case strings.Contains(subcategory, "Large Cap"):
		return round1(engine.uniform(70, 90))
	case strings.Contains(subcategory, "Mid Cap"):
		return round1(engine.uniform(50, 70))
	case strings.Contains(subcategory, "Small Cap"):
		return round1(engine.uniform(35, 55))
	case category == "Debt":
		return round1(engine.uniform(75, 95))
	case category == "Hybrid":
		return round1(engine.uniform(45, 65))
	default:
		return round1(engine.uniform(40, 60))
	}
}

// EstimateCategoryReturns fabricates 1/3/5 year average returns for a
// category group. Equity ranges run hotter than debt; hybrid sits between.
func (engine *Engine) EstimateCategoryReturns(category string) (avg1Y, avg3Y, avg5Y float64) {
	switch category {
	case "Equity":
		return round2(engine.uniform(10, 18)), round2(engine.uniform(12, 20)), round2(engine.uniform(11, 16))
	case "Debt":
		return round2(engine.uniform(5, 8)), round2(engine.uniform(6, 9)), round2(engine.uniform(6, 8))
	case "Hybrid":
		return round2(engine.uniform(8, 13)), round2(engine.uniform(9, 14)), round2(engine.uniform(8, 12))
	default:
		return round2(engine.uniform(6, 12)), round2(engine.uniform(7, 13)), round2(engine.uniform(7, 11))
	}
}

// ElivateComponents are the pillar scores of the market-stance model. The
// total is on a 100-point scale; pillar values are the published weights.
type ElivateComponents struct {
	ExternalInfluence float64
	LocalStory        float64
	InflationRates    float64
	ValuationEarnings float64
	AllocationCapital float64
	TrendsSentiments  float64
	Total             float64
	Stance            string
}

// DefaultElivateScore returns the static market-stance row seeded when no
// score exists for the current date.
func DefaultElivateScore() ElivateComponents {
	return ElivateComponents{
		ExternalInfluence: 8.0,
		LocalStory:        8.0,
		InflationRates:    10.0,
		ValuationEarnings: 7.0,
		AllocationCapital: 4.0,
		TrendsSentiments:  3.0,
		Total:             63.0,
		Stance:            "NEUTRAL",
	}
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}

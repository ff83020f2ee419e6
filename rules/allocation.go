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
	"math/rand"
	"strings"
)

// Allocation is a single synthetic portfolio position.
type Allocation struct {
	Instrument string
	Sector     string
	Percent    float64
}

const (
	// ToleranceLow and ToleranceHigh bound the acceptable holdings total for a
	// fund; totals outside the band mark the fund for a normalization repair.
	ToleranceLow  = 95.0
	ToleranceHigh = 105.0

	equityCashReserve = 3.0
	debtCashReserve   = 2.0
	hybridCashReserve = 2.0

	// Per-position bounds for equity draws.
	minSlice = 0.5
	maxSlice = 8.0
)

// Engine generates synthetic portfolio allocations and AUM estimates. All
// generated figures are placeholder heuristics; the seed is explicit so runs
// are reproducible.
type Engine struct {
	rng *rand.Rand
}

func NewEngine(seed int64) *Engine {
	return &Engine{rng: rand.New(rand.NewSource(seed))}
}

// GenerateHoldings fabricates a portfolio for the given category and
// subcategory. The returned percentages always total exactly 100 (within
// float rounding): every position is rounded to two decimals and the last
// drawn position absorbs the exact remainder, so the invariant holds by
// construction rather than by a post-hoc rescale.
func (engine *Engine) GenerateHoldings(category, subcategory string) []Allocation {
	switch category {
	case "Equity":
		return engine.equityHoldings(subcategory)
	case "Debt":
		return engine.debtHoldings(subcategory)
	case "Hybrid":
		return engine.hybridHoldings(subcategory)
	default:
		return []Allocation{
			{Instrument: "Diversified Holdings", Sector: "Mixed", Percent: 100 - debtCashReserve},
			{Instrument: "Cash & Equivalents", Sector: "Cash", Percent: debtCashReserve},
		}
	}
}

func (engine *Engine) equityHoldings(subcategory string) []Allocation {
	var (
		pool        []Instrument
		numHoldings int
	)

	switch {
	case strings.Contains(subcategory, "Large Cap"):
		pool = equityUniverse[:20]
		numHoldings = engine.intRange(25, 35)
	case strings.Contains(subcategory, "Mid Cap"):
		pool = append(append([]Instrument{}, equityUniverse[20:36]...), equityUniverse[:5]...)
		numHoldings = engine.intRange(35, 45)
	case strings.Contains(subcategory, "Small Cap"):
		pool = append(append([]Instrument{}, equityUniverse[36:]...), equityUniverse[20:25]...)
		numHoldings = engine.intRange(40, 50)
	default:
		pool = equityUniverse
		numHoldings = engine.intRange(30, 40)
	}

	if numHoldings > len(pool) {
		numHoldings = len(pool)
	}

	picks := engine.sample(pool, numHoldings)
	holdings := engine.distributeBounded(picks, 100-equityCashReserve)

	return append(holdings, Allocation{Instrument: "Cash & Equivalents", Sector: "Cash", Percent: equityCashReserve})
}

func (engine *Engine) debtHoldings(subcategory string) []Allocation {
	var picks []Instrument

	switch {
	case strings.Contains(subcategory, "Liquid"):
		// short-dated instruments only
		picks = []Instrument{debtUniverse[5], debtUniverse[6], debtUniverse[7], debtUniverse[2]}
	case strings.Contains(subcategory, "Gilt"):
		// government paper only
		picks = []Instrument{debtUniverse[0], debtUniverse[1], debtUniverse[6]}
	default:
		picks = engine.sample(debtUniverse, 6)
	}

	holdings := engine.distributeEven(picks, 100-debtCashReserve)

	return append(holdings, Allocation{Instrument: "Cash & Equivalents", Sector: "Cash", Percent: debtCashReserve})
}

func (engine *Engine) hybridHoldings(subcategory string) []Allocation {
	var equityShare float64

	switch {
	case strings.Contains(subcategory, "Aggressive"):
		equityShare = engine.uniform(65, 80)
	case strings.Contains(subcategory, "Conservative"):
		equityShare = engine.uniform(10, 25)
	default:
		equityShare = engine.uniform(40, 60)
	}

	equityShare = round2(equityShare)
	debtShare := round2(100 - hybridCashReserve - equityShare)

	stocks := engine.sample(equityUniverse[:30], engine.intRange(15, 25))
	holdings := engine.distributeEven(stocks, equityShare)

	bonds := engine.sample(debtUniverse[:6], 4)
	holdings = append(holdings, engine.distributeEven(bonds, debtShare)...)

	return append(holdings, Allocation{Instrument: "Cash & Equivalents", Sector: "Cash", Percent: hybridCashReserve})
}

// distributeBounded assigns each instrument a percentage drawn from
// [minSlice, maxSlice], capping each draw so that every remaining instrument
// can still receive at least minSlice. The final instrument takes the exact
// remainder.
func (engine *Engine) distributeBounded(picks []Instrument, target float64) []Allocation {
	holdings := make([]Allocation, 0, len(picks))
	remaining := target

	for i, instrument := range picks {
		var pct float64

		if i == len(picks)-1 {
			pct = round2(remaining)
		} else {
			left := float64(len(picks) - i - 1)
			ceiling := math.Min(remaining-left*minSlice, maxSlice)
			if ceiling < minSlice {
				ceiling = minSlice
			}
			pct = round2(engine.uniform(minSlice, ceiling))
		}

		holdings = append(holdings, Allocation{Instrument: instrument.Name, Sector: instrument.Sector, Percent: pct})
		remaining = round2(remaining - pct)
	}

	return holdings
}

// distributeEven splits target evenly across the instruments with ±15%
// jitter per draw; the final instrument takes the exact remainder.
func (engine *Engine) distributeEven(picks []Instrument, target float64) []Allocation {
	holdings := make([]Allocation, 0, len(picks))
	remaining := target

	for i, instrument := range picks {
		var pct float64

		if i == len(picks)-1 {
			pct = round2(remaining)
		} else {
			share := remaining / float64(len(picks)-i)
			pct = round2(share * engine.uniform(0.85, 1.15))
		}

		holdings = append(holdings, Allocation{Instrument: instrument.Name, Sector: instrument.Sector, Percent: pct})
		remaining = round2(remaining - pct)
	}

	return holdings
}

// NormalizeHoldings rescales a drifted allocation set so its total equals
// target. It is a repair utility for rows already stored out of tolerance;
// freshly generated allocations never need it.
func NormalizeHoldings(holdings []Allocation, target float64) []Allocation {
	total := SumPercent(holdings)
	if total == 0 {
		return holdings
	}

	normalized := make([]Allocation, len(holdings))
	for i, holding := range holdings {
		holding.Percent = round2(holding.Percent * target / total)
		normalized[i] = holding
	}

	// rounding drift lands on the largest position
	if len(normalized) > 0 {
		largest := 0
		for i := range normalized {
			if normalized[i].Percent > normalized[largest].Percent {
				largest = i
			}
		}
		normalized[largest].Percent = round2(normalized[largest].Percent + target - SumPercent(normalized))
	}

	return normalized
}

// SumPercent totals the percentage column of an allocation set.
func SumPercent(holdings []Allocation) float64 {
	var total float64
	for _, holding := range holdings {
		total += holding.Percent
	}
	return round2(total)
}

func (engine *Engine) sample(pool []Instrument, n int) []Instrument {
	if n > len(pool) {
		n = len(pool)
	}

	picks := make([]Instrument, n)
	for i, j := range engine.rng.Perm(len(pool))[:n] {
		picks[i] = pool[j]
	}

	return picks
}

func (engine *Engine) intRange(low, high int) int {
	return low + engine.rng.Intn(high-low+1)
}

func (engine *Engine) uniform(low, high float64) float64 {
	return low + engine.rng.Float64()*(high-low)
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

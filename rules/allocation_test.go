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
package rules_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fundlens/mfdata/rules"
)

var _ = Describe("GenerateHoldings", func() {
	var engine *rules.Engine

	BeforeEach(func() {
		engine = rules.NewEngine(42)
	})

	DescribeTable("totals exactly 100 for every category",
		func(category, subcategory string) {
			holdings := engine.GenerateHoldings(category, subcategory)
			Expect(rules.SumPercent(holdings)).To(BeNumerically("~", 100.0, 1e-6))
		},
		Entry("large cap equity", "Equity", "Large Cap"),
		Entry("mid cap equity", "Equity", "Mid Cap"),
		Entry("small cap equity", "Equity", "Small Cap"),
		Entry("flexi cap equity", "Equity", "Flexi Cap"),
		Entry("liquid debt", "Debt", "Liquid"),
		Entry("gilt debt", "Debt", "Gilt"),
		Entry("short duration debt", "Debt", "Short Duration"),
		Entry("aggressive hybrid", "Hybrid", "Aggressive Hybrid"),
		Entry("conservative hybrid", "Hybrid", "Conservative Hybrid"),
		Entry("balanced hybrid", "Hybrid", "Balanced Hybrid"),
		Entry("unknown category", "Other", ""),
	)

	It("never produces a negative or zero position", func() {
		for _, subcategory := range []string{"Large Cap", "Mid Cap", "Small Cap", ""} {
			holdings := engine.GenerateHoldings("Equity", subcategory)
			for _, holding := range holdings {
				Expect(holding.Percent).To(BeNumerically(">", 0),
					"position %s in %s", holding.Instrument, subcategory)
			}
		}
	})

	It("is deterministic for a fixed seed", func() {
		first := rules.NewEngine(7).GenerateHoldings("Equity", "Large Cap")
		second := rules.NewEngine(7).GenerateHoldings("Equity", "Large Cap")
		Expect(first).To(Equal(second))
	})

	It("reserves cash in every portfolio", func() {
		holdings := engine.GenerateHoldings("Equity", "Large Cap")
		last := holdings[len(holdings)-1]
		Expect(last.Instrument).To(Equal("Cash & Equivalents"))
		Expect(last.Percent).To(Equal(3.0))

		holdings = engine.GenerateHoldings("Debt", "Liquid")
		last = holdings[len(holdings)-1]
		Expect(last.Instrument).To(Equal("Cash & Equivalents"))
		Expect(last.Percent).To(Equal(2.0))
	})

	It("restricts liquid funds to short-dated instruments", func() {
		holdings := engine.GenerateHoldings("Debt", "Liquid")
		names := make([]string, 0, len(holdings))
		for _, holding := range holdings {
			names = append(names, holding.Instrument)
		}
		Expect(names).To(ConsistOf("Commercial Papers", "Treasury Bills",
			"Bank Fixed Deposits", "AAA Corporate Bonds", "Cash & Equivalents"))
	})

	It("restricts gilt funds to government paper", func() {
		holdings := engine.GenerateHoldings("Debt", "Gilt")
		for _, holding := range holdings {
			if holding.Sector == "Cash" {
				continue
			}
			Expect(holding.Sector).To(Equal("Government"))
		}
	})

	It("keeps the conservative hybrid equity share between 10 and 25 percent", func() {
		for seed := int64(0); seed < 50; seed++ {
			holdings := rules.NewEngine(seed).GenerateHoldings("Hybrid", "Conservative Hybrid")

			var equity float64
			for _, holding := range holdings {
				switch holding.Sector {
				case "Cash", "Government", "Corporate", "Money Market":
					// bond and cash side
				default:
					equity += holding.Percent
				}
			}

			Expect(equity).To(BeNumerically(">=", 10.0-1e-6), "seed %d", seed)
			Expect(equity).To(BeNumerically("<=", 25.0+1e-6), "seed %d", seed)
		}
	})

	It("mixes stocks and bonds in hybrid portfolios", func() {
		holdings := engine.GenerateHoldings("Hybrid", "Aggressive Hybrid")

		sectors := make(map[string]bool)
		for _, holding := range holdings {
			sectors[holding.Sector] = true
		}

		Expect(sectors).To(HaveKey("Cash"))
		// at least one bond sector present
		Expect(sectors["Government"] || sectors["Corporate"] || sectors["Money Market"]).To(BeTrue())
	})
})

var _ = Describe("NormalizeHoldings", func() {
	It("rescales a drifted allocation back to the target", func() {
		holdings := []rules.Allocation{
			{Instrument: "A", Percent: 60},
			{Instrument: "B", Percent: 30},
			{Instrument: "C", Percent: 20},
		}

		normalized := rules.NormalizeHoldings(holdings, 100)
		Expect(rules.SumPercent(normalized)).To(BeNumerically("~", 100.0, 1e-6))

		// relative order of magnitudes preserved
		Expect(normalized[0].Percent).To(BeNumerically(">", normalized[1].Percent))
		Expect(normalized[1].Percent).To(BeNumerically(">", normalized[2].Percent))
	})

	It("leaves an empty allocation alone", func() {
		Expect(rules.NormalizeHoldings(nil, 100)).To(BeNil())
	})
})

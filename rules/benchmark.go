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

import "strings"

// ResolveBenchmark picks the reference index for a fund. Resolution order:
//
//  1. exact (category, subcategory) lookup in the benchmark table
//  2. sector keyword scan over the fund name (first keywordRules entry that
//     matches wins)
//  3. per-category default, or FallbackBenchmark when the category itself is
//     unknown
//
// The final fallback makes the function total; it never returns an empty
// string.
func ResolveBenchmark(category, subcategory, fundName string) string {
	if category != "" && subcategory != "" {
		if benchmark, ok := benchmarkTable[categoryKey{category, subcategory}]; ok {
			return benchmark
		}
	}

	if fundName != "" {
		name := strings.ToLower(fundName)
		for _, rule := range keywordRules {
			for _, keyword := range rule.Keywords {
				if strings.Contains(name, keyword) {
					return rule.Benchmark
				}
			}
		}
	}

	if benchmark, ok := defaultBenchmarks[category]; ok {
		return benchmark
	}

	return FallbackBenchmark
}

// Benchmarks returns the distinct index names the resolver can produce,
// collected from the exact table, the keyword rules, the category defaults,
// and the final fallback. Every name has an IndexTickers entry, so assigned
// benchmarks always have a fetchable series.
func Benchmarks() []string {
	seen := make(map[string]bool)
	names := make([]string, 0, len(benchmarkTable))

	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	for _, name := range benchmarkTable {
		add(name)
	}
	for _, rule := range keywordRules {
		add(rule.Benchmark)
	}
	for _, name := range defaultBenchmarks {
		add(name)
	}
	add(FallbackBenchmark)

	return names
}

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
	"strings"
	"testing"
)

func buildDeficiencyQuery(t *testing.T, kind DeficiencyKind, limit uint64) (string, []interface{}) {
	t.Helper()

	predicate, err := deficiencyPredicate(kind)
	if err != nil {
		t.Fatalf("deficiencyPredicate(%s) returned error: %v", kind, err)
	}

	builder := psql.Select("f.id").From("funds f").Where(predicate).OrderBy("f.id")
	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		t.Fatalf("ToSql returned error: %v", err)
	}

	return query, args
}

func TestDeficiencyPredicateUnknownKind(t *testing.T) {
	if _, err := deficiencyPredicate(DeficiencyKind("bogus")); err == nil {
		t.Fatal("expected error for unknown deficiency kind")
	}
}

func TestMissingHoldingsQuery(t *testing.T) {
	query, args := buildDeficiencyQuery(t, MissingHoldings, 100)

	if !strings.Contains(query, "NOT EXISTS") || !strings.Contains(query, "portfolio_holdings") {
		t.Fatalf("expected set difference against portfolio_holdings, got: %s", query)
	}
	if !strings.Contains(query, "LIMIT 100") {
		t.Fatalf("expected limit clause, got: %s", query)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
}

func TestOutOfToleranceQueryCarriesBand(t *testing.T) {
	query, args := buildDeficiencyQuery(t, HoldingsOutOfTolerance, 0)

	if !strings.Contains(query, "HAVING SUM(holding_percent)") {
		t.Fatalf("expected HAVING clause on holdings total, got: %s", query)
	}
	// dollar placeholders for the tolerance band
	if !strings.Contains(query, "$1") || !strings.Contains(query, "$2") {
		t.Fatalf("expected dollar placeholders, got: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("expected tolerance band args, got %v", args)
	}
	if args[0].(float64) >= args[1].(float64) {
		t.Fatalf("expected low < high, got %v", args)
	}
	if strings.Contains(query, "LIMIT") {
		t.Fatalf("expected no limit clause when limit is 0, got: %s", query)
	}
}

func TestDuplicateAumQuery(t *testing.T) {
	query, _ := buildDeficiencyQuery(t, DuplicateAum, 0)

	if !strings.Contains(query, "COUNT(*) > 1") || !strings.Contains(query, "aum_analytics") {
		t.Fatalf("expected duplicate scan over aum_analytics, got: %s", query)
	}
}

func TestMissingBenchmarkQuery(t *testing.T) {
	query, _ := buildDeficiencyQuery(t, MissingBenchmark, 0)

	if !strings.Contains(query, "benchmark_name IS NULL") {
		t.Fatalf("expected null benchmark predicate, got: %s", query)
	}
}

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

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/fundlens/mfdata/data"
	"github.com/fundlens/mfdata/rules"
)

// DeficiencyKind names a class of funds the completeness scanner can detect.
type DeficiencyKind string

const (
	MissingHoldings        DeficiencyKind = "missing_holdings"
	MissingAum             DeficiencyKind = "missing_aum"
	MissingBenchmark       DeficiencyKind = "missing_benchmark"
	HoldingsOutOfTolerance DeficiencyKind = "holdings_out_of_tolerance"
	DuplicateAum           DeficiencyKind = "duplicate_aum"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// deficiencyPredicate returns the WHERE clause selecting funds deficient in
// the given way. The predicates are set differences against the dependent
// tables, so re-scanning after a fill pass reflects the rows just written.
func deficiencyPredicate(kind DeficiencyKind) (sq.Sqlizer, error) {
	switch kind {
	case MissingHoldings:
		return sq.Expr("NOT EXISTS (SELECT 1 FROM portfolio_holdings ph WHERE ph.fund_id = f.id)"), nil
	case MissingAum:
		return sq.Expr("NOT EXISTS (SELECT 1 FROM aum_analytics a WHERE a.fund_name = f.fund_name)"), nil
	case MissingBenchmark:
		return sq.Expr("(f.benchmark_name IS NULL OR f.benchmark_name = '')"), nil
	case HoldingsOutOfTolerance:
		return sq.Expr(`f.id IN (
			SELECT fund_id FROM portfolio_holdings
			GROUP BY fund_id
			HAVING SUM(holding_percent) < ? OR SUM(holding_percent) > ?)`,
			rules.ToleranceLow, rules.ToleranceHigh), nil
	case DuplicateAum:
		return sq.Expr(`f.fund_name IN (
			SELECT fund_name FROM aum_analytics
			GROUP BY fund_name
			HAVING COUNT(*) > 1)`), nil
	default:
		return nil, fmt.Errorf("unknown deficiency kind: %s", kind)
	}
}

// Deficient returns up to limit funds lacking the data named by kind,
// ordered by id so batched passes walk the universe deterministically.
// Safe to call repeatedly; a fund stops appearing once its gap is filled.
func (myLibrary *Library) Deficient(ctx context.Context, kind DeficiencyKind, limit uint64) ([]*data.Fund, error) {
	predicate, err := deficiencyPredicate(kind)
	if err != nil {
		return nil, err
	}

	builder := psql.Select(
		"f.id", "f.scheme_code", "f.fund_name", "f.amc_name",
		"coalesce(f.category, '') AS category",
		"coalesce(f.subcategory, '') AS subcategory",
		"coalesce(f.fund_manager, '') AS fund_manager",
		"coalesce(f.benchmark_name, '') AS benchmark_name").
		From("funds f").
		Where(predicate).
		OrderBy("f.id")

	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	var funds []*data.Fund
	if err := pgxscan.Select(ctx, myLibrary.Pool, &funds, query, args...); err != nil {
		return nil, err
	}

	return funds, nil
}

// DeficientCount counts funds lacking the data named by kind.
func (myLibrary *Library) DeficientCount(ctx context.Context, kind DeficiencyKind) (int, error) {
	predicate, err := deficiencyPredicate(kind)
	if err != nil {
		return 0, err
	}

	query, args, err := psql.Select("COUNT(*)").From("funds f").Where(predicate).ToSql()
	if err != nil {
		return 0, err
	}

	count := 0
	err = myLibrary.Pool.QueryRow(ctx, query, args...).Scan(&count)
	return count, err
}

// CompletenessCounts is the status report: how many funds lack each kind of
// dependent data, against the total universe.
type CompletenessCounts struct {
	TotalFunds             int `csv:"total_funds"`
	MissingHoldings        int `csv:"missing_holdings"`
	MissingAum             int `csv:"missing_aum"`
	MissingBenchmark       int `csv:"missing_benchmark"`
	HoldingsOutOfTolerance int `csv:"holdings_out_of_tolerance"`
	DuplicateAum           int `csv:"duplicate_aum"`
}

// Counts runs every deficiency scan and returns the tallies.
func (myLibrary *Library) Counts(ctx context.Context) (*CompletenessCounts, error) {
	counts := &CompletenessCounts{}

	total, err := myLibrary.TotalFunds(ctx)
	if err != nil {
		return nil, err
	}
	counts.TotalFunds = total

	tallies := []struct {
		kind DeficiencyKind
		dest *int
	}{
		{MissingHoldings, &counts.MissingHoldings},
		{MissingAum, &counts.MissingAum},
		{MissingBenchmark, &counts.MissingBenchmark},
		{HoldingsOutOfTolerance, &counts.HoldingsOutOfTolerance},
		{DuplicateAum, &counts.DuplicateAum},
	}

	for _, tally := range tallies {
		count, err := myLibrary.DeficientCount(ctx, tally.kind)
		if err != nil {
			return nil, err
		}
		*tally.dest = count
	}

	return counts, nil
}

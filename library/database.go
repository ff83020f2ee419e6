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
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fundlens/mfdata/data"
)

// Library wraps the analytics database this tool fills. All reads and writes
// flow through a single pool created at startup; business logic receives the
// library as a constructor argument and never touches the environment.
type Library struct {
	DBUrl string
	Name  string

	Pool *pgxpool.Pool
}

// Connect to the database configured for the library
func (myLibrary *Library) Connect(ctx context.Context) error {
	if myLibrary.Pool != nil {
		return nil
	}

	pool, err := pgxpool.New(ctx, myLibrary.DBUrl)
	if err != nil {
		return err
	}
	myLibrary.Pool = pool

	return nil
}

// Close the database pool
func (myLibrary *Library) Close() {
	myLibrary.Pool.Close()
}

// NewFromDB creates a library object connected to the given database and
// verifies the connection with a ping.
func NewFromDB(ctx context.Context, dbURL string) (*Library, error) {
	myLibrary := &Library{DBUrl: dbURL}
	if err := myLibrary.Connect(ctx); err != nil {
		return nil, err
	}

	if err := myLibrary.Pool.Ping(ctx); err != nil {
		myLibrary.Close()
		return nil, err
	}

	return myLibrary, nil
}

// TotalFunds returns the size of the fund universe.
func (myLibrary *Library) TotalFunds(ctx context.Context) (int, error) {
	count := 0
	err := myLibrary.Pool.QueryRow(ctx, "SELECT count(*) FROM funds").Scan(&count)
	return count, err
}

// FundsByCategory returns funds grouped for overlap analysis, ordered so
// funds of the same category and subcategory are adjacent.
func (myLibrary *Library) FundsByCategory(ctx context.Context, limit int) ([]*data.Fund, error) {
	var funds []*data.Fund
	err := pgxscan.Select(ctx, myLibrary.Pool, &funds, `
		SELECT id, scheme_code, fund_name, amc_name, category,
			coalesce(subcategory, '') AS subcategory,
			coalesce(fund_manager, '') AS fund_manager,
			coalesce(benchmark_name, '') AS benchmark_name
		FROM funds
		WHERE category IN ('Equity', 'Debt', 'Hybrid')
		ORDER BY category, subcategory, id
		LIMIT $1`, limit)
	return funds, err
}

// ManagerBook is a fund manager with the number of funds they run.
type ManagerBook struct {
	ManagerName string `db:"manager_name"`
	FundCount   int    `db:"fund_count"`
	AmcName     string `db:"amc_name"`
}

// ManagersWithoutAnalytics lists managers that have no row in
// manager_analytics yet, largest books first.
func (myLibrary *Library) ManagersWithoutAnalytics(ctx context.Context) ([]*ManagerBook, error) {
	var managers []*ManagerBook
	err := pgxscan.Select(ctx, myLibrary.Pool, &managers, `
		SELECT f.fund_manager AS manager_name, COUNT(*) AS fund_count, MAX(f.amc_name) AS amc_name
		FROM funds f
		LEFT JOIN manager_analytics m ON f.fund_manager = m.manager_name
		WHERE f.fund_manager IS NOT NULL
			AND f.fund_manager != ''
			AND m.manager_name IS NULL
		GROUP BY f.fund_manager
		ORDER BY COUNT(*) DESC`)
	return managers, err
}

// CategoryGroup is a (category, subcategory) pair and its fund count.
type CategoryGroup struct {
	Category    string `db:"category"`
	Subcategory string `db:"subcategory"`
	FundCount   int    `db:"fund_count"`
}

// CategoryGroups enumerates the populated (category, subcategory) pairs.
func (myLibrary *Library) CategoryGroups(ctx context.Context) ([]*CategoryGroup, error) {
	var groups []*CategoryGroup
	err := pgxscan.Select(ctx, myLibrary.Pool, &groups, `
		SELECT category, coalesce(subcategory, '') AS subcategory, COUNT(*) AS fund_count
		FROM funds
		WHERE category IS NOT NULL AND category != ''
		GROUP BY category, subcategory
		ORDER BY category, subcategory`)
	return groups, err
}

// LastIndexDate returns the most recent market_indices observation, or the
// zero time when the table is empty.
func (myLibrary *Library) LastIndexDate(ctx context.Context) (time.Time, error) {
	var lastDate time.Time
	err := myLibrary.Pool.QueryRow(ctx,
		"SELECT coalesce(max(index_date), '0001-01-01'::date) FROM market_indices").Scan(&lastDate)
	return lastDate, err
}

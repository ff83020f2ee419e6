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
package data

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Fund is a row of the fund master. The upstream import process owns the
// table; this system only fills benchmark_name and produces dependent rows.
type Fund struct {
	ID            int64  `db:"id"`
	SchemeCode    string `db:"scheme_code"`
	FundName      string `db:"fund_name"`
	AmcName       string `db:"amc_name"`
	Category      string `db:"category"`
	Subcategory   string `db:"subcategory"`
	FundManager   string `db:"fund_manager"`
	BenchmarkName string `db:"benchmark_name"`
}

// BenchmarkAssignment pairs a fund with its resolved benchmark.
type BenchmarkAssignment struct {
	FundID    int64
	Benchmark string
}

// SaveBenchmarkAssignments updates funds.benchmark_name in bulk. Returns the
// number of rows updated; individual failures are logged and skipped.
func SaveBenchmarkAssignments(ctx context.Context, conn *pgxpool.Conn, assignments []*BenchmarkAssignment) int64 {
	batch := &pgx.Batch{}
	for _, assignment := range assignments {
		batch.Queue(`UPDATE funds SET benchmark_name = $1 WHERE id = $2`,
			assignment.Benchmark, assignment.FundID)
	}

	results := conn.SendBatch(ctx, batch)
	defer func() {
		if err := results.Close(); err != nil {
			log.Error().Err(err).Msg("error closing benchmark assignment batch")
		}
	}()

	var updated int64
	for _, assignment := range assignments {
		tag, err := results.Exec()
		if err != nil {
			log.Error().Err(err).Int64("FundID", assignment.FundID).Msg("error saving benchmark assignment")
			continue
		}
		updated += tag.RowsAffected()
	}

	return updated
}

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
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// AumRecord stores a fund's assets under management (crores) alongside the
// AMC-level total it was derived from. At most one row exists per fund name.
type AumRecord struct {
	AmcName        string    `db:"amc_name"`
	FundName       string    `db:"fund_name"`
	AumCrores      float64   `db:"aum_crores"`
	TotalAumCrores float64   `db:"total_aum_crores"`
	Category       string    `db:"category"`
	DataDate       time.Time `db:"data_date"`
	Source         string    `db:"source"`
}

// SaveAumRecords bulk-inserts AUM rows, ignoring conflicts on fund_name so a
// fund backfilled by an earlier pass keeps its original figure.
func SaveAumRecords(ctx context.Context, conn *pgxpool.Conn, records []*AumRecord) int64 {
	batch := &pgx.Batch{}
	for _, record := range records {
		batch.Queue(`INSERT INTO aum_analytics (
			"amc_name",
			"fund_name",
			"aum_crores",
			"total_aum_crores",
			"category",
			"data_date",
			"source"
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) ON CONFLICT (fund_name) DO NOTHING`,
			record.AmcName, record.FundName, record.AumCrores,
			record.TotalAumCrores, record.Category, record.DataDate,
			record.Source)
	}

	results := conn.SendBatch(ctx, batch)
	defer func() {
		if err := results.Close(); err != nil {
			log.Error().Err(err).Msg("error closing aum batch")
		}
	}()

	var inserted int64
	for _, record := range records {
		tag, err := results.Exec()
		if err != nil {
			log.Error().Err(err).Str("FundName", record.FundName).Msg("error saving aum record")
			continue
		}
		inserted += tag.RowsAffected()
	}

	return inserted
}

// DeleteDuplicateAum removes all but the oldest AUM row per fund name.
// Databases created with the current schema never accumulate duplicates;
// this repairs ones populated before the unique constraint existed.
func DeleteDuplicateAum(ctx context.Context, conn *pgxpool.Conn) (int64, error) {
	tag, err := conn.Exec(ctx, `
		DELETE FROM aum_analytics a
		WHERE a.id NOT IN (
			SELECT MIN(id)
			FROM aum_analytics
			GROUP BY fund_name
		)`)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

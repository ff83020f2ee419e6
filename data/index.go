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

// IndexQuote is one day of a benchmark index series. Valuation ratios are
// nil when the market-data source does not publish them.
type IndexQuote struct {
	IndexName     string    `json:"index_name" db:"index_name"`
	Date          time.Time `json:"index_date" db:"index_date"`
	Open          float64   `json:"open_value" db:"open_value"`
	High          float64   `json:"high_value" db:"high_value"`
	Low           float64   `json:"low_value" db:"low_value"`
	Close         float64   `json:"close_value" db:"close_value"`
	Volume        int64     `json:"volume" db:"volume"`
	PERatio       *float64  `json:"pe_ratio" db:"pe_ratio"`
	PBRatio       *float64  `json:"pb_ratio" db:"pb_ratio"`
	DividendYield *float64  `json:"dividend_yield" db:"dividend_yield"`
}

// SaveIndexQuotes upserts a series keyed by (index_name, index_date) with
// last-write-wins on the numeric fields.
func SaveIndexQuotes(ctx context.Context, conn *pgxpool.Conn, quotes []*IndexQuote) int64 {
	batch := &pgx.Batch{}
	for _, quote := range quotes {
		batch.Queue(`INSERT INTO market_indices (
			"index_name",
			"close_value",
			"open_value",
			"high_value",
			"low_value",
			"volume",
			"pe_ratio",
			"pb_ratio",
			"dividend_yield",
			"index_date"
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) ON CONFLICT (index_name, index_date) DO UPDATE SET
			close_value = EXCLUDED.close_value,
			open_value = EXCLUDED.open_value,
			high_value = EXCLUDED.high_value,
			low_value = EXCLUDED.low_value,
			volume = EXCLUDED.volume`,
			quote.IndexName, quote.Close, quote.Open, quote.High, quote.Low,
			quote.Volume, quote.PERatio, quote.PBRatio, quote.DividendYield,
			quote.Date)
	}

	results := conn.SendBatch(ctx, batch)
	defer func() {
		if err := results.Close(); err != nil {
			log.Error().Err(err).Msg("error closing index quote batch")
		}
	}()

	var saved int64
	for _, quote := range quotes {
		tag, err := results.Exec()
		if err != nil {
			log.Error().Err(err).Str("IndexName", quote.IndexName).Time("Date", quote.Date).
				Msg("error saving index quote")
			continue
		}
		saved += tag.RowsAffected()
	}

	return saved
}

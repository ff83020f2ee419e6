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

// Holding is a single portfolio position of a fund on a given date. The
// percentages of a fund's holdings for one date must total 100 within the
// configured tolerance band.
type Holding struct {
	FundID         int64     `db:"fund_id" parquet:"name=fund_id, type=INT64"`
	StockName      string    `db:"stock_name" parquet:"name=stock_name, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Sector         string    `db:"sector" parquet:"name=sector, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	HoldingPercent float64   `db:"holding_percent" parquet:"name=holding_percent, type=DOUBLE"`
	HoldingDate    time.Time `db:"holding_date"`

	// HoldingDateStr mirrors HoldingDate for the parquet snapshot writer,
	// which has no native date type.
	HoldingDateStr string `db:"-" parquet:"name=holding_date, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
}

// SaveHoldings bulk-inserts holdings with conflict-ignore semantics on the
// (fund_id, stock_name, holding_date) natural key, so repeated fill runs
// never duplicate positions. Per-row failures are logged and skipped.
func SaveHoldings(ctx context.Context, conn *pgxpool.Conn, holdings []*Holding) int64 {
	batch := &pgx.Batch{}
	for _, holding := range holdings {
		batch.Queue(`INSERT INTO portfolio_holdings (
			"fund_id",
			"stock_name",
			"sector",
			"holding_percent",
			"holding_date"
		) VALUES (
			$1, $2, $3, $4, $5
		) ON CONFLICT (fund_id, stock_name, holding_date) DO NOTHING`,
			holding.FundID, holding.StockName, holding.Sector,
			holding.HoldingPercent, holding.HoldingDate)
	}

	results := conn.SendBatch(ctx, batch)
	defer func() {
		if err := results.Close(); err != nil {
			log.Error().Err(err).Msg("error closing holdings batch")
		}
	}()

	var inserted int64
	for _, holding := range holdings {
		tag, err := results.Exec()
		if err != nil {
			log.Error().Err(err).Int64("FundID", holding.FundID).Str("StockName", holding.StockName).
				Msg("error saving holding")
			continue
		}
		inserted += tag.RowsAffected()
	}

	return inserted
}

// NormalizeHoldingTotals rescales every stored holding of funds whose totals
// fall outside [low, high] so the fund totals 100 again. Returns the number
// of holding rows touched.
func NormalizeHoldingTotals(ctx context.Context, conn *pgxpool.Conn, low, high float64) (int64, error) {
	tag, err := conn.Exec(ctx, `
		WITH holdings_totals AS (
			SELECT fund_id, SUM(holding_percent) AS total
			FROM portfolio_holdings
			GROUP BY fund_id
			HAVING SUM(holding_percent) < $1 OR SUM(holding_percent) > $2
		)
		UPDATE portfolio_holdings h
		SET holding_percent = h.holding_percent * 100.0 / ht.total
		FROM holdings_totals ht
		WHERE h.fund_id = ht.fund_id`, low, high)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

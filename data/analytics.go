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

// ManagerAnalytics aggregates a fund manager's book, keyed by
// (manager_name, analysis_date).
type ManagerAnalytics struct {
	ManagerName       string    `db:"manager_name"`
	ManagedFundsCount int       `db:"managed_funds_count"`
	TotalAumManaged   float64   `db:"total_aum_managed"`
	AvgPerformance1Y  float64   `db:"avg_performance_1y"`
	AvgPerformance3Y  float64   `db:"avg_performance_3y"`
	AnalysisDate      time.Time `db:"analysis_date"`
	Source            string    `db:"source"`
}

// CategoryPerformance aggregates returns per (category, subcategory,
// analysis_date); numeric fields are last-write-wins.
type CategoryPerformance struct {
	CategoryName string    `db:"category_name"`
	Subcategory  string    `db:"subcategory"`
	AvgReturn1Y  float64   `db:"avg_return_1y"`
	AvgReturn3Y  float64   `db:"avg_return_3y"`
	AvgReturn5Y  float64   `db:"avg_return_5y"`
	FundCount    int       `db:"fund_count"`
	AnalysisDate time.Time `db:"analysis_date"`
}

// PortfolioOverlap records the estimated holdings overlap of a fund pair.
type PortfolioOverlap struct {
	Fund1SchemeCode   string    `db:"fund1_scheme_code"`
	Fund1Name         string    `db:"fund1_name"`
	Fund2SchemeCode   string    `db:"fund2_scheme_code"`
	Fund2Name         string    `db:"fund2_name"`
	OverlapPercentage float64   `db:"overlap_percentage"`
	AnalysisDate      time.Time `db:"analysis_date"`
	Source            string    `db:"source"`
}

// ElivateScore is the market-stance scorecard, one row per score date.
type ElivateScore struct {
	ScoreDate              time.Time `db:"score_date"`
	ExternalInfluenceScore float64   `db:"external_influence_score"`
	LocalStoryScore        float64   `db:"local_story_score"`
	InflationRatesScore    float64   `db:"inflation_rates_score"`
	ValuationEarningsScore float64   `db:"valuation_earnings_score"`
	AllocationCapitalScore float64   `db:"allocation_capital_score"`
	TrendsSentimentsScore  float64   `db:"trends_sentiments_score"`
	TotalElivateScore      float64   `db:"total_elivate_score"`
	MarketStance           string    `db:"market_stance"`
}

// SaveManagerAnalytics inserts manager rows with conflict-ignore on
// (manager_name, analysis_date).
func SaveManagerAnalytics(ctx context.Context, conn *pgxpool.Conn, rows []*ManagerAnalytics) int64 {
	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(`INSERT INTO manager_analytics (
			"manager_name",
			"managed_funds_count",
			"total_aum_managed",
			"avg_performance_1y",
			"avg_performance_3y",
			"analysis_date",
			"source"
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) ON CONFLICT (manager_name, analysis_date) DO NOTHING`,
			row.ManagerName, row.ManagedFundsCount, row.TotalAumManaged,
			row.AvgPerformance1Y, row.AvgPerformance3Y, row.AnalysisDate,
			row.Source)
	}

	return execBatch(ctx, conn, batch, len(rows), "manager analytics")
}

// SaveCategoryPerformance upserts category rows keyed by (category_name,
// subcategory, analysis_date), refreshing the return figures.
func SaveCategoryPerformance(ctx context.Context, conn *pgxpool.Conn, rows []*CategoryPerformance) int64 {
	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(`INSERT INTO category_performance (
			"category_name",
			"subcategory",
			"avg_return_1y",
			"avg_return_3y",
			"avg_return_5y",
			"fund_count",
			"analysis_date"
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) ON CONFLICT (category_name, subcategory, analysis_date) DO UPDATE SET
			avg_return_1y = EXCLUDED.avg_return_1y,
			avg_return_3y = EXCLUDED.avg_return_3y,
			avg_return_5y = EXCLUDED.avg_return_5y,
			fund_count = EXCLUDED.fund_count`,
			row.CategoryName, row.Subcategory, row.AvgReturn1Y,
			row.AvgReturn3Y, row.AvgReturn5Y, row.FundCount, row.AnalysisDate)
	}

	return execBatch(ctx, conn, batch, len(rows), "category performance")
}

// SavePortfolioOverlaps inserts overlap rows with conflict-ignore on the
// (fund1, fund2, analysis_date) key.
func SavePortfolioOverlaps(ctx context.Context, conn *pgxpool.Conn, rows []*PortfolioOverlap) int64 {
	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(`INSERT INTO portfolio_overlap (
			"fund1_scheme_code",
			"fund1_name",
			"fund2_scheme_code",
			"fund2_name",
			"overlap_percentage",
			"analysis_date",
			"source"
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) ON CONFLICT (fund1_scheme_code, fund2_scheme_code, analysis_date) DO NOTHING`,
			row.Fund1SchemeCode, row.Fund1Name, row.Fund2SchemeCode,
			row.Fund2Name, row.OverlapPercentage, row.AnalysisDate, row.Source)
	}

	return execBatch(ctx, conn, batch, len(rows), "portfolio overlap")
}

// SaveElivateScore inserts the score row for its date if absent.
func (score *ElivateScore) SaveDB(ctx context.Context, conn *pgxpool.Conn) error {
	_, err := conn.Exec(ctx, `INSERT INTO elivate_scores (
		"score_date",
		"external_influence_score",
		"local_story_score",
		"inflation_rates_score",
		"valuation_earnings_score",
		"allocation_capital_score",
		"trends_sentiments_score",
		"total_elivate_score",
		"market_stance"
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9
	) ON CONFLICT (score_date) DO NOTHING`,
		score.ScoreDate, score.ExternalInfluenceScore, score.LocalStoryScore,
		score.InflationRatesScore, score.ValuationEarningsScore,
		score.AllocationCapitalScore, score.TrendsSentimentsScore,
		score.TotalElivateScore, score.MarketStance)

	return err
}

func execBatch(ctx context.Context, conn *pgxpool.Conn, batch *pgx.Batch, size int, label string) int64 {
	results := conn.SendBatch(ctx, batch)
	defer func() {
		if err := results.Close(); err != nil {
			log.Error().Err(err).Str("Batch", label).Msg("error closing batch")
		}
	}()

	var affected int64
	for i := 0; i < size; i++ {
		tag, err := results.Exec()
		if err != nil {
			log.Error().Err(err).Str("Batch", label).Msg("error saving row")
			continue
		}
		affected += tag.RowsAffected()
	}

	return affected
}

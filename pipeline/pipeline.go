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
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fundlens/mfdata/data"
	"github.com/fundlens/mfdata/library"
	"github.com/fundlens/mfdata/rules"
)

const (
	// ModeFillMissing only creates rows for funds lacking them.
	ModeFillMissing = "fill-missing"
	// ModeRepair fixes rows that exist but violate invariants.
	ModeRepair = "repair"

	// SourceSynthetic tags rows generated by the heuristic engine so they can
	// be told apart from scraped data.
	SourceSynthetic = "synthetic-fill"
)

// FillPhases names the selectable phases in run order. Repair-mode phases
// answer to the same names: holdings selects the totals rescale and aum the
// duplicate delete.
var FillPhases = []string{"benchmarks", "holdings", "aum", "analytics"}

// Pipeline drives the backfill phases against a fund library. Each phase
// scans for deficient funds in batches and generates the missing rows with
// the rules engine; passes repeat until the scan comes back empty, the pass
// budget is exhausted, or a pass makes no progress.
type Pipeline struct {
	Library   *library.Library
	Engine    *rules.Engine
	BatchSize uint64
	MaxPasses int

	// Phases restricts the run to the named FillPhases entries; empty means
	// run every phase of the mode.
	Phases []string

	// AmcTotals overrides the built-in AMC asset table with live figures;
	// nil means use the table.
	AmcTotals map[string]float64

	// Snapshot, when set, receives every batch of generated holdings for
	// audit archival. Snapshot failures are logged, never fatal.
	Snapshot func(ctx context.Context, holdings []*data.Holding) error
}

// Run executes the requested phases for the given mode and returns the
// summary. The
// summary's Success flag is false when any phase returned an error; the
// error is also returned for the caller's exit status.
func (pipeline *Pipeline) Run(ctx context.Context, mode string, seed int64) (*data.RunSummary, error) {
	summary := &data.RunSummary{
		RunID:     uuid.New().String(),
		Mode:      mode,
		Seed:      seed,
		StartTime: time.Now(),
		Phases:    make(map[string]*data.PhaseResult),
	}

	log.Info().Str("RunID", summary.RunID).Str("Mode", mode).Int64("Seed", seed).
		Strs("Phases", pipeline.Phases).Msg("starting run")

	err := pipeline.checkPhases()

	if err == nil {
		switch mode {
		case ModeFillMissing:
			err = pipeline.runFill(ctx, summary)
		case ModeRepair:
			err = pipeline.runRepair(ctx, summary)
		default:
			err = fmt.Errorf("unknown mode: %s", mode)
		}
	}

	summary.EndTime = time.Now()
	summary.Success = err == nil
	if err != nil {
		summary.Error = err.Error()
	}

	return summary, err
}

// checkPhases rejects phase names outside FillPhases before any phase runs.
func (pipeline *Pipeline) checkPhases() error {
	for _, name := range pipeline.Phases {
		known := false
		for _, phase := range FillPhases {
			if phase == name {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("unknown phase: %s", name)
		}
	}

	return nil
}

// selected reports whether the named phase is part of this run.
func (pipeline *Pipeline) selected(name string) bool {
	if len(pipeline.Phases) == 0 {
		return true
	}

	for _, phase := range pipeline.Phases {
		if phase == name {
			return true
		}
	}

	return false
}

func (pipeline *Pipeline) runFill(ctx context.Context, summary *data.RunSummary) error {
	phases := []struct {
		name string
		run  func(context.Context, *data.PhaseResult) error
	}{
		{"benchmarks", pipeline.fillBenchmarks},
		{"holdings", pipeline.fillHoldings},
		{"aum", pipeline.fillAum},
		{"analytics", pipeline.fillAnalytics},
	}

	for _, phase := range phases {
		if !pipeline.selected(phase.name) {
			continue
		}

		result := &data.PhaseResult{Phase: phase.name}
		summary.Phases[phase.name] = result

		log.Info().Str("Phase", phase.name).Msg("starting phase")
		if err := phase.run(ctx, result); err != nil {
			return fmt.Errorf("phase %s: %w", phase.name, err)
		}
		log.Info().Str("Phase", phase.name).Int("Passes", result.Passes).
			Int64("Scanned", result.Scanned).Int64("Inserted", result.Inserted).
			Int64("Updated", result.Updated).Msg("phase complete")
	}

	return nil
}

func (pipeline *Pipeline) runRepair(ctx context.Context, summary *data.RunSummary) error {
	phases := []struct {
		name string
		arg  string
		run  func(context.Context, *data.PhaseResult) error
	}{
		{"benchmarks", "benchmarks", pipeline.fillBenchmarks},
		{"normalize_holdings", "holdings", pipeline.normalizeHoldings},
		{"dedupe_aum", "aum", pipeline.dedupeAum},
	}

	for _, phase := range phases {
		if !pipeline.selected(phase.arg) {
			continue
		}

		result := &data.PhaseResult{Phase: phase.name}
		summary.Phases[phase.name] = result

		log.Info().Str("Phase", phase.name).Msg("starting phase")
		if err := phase.run(ctx, result); err != nil {
			return fmt.Errorf("phase %s: %w", phase.name, err)
		}
		log.Info().Str("Phase", phase.name).Int64("Updated", result.Updated).
			Int64("Deleted", result.Deleted).Msg("phase complete")
	}

	return nil
}

// eachPass runs scan-generate-save passes until the scan is empty, MaxPasses
// is reached, or a pass writes nothing. The no-progress guard stops a phase
// from spinning when every remaining deficient fund fails to save.
func (pipeline *Pipeline) eachPass(ctx context.Context, result *data.PhaseResult, kind library.DeficiencyKind,
	save func(context.Context, []*data.Fund) (int64, error)) error {
	for result.Passes < pipeline.MaxPasses {
		funds, err := pipeline.Library.Deficient(ctx, kind, pipeline.BatchSize)
		if err != nil {
			return err
		}

		if len(funds) == 0 {
			return nil
		}

		result.Passes++
		result.Scanned += int64(len(funds))

		written, err := save(ctx, funds)
		if err != nil {
			return err
		}

		if written == 0 {
			log.Warn().Str("Kind", string(kind)).Int("Pass", result.Passes).
				Msg("pass made no progress; stopping phase")
			return nil
		}
	}

	return nil
}

func (pipeline *Pipeline) fillBenchmarks(ctx context.Context, result *data.PhaseResult) error {
	return pipeline.eachPass(ctx, result, library.MissingBenchmark, func(ctx context.Context, funds []*data.Fund) (int64, error) {
		assignments := make([]*data.BenchmarkAssignment, 0, len(funds))
		for _, fund := range funds {
			assignments = append(assignments, &data.BenchmarkAssignment{
				FundID:    fund.ID,
				Benchmark: rules.ResolveBenchmark(fund.Category, fund.Subcategory, fund.FundName),
			})
		}

		conn, err := pipeline.Library.Pool.Acquire(ctx)
		if err != nil {
			return 0, err
		}
		defer conn.Release()

		updated := data.SaveBenchmarkAssignments(ctx, conn, assignments)
		result.Updated += updated
		return updated, nil
	})
}

func (pipeline *Pipeline) fillHoldings(ctx context.Context, result *data.PhaseResult) error {
	holdingDate := time.Now().Truncate(24 * time.Hour)

	return pipeline.eachPass(ctx, result, library.MissingHoldings, func(ctx context.Context, funds []*data.Fund) (int64, error) {
		holdings := make([]*data.Holding, 0, len(funds)*30)
		for _, fund := range funds {
			for _, allocation := range pipeline.Engine.GenerateHoldings(fund.Category, fund.Subcategory) {
				holdings = append(holdings, &data.Holding{
					FundID:         fund.ID,
					StockName:      allocation.Instrument,
					Sector:         allocation.Sector,
					HoldingPercent: allocation.Percent,
					HoldingDate:    holdingDate,
					HoldingDateStr: holdingDate.Format("2006-01-02"),
				})
			}
		}

		conn, err := pipeline.Library.Pool.Acquire(ctx)
		if err != nil {
			return 0, err
		}
		defer conn.Release()

		inserted := data.SaveHoldings(ctx, conn, holdings)
		result.Inserted += inserted

		if pipeline.Snapshot != nil {
			if err := pipeline.Snapshot(ctx, holdings); err != nil {
				log.Error().Err(err).Msg("holdings snapshot failed")
			}
		}

		return inserted, nil
	})
}

func (pipeline *Pipeline) fillAum(ctx context.Context, result *data.PhaseResult) error {
	dataDate := time.Now().Truncate(24 * time.Hour)

	return pipeline.eachPass(ctx, result, library.MissingAum, func(ctx context.Context, funds []*data.Fund) (int64, error) {
		records := make([]*data.AumRecord, 0, len(funds))
		for _, fund := range funds {
			fundAUM, amcTotal := pipeline.Engine.EstimateAUM(fund.AmcName, fund.Category, fund.Subcategory, pipeline.AmcTotals)
			records = append(records, &data.AumRecord{
				AmcName:        fund.AmcName,
				FundName:       fund.FundName,
				AumCrores:      fundAUM,
				TotalAumCrores: amcTotal,
				Category:       fund.Category,
				DataDate:       dataDate,
				Source:         SourceSynthetic,
			})
		}

		conn, err := pipeline.Library.Pool.Acquire(ctx)
		if err != nil {
			return 0, err
		}
		defer conn.Release()

		inserted := data.SaveAumRecords(ctx, conn, records)
		result.Inserted += inserted
		return inserted, nil
	})
}

// fillAnalytics runs once rather than in passes: its scans already exclude
// covered rows, and the saves are conflict-ignoring, so a single pass per run
// converges the same way.
func (pipeline *Pipeline) fillAnalytics(ctx context.Context, result *data.PhaseResult) error {
	analysisDate := time.Now().Truncate(24 * time.Hour)
	result.Passes = 1

	conn, err := pipeline.Library.Pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	// Manager analytics for managers with no row yet.
	managers, err := pipeline.Library.ManagersWithoutAnalytics(ctx)
	if err != nil {
		return err
	}
	result.Scanned += int64(len(managers))

	managerRows := make([]*data.ManagerAnalytics, 0, len(managers))
	for _, manager := range managers {
		stats := pipeline.Engine.EstimateManagerStats(manager.FundCount)
		managerRows = append(managerRows, &data.ManagerAnalytics{
			ManagerName:       manager.ManagerName,
			ManagedFundsCount: manager.FundCount,
			TotalAumManaged:   stats.TotalAUMManaged,
			AvgPerformance1Y:  stats.AvgReturn1Y,
			AvgPerformance3Y:  stats.AvgReturn3Y,
			AnalysisDate:      analysisDate,
			Source:            SourceSynthetic,
		})
	}
	result.Inserted += data.SaveManagerAnalytics(ctx, conn, managerRows)

	// Category performance for every populated group.
	groups, err := pipeline.Library.CategoryGroups(ctx)
	if err != nil {
		return err
	}

	categoryRows := make([]*data.CategoryPerformance, 0, len(groups))
	for _, group := range groups {
		avg1Y, avg3Y, avg5Y := pipeline.Engine.EstimateCategoryReturns(group.Category)
		categoryRows = append(categoryRows, &data.CategoryPerformance{
			CategoryName: group.Category,
			Subcategory:  group.Subcategory,
			AvgReturn1Y:  avg1Y,
			AvgReturn3Y:  avg3Y,
			AvgReturn5Y:  avg5Y,
			FundCount:    group.FundCount,
			AnalysisDate: analysisDate,
		})
	}
	result.Inserted += data.SaveCategoryPerformance(ctx, conn, categoryRows)

	// Pairwise overlap for adjacent funds within a category group.
	overlaps, err := pipeline.overlapPairs(ctx, analysisDate)
	if err != nil {
		return err
	}
	result.Inserted += data.SavePortfolioOverlaps(ctx, conn, overlaps)

	// Market stance scorecard for today, if absent.
	elivate := rules.DefaultElivateScore()
	score := &data.ElivateScore{
		ScoreDate:              analysisDate,
		ExternalInfluenceScore: elivate.ExternalInfluence,
		LocalStoryScore:        elivate.LocalStory,
		InflationRatesScore:    elivate.InflationRates,
		ValuationEarningsScore: elivate.ValuationEarnings,
		AllocationCapitalScore: elivate.AllocationCapital,
		TrendsSentimentsScore:  elivate.TrendsSentiments,
		TotalElivateScore:      elivate.Total,
		MarketStance:           elivate.Stance,
	}
	if err := score.SaveDB(ctx, conn); err != nil {
		return err
	}
	result.Inserted++

	return nil
}

// overlapPairs walks the fund universe ordered by category group and pairs
// each fund with its neighbor in the same (category, subcategory) group.
func (pipeline *Pipeline) overlapPairs(ctx context.Context, analysisDate time.Time) ([]*data.PortfolioOverlap, error) {
	funds, err := pipeline.Library.FundsByCategory(ctx, int(pipeline.BatchSize)*pipeline.MaxPasses)
	if err != nil {
		return nil, err
	}

	overlaps := make([]*data.PortfolioOverlap, 0, len(funds)/2)
	for i := 0; i+1 < len(funds); i += 2 {
		fund1 := funds[i]
		fund2 := funds[i+1]

		if fund1.Category != fund2.Category || fund1.Subcategory != fund2.Subcategory {
			continue
		}

		overlaps = append(overlaps, &data.PortfolioOverlap{
			Fund1SchemeCode:   fund1.SchemeCode,
			Fund1Name:         fund1.FundName,
			Fund2SchemeCode:   fund2.SchemeCode,
			Fund2Name:         fund2.FundName,
			OverlapPercentage: pipeline.Engine.EstimateOverlap(fund1.Category, fund1.Subcategory),
			AnalysisDate:      analysisDate,
			Source:            SourceSynthetic,
		})
	}

	return overlaps, nil
}

func (pipeline *Pipeline) normalizeHoldings(ctx context.Context, result *data.PhaseResult) error {
	result.Passes = 1

	conn, err := pipeline.Library.Pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	touched, err := data.NormalizeHoldingTotals(ctx, conn, rules.ToleranceLow, rules.ToleranceHigh)
	if err != nil {
		return err
	}
	result.Updated += touched

	return nil
}

func (pipeline *Pipeline) dedupeAum(ctx context.Context, result *data.PhaseResult) error {
	result.Passes = 1

	conn, err := pipeline.Library.Pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	deleted, err := data.DeleteDuplicateAum(ctx, conn)
	if err != nil {
		return err
	}
	result.Deleted += deleted

	return nil
}

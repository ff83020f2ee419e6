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
package cmd

import (
	"context"
	"os"
	"time"

	"github.com/hako/durafmt"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fundlens/mfdata/healthcheck"
	"github.com/fundlens/mfdata/library"
	"github.com/fundlens/mfdata/pipeline"
	"github.com/fundlens/mfdata/render"
	"github.com/fundlens/mfdata/rules"
	"github.com/fundlens/mfdata/snapshot"
)

var (
	fillMode        string
	fillSeed        int64
	fillMaxPasses   int
	fillBatchSize   uint64
	fillSnapshotDir string
	fillAmcURL      string
	fillHeadless    bool
)

// fillCmd represents the fill command
var fillCmd = &cobra.Command{
	Use:       "fill [phase...]",
	Short:     "Scan for missing fund data and fill the gaps",
	ValidArgs: pipeline.FillPhases,
	Args:      cobra.OnlyValidArgs,
	Long: `The fill sub-command scans the fund library for deficiencies and fills
them. In fill-missing mode it assigns benchmarks, generates synthetic
portfolio holdings and AUM figures, and builds the dependent analytics
tables. In repair mode it fixes rows that exist but violate invariants:
holdings that no longer total 100 percent and duplicate AUM rows.

Positional arguments restrict the run to the named phases (benchmarks,
holdings, aum, analytics); with no arguments every phase of the mode runs.

The run prints a JSON summary to stdout and exits non-zero when any phase
fails.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		myLibrary, err := library.NewFromDB(ctx, viper.GetString("db.url"))
		if err != nil {
			log.Fatal().Err(err).Msg("could not connect to library")
		}
		defer myLibrary.Close()

		myPipeline := &pipeline.Pipeline{
			Library:   myLibrary,
			Engine:    rules.NewEngine(fillSeed),
			BatchSize: fillBatchSize,
			MaxPasses: fillMaxPasses,
			Phases:    args,
		}

		// archive generated holdings when a snapshot directory is set
		if fillSnapshotDir != "" {
			archiver, err := snapshot.NewArchiver(fillSnapshotDir)
			if err != nil {
				log.Fatal().Err(err).Msg("could not create snapshot archiver")
			}
			myPipeline.Snapshot = archiver.SaveHoldings
		}

		// scrape live AMC asset totals when a source url is set
		if fillAmcURL == "" {
			fillAmcURL = viper.GetString("aum.scrape_url")
		}
		if fillAmcURL != "" {
			browser, err := render.StartBrowser(fillHeadless)
			if err != nil {
				log.Fatal().Err(err).Msg("could not start browser")
			}

			totals, err := render.FetchAmcTotals(ctx, browser, fillAmcURL, rules.AmcNames())
			browser.Close()
			if err != nil {
				log.Error().Err(err).Msg("could not scrape amc totals; using built-in table")
			} else {
				myPipeline.AmcTotals = totals
			}
		}

		startTime := time.Now()
		summary, runErr := myPipeline.Run(ctx, fillMode, fillSeed)
		runTime := time.Since(startTime)

		log.Info().Str("RunTime", durafmt.Parse(runTime).String()).Str("Mode", fillMode).
			Int64("Seed", fillSeed).Bool("Success", summary.Success).Msg("fill run finished")

		if err := summary.WriteJSON(os.Stdout); err != nil {
			log.Error().Err(err).Msg("could not write run summary")
		}

		if checkID := viper.GetString("healthchecks.check_id"); checkID != "" {
			if err := healthcheck.Ping(checkID, summary.Success); err != nil {
				log.Error().Err(err).Msg("could not ping healthchecks.io")
			}
		}

		if runErr != nil {
			log.Error().Err(runErr).Msg("fill run failed")
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(fillCmd)

	fillCmd.Flags().StringVar(&fillMode, "mode", pipeline.ModeFillMissing, "run mode: fill-missing or repair")
	fillCmd.Flags().Int64Var(&fillSeed, "seed", time.Now().UnixNano(), "seed for the synthetic data engine")
	fillCmd.Flags().IntVar(&fillMaxPasses, "max-passes", 10, "maximum scan passes per phase")
	fillCmd.Flags().Uint64Var(&fillBatchSize, "batch-size", 500, "funds per scan pass")
	fillCmd.Flags().StringVar(&fillSnapshotDir, "snapshot-dir", "", "directory for parquet audit snapshots of generated holdings")
	fillCmd.Flags().StringVar(&fillAmcURL, "amc-totals-url", "", "page to scrape live AMC asset totals from")
	fillCmd.Flags().BoolVar(&fillHeadless, "headless", true, "run the scrape browser headless")
}

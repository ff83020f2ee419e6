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
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fundlens/mfdata/data"
	"github.com/fundlens/mfdata/library"
	"github.com/fundlens/mfdata/provider"
	"github.com/fundlens/mfdata/rules"
)

var (
	indicesLookback int
	indicesDelay    time.Duration
)

// indicesCmd represents the indices command
var indicesCmd = &cobra.Command{
	Use:   "indices",
	Short: "Download historical quotes for the benchmark indices",
	Long: `The indices sub-command downloads daily quote series for every benchmark
index in the rule table and upserts them into the market_indices table.
Indices that fail to download are logged and skipped; the rest of the run
continues.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		myLibrary, err := library.NewFromDB(ctx, viper.GetString("db.url"))
		if err != nil {
			log.Fatal().Err(err).Msg("could not connect to library")
		}
		defer myLibrary.Close()

		requestsPerMinute := 60
		if indicesDelay > 0 {
			requestsPerMinute = int(time.Minute / indicesDelay)
		}

		yahoo := provider.NewYahoo(requestsPerMinute)
		lookback := time.Duration(indicesLookback) * 24 * time.Hour

		conn, err := myLibrary.Pool.Acquire(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("could not acquire database connection")
		}
		defer conn.Release()

		var totalSaved int64

		for indexName, ticker := range rules.IndexTickers {
			quotes, err := yahoo.FetchIndexQuotes(ctx, indexName, ticker, lookback)
			if err != nil {
				log.Error().Err(err).Str("IndexName", indexName).Str("Ticker", ticker).
					Msg("could not fetch index series; skipping")
				continue
			}

			saved := data.SaveIndexQuotes(ctx, conn, quotes)
			totalSaved += saved

			log.Info().Str("IndexName", indexName).Int("NumQuotes", len(quotes)).
				Int64("Saved", saved).Msg("saved index series")
		}

		log.Info().Int64("TotalSaved", totalSaved).Int("NumIndices", len(rules.IndexTickers)).
			Msg("index download finished")
	},
}

func init() {
	rootCmd.AddCommand(indicesCmd)

	indicesCmd.Flags().IntVar(&indicesLookback, "lookback", 365, "days of history to download")
	indicesCmd.Flags().DurationVar(&indicesDelay, "delay", time.Second, "delay between upstream requests")
}

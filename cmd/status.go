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
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fundlens/mfdata/library"
)

var statusCsvFile string

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display a completeness report for the fund library",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		myLibrary, err := library.NewFromDB(ctx, viper.GetString("db.url"))
		if err != nil {
			log.Fatal().Err(err).Msg("could not connect to library")
		}
		defer myLibrary.Close()

		myLibrary.Name = viper.GetString("name")
		if myLibrary.Name == "" {
			myLibrary.Name = "Fund Library"
		}

		if statusCsvFile != "" {
			counts, err := myLibrary.Counts(ctx)
			if err != nil {
				log.Fatal().Err(err).Msg("could not scan library")
			}

			fh, err := os.Create(statusCsvFile)
			if err != nil {
				log.Fatal().Err(err).Str("FileName", statusCsvFile).Msg("could not create csv file")
			}
			defer fh.Close()

			if err := gocsv.MarshalFile([]*library.CompletenessCounts{counts}, fh); err != nil {
				log.Fatal().Err(err).Msg("could not write csv file")
			}

			log.Info().Str("FileName", statusCsvFile).Msg("wrote completeness counts")
			return
		}

		summary, err := myLibrary.Summary(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create completeness report")
		}

		r, _ := glamour.NewTermRenderer(
			// detect background color and pick either the default dark or light theme
			glamour.WithAutoStyle(),
			// wrap output at specific width (default is 80)
			glamour.WithWordWrap(80),
		)

		out, err := r.Render(summary)
		if err != nil {
			log.Fatal().Err(err).Msg("could not render completeness report")
		}

		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVar(&statusCsvFile, "csv", "", "write completeness counts to a csv file instead of rendering the report")
}

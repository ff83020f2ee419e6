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

// Package snapshot archives generated holdings as parquet files so every
// synthetic batch written to the database has a durable audit copy.
package snapshot

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/fundlens/mfdata/data"
)

// Archiver writes holdings batches to parquet and optionally mirrors them to
// a backblaze bucket when credentials are configured.
type Archiver struct {
	Dir string

	batchNum int
}

// NewArchiver creates an archiver writing under dir; empty dir means a
// temporary directory.
func NewArchiver(dir string) (*Archiver, error) {
	if dir == "" {
		tmpdir, err := os.MkdirTemp("", "mfdata")
		if err != nil {
			return nil, err
		}
		dir = tmpdir
	}

	return &Archiver{Dir: dir}, nil
}

// SaveHoldings writes the batch to a parquet file and uploads it when
// backblaze credentials are present. Implements the pipeline snapshot hook.
func (archiver *Archiver) SaveHoldings(ctx context.Context, holdings []*data.Holding) error {
	if len(holdings) == 0 {
		return nil
	}

	archiver.batchNum++
	dateStr := time.Now().Format("20060102")
	parquetFn := fmt.Sprintf("%s/holdings-%s-%03d.parquet", archiver.Dir, dateStr, archiver.batchNum)

	log.Info().Str("FileName", parquetFn).Int("NumHoldings", len(holdings)).
		Msg("writing holdings snapshot to parquet")
	if err := saveToParquet(holdings, parquetFn); err != nil {
		return err
	}

	if viper.GetString("backblaze.application_id") != "" {
		year := dateStr[:4]
		if err := Upload(parquetFn, viper.GetString("backblaze.bucket"), year); err != nil {
			log.Error().Err(err).Msg("failed uploading parquet file to Backblaze")
		}
	} else {
		log.Debug().Msg("skipping upload to backblaze because backblaze credentials are missing")
	}

	return nil
}

func saveToParquet(holdings []*data.Holding, fn string) error {
	fh, err := local.NewLocalFileWriter(fn)
	if err != nil {
		log.Error().Err(err).Str("FileName", fn).Msg("cannot create local file")
		return err
	}
	defer fh.Close()

	pw, err := writer.NewParquetWriter(fh, new(data.Holding), 4)
	if err != nil {
		log.Error().Err(err).Msg("Parquet write failed")
		return err
	}

	pw.RowGroupSize = 128 * 1024 * 1024 // 128M
	pw.PageSize = 8 * 1024              // 8k
	pw.CompressionType = parquet.CompressionCodec_ZSTD

	for _, holding := range holdings {
		if err = pw.Write(holding); err != nil {
			log.Error().Err(err).Int64("FundID", holding.FundID).Str("StockName", holding.StockName).
				Msg("Parquet write failed for record")
		}
	}

	if err = pw.WriteStop(); err != nil {
		log.Error().Err(err).Msg("Parquet write failed")
		return err
	}

	return nil
}

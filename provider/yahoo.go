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
package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/alphadose/haxmap"
	"github.com/go-resty/resty/v2"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/fundlens/mfdata/data"
)

const yahooChartURL = "https://query1.finance.yahoo.com/v8/finance/chart/%s"

// Yahoo fetches index series from the Yahoo Finance chart API. Series are
// cached per ticker for the life of the provider so a run never fetches the
// same index twice.
type Yahoo struct {
	client  *resty.Client
	limiter *rate.Limiter
	cache   *haxmap.Map[string, []*data.IndexQuote]
}

// NewYahoo creates a provider limited to requestsPerMinute upstream calls.
func NewYahoo(requestsPerMinute int) *Yahoo {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}

	return &Yahoo{
		client: resty.New().
			SetHeader("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36").
			SetTimeout(30 * time.Second),
		limiter: rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/float64(61)), 1),
		cache:   haxmap.New[string, []*data.IndexQuote](),
	}
}

func (yahoo *Yahoo) Name() string {
	return "yahoo"
}

// yahooChartResponse mirrors the subset of the chart payload we read.
type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchIndexQuotes downloads the daily series for ticker over the lookback
// window. Days where the source publishes no close are dropped.
func (yahoo *Yahoo) FetchIndexQuotes(ctx context.Context, indexName, ticker string, lookback time.Duration) ([]*data.IndexQuote, error) {
	if cached, ok := yahoo.cache.Get(ticker); ok {
		return renamed(cached, indexName), nil
	}

	if err := yahoo.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endDate := time.Now()
	startDate := endDate.Add(-lookback)

	resp, err := yahoo.client.R().
		SetContext(ctx).
		SetQueryParam("period1", fmt.Sprintf("%d", startDate.Unix())).
		SetQueryParam("period2", fmt.Sprintf("%d", endDate.Unix())).
		SetQueryParam("interval", "1d").
		Get(fmt.Sprintf(yahooChartURL, ticker))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() >= 300 {
		return nil, fmt.Errorf("yahoo chart request for %s returned status %d", ticker, resp.StatusCode())
	}

	quotes, err := parseYahooChart(resp.Body(), ticker)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("Ticker", ticker).Int("NumQuotes", len(quotes)).Msg("downloaded index series")
	yahoo.cache.Set(ticker, quotes)

	return renamed(quotes, indexName), nil
}

// parseYahooChart decodes a chart payload into quotes named by the ticker.
func parseYahooChart(body []byte, ticker string) ([]*data.IndexQuote, error) {
	chartResp := yahooChartResponse{}
	if err := json.Unmarshal(body, &chartResp); err != nil {
		return nil, err
	}

	if chartResp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo chart error for %s: %s (%s)", ticker,
			chartResp.Chart.Error.Code, chartResp.Chart.Error.Description)
	}

	if len(chartResp.Chart.Result) == 0 || len(chartResp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo chart response for %s has no result", ticker)
	}

	result := chartResp.Chart.Result[0]
	series := result.Indicators.Quote[0]

	quotes := make([]*data.IndexQuote, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(series.Close) || series.Close[i] == nil {
			continue
		}

		quote := &data.IndexQuote{
			IndexName: ticker,
			Date:      time.Unix(ts, 0).UTC().Truncate(24 * time.Hour),
			Close:     *series.Close[i],
		}

		if i < len(series.Open) && series.Open[i] != nil {
			quote.Open = *series.Open[i]
		}
		if i < len(series.High) && series.High[i] != nil {
			quote.High = *series.High[i]
		}
		if i < len(series.Low) && series.Low[i] != nil {
			quote.Low = *series.Low[i]
		}
		if i < len(series.Volume) && series.Volume[i] != nil {
			quote.Volume = *series.Volume[i]
		}

		quotes = append(quotes, quote)
	}

	return quotes, nil
}

// renamed copies quotes with the index's display name in place of the
// provider ticker, leaving the cached originals untouched.
func renamed(quotes []*data.IndexQuote, indexName string) []*data.IndexQuote {
	named := make([]*data.IndexQuote, 0, len(quotes))
	for _, quote := range quotes {
		quoteCopy := *quote
		quoteCopy.IndexName = indexName
		named = append(named, &quoteCopy)
	}

	return named
}

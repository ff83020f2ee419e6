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

import "testing"

const chartFixture = `{
	"chart": {
		"result": [{
			"timestamp": [1755475200, 1755561600, 1755648000],
			"indicators": {
				"quote": [{
					"open":   [24500.1, 24610.5, null],
					"high":   [24700.2, 24800.0, 24900.0],
					"low":    [24450.0, 24580.3, 24700.0],
					"close":  [24650.9, 24790.4, null],
					"volume": [250000000, 310000000, 120000000]
				}]
			}
		}],
		"error": null
	}
}`

func TestParseYahooChart(t *testing.T) {
	quotes, err := parseYahooChart([]byte(chartFixture), "^NSEI")
	if err != nil {
		t.Fatalf("parse returned error: %v", err)
	}

	// third day has a null close and must be dropped
	if len(quotes) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(quotes))
	}

	first := quotes[0]
	if first.IndexName != "^NSEI" {
		t.Fatalf("expected ticker name on parsed quote, got %q", first.IndexName)
	}
	if first.Close != 24650.9 {
		t.Fatalf("expected close 24650.9, got %f", first.Close)
	}
	if first.Open != 24500.1 || first.High != 24700.2 || first.Low != 24450.0 {
		t.Fatalf("unexpected ohlc: %f %f %f", first.Open, first.High, first.Low)
	}
	if first.Volume != 250000000 {
		t.Fatalf("expected volume 250000000, got %d", first.Volume)
	}
	if !quotes[1].Date.After(first.Date) {
		t.Fatalf("expected quotes in chronological order")
	}
}

func TestParseYahooChartError(t *testing.T) {
	body := `{"chart": {"result": null, "error": {"code": "Not Found", "description": "No data found"}}}`
	if _, err := parseYahooChart([]byte(body), "^BOGUS"); err == nil {
		t.Fatal("expected error for chart error payload")
	}
}

func TestParseYahooChartEmptyResult(t *testing.T) {
	body := `{"chart": {"result": [], "error": null}}`
	if _, err := parseYahooChart([]byte(body), "^NSEI"); err == nil {
		t.Fatal("expected error for empty result")
	}
}

func TestRenamedCopiesQuotes(t *testing.T) {
	quotes, err := parseYahooChart([]byte(chartFixture), "^NSEI")
	if err != nil {
		t.Fatalf("parse returned error: %v", err)
	}

	named := renamed(quotes, "NIFTY 50")
	if named[0].IndexName != "NIFTY 50" {
		t.Fatalf("expected renamed quote, got %q", named[0].IndexName)
	}
	if quotes[0].IndexName != "^NSEI" {
		t.Fatalf("rename must not mutate the cached quotes, got %q", quotes[0].IndexName)
	}
}

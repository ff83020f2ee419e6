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
package render

import "testing"

func TestParseCroreFigure(t *testing.T) {
	cases := []struct {
		figure string
		want   float64
	}{
		{"7,25,000", 725000},
		{"54,000", 54000},
		{"5000", 5000},
		{"1,234.56", 1234.56},
	}

	for _, c := range cases {
		got, err := ParseCroreFigure(c.figure)
		if err != nil {
			t.Fatalf("ParseCroreFigure(%q) returned error: %v", c.figure, err)
		}
		if got != c.want {
			t.Fatalf("ParseCroreFigure(%q) = %f, want %f", c.figure, got, c.want)
		}
	}

	if _, err := ParseCroreFigure("not a number"); err == nil {
		t.Fatal("expected error for junk input")
	}
}

func TestParseAmcTotals(t *testing.T) {
	page := `<html><body>
		<tr><td>SBI Mutual Fund</td><td>Rs. 7,25,000 crore</td></tr>
		<tr><td>HDFC Mutual Fund</td><td>5,20,000 Crores</td></tr>
		<tr><td>Quantum Mutual Fund</td><td>5,000 Cr.</td></tr>
		<tr><td>Edelweiss Mutual Fund</td><td>no figure published</td></tr>
	</body></html>`

	amcNames := []string{"SBI Mutual Fund", "HDFC Mutual Fund", "Quantum Mutual Fund",
		"Edelweiss Mutual Fund", "Axis Mutual Fund"}

	totals := ParseAmcTotals(page, amcNames)

	if len(totals) != 3 {
		t.Fatalf("expected 3 totals, got %d: %v", len(totals), totals)
	}
	if totals["SBI Mutual Fund"] != 725000 {
		t.Fatalf("expected SBI total 725000, got %f", totals["SBI Mutual Fund"])
	}
	if totals["HDFC Mutual Fund"] != 520000 {
		t.Fatalf("expected HDFC total 520000, got %f", totals["HDFC Mutual Fund"])
	}
	if totals["Quantum Mutual Fund"] != 5000 {
		t.Fatalf("expected Quantum total 5000, got %f", totals["Quantum Mutual Fund"])
	}
	if _, ok := totals["Axis Mutual Fund"]; ok {
		t.Fatal("Axis is not on the page and must be absent")
	}
}

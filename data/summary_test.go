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
	"bytes"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
)

func TestRunSummaryWriteJSON(t *testing.T) {
	summary := &RunSummary{
		RunID:     "f3a1c2d4",
		Mode:      "fill-missing",
		Seed:      42,
		StartTime: time.Date(2026, 8, 25, 2, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 8, 25, 2, 5, 0, 0, time.UTC),
		Phases: map[string]*PhaseResult{
			"holdings": {Phase: "holdings", Passes: 2, Scanned: 900, Inserted: 27000},
		},
		Success: true,
	}

	buf := bytes.Buffer{}
	if err := summary.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON returned error: %v", err)
	}

	out := buf.String()
	if !strings.HasSuffix(out, "\n") {
		t.Fatal("expected trailing newline")
	}

	decoded := RunSummary{}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid json: %v", err)
	}

	if decoded.RunID != summary.RunID || decoded.Mode != summary.Mode || !decoded.Success {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
	if decoded.Phases["holdings"].Inserted != 27000 {
		t.Fatalf("expected phase counts preserved, got %+v", decoded.Phases["holdings"])
	}

	// empty error must be omitted
	if strings.Contains(out, `"error"`) {
		t.Fatalf("expected error field omitted on success, got: %s", out)
	}
}

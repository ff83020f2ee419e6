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
	"io"
	"time"

	json "github.com/goccy/go-json"
)

// PhaseResult counts the work a single pipeline phase performed.
type PhaseResult struct {
	Phase    string `json:"phase"`
	Passes   int    `json:"passes"`
	Scanned  int64  `json:"scanned"`
	Inserted int64  `json:"inserted"`
	Updated  int64  `json:"updated"`
	Deleted  int64  `json:"deleted"`
	Skipped  int64  `json:"skipped"`
}

// RunSummary is the machine-readable result of a pipeline run, printed to
// stdout as JSON. Success=false carries an error message and a non-zero
// process exit.
type RunSummary struct {
	RunID     string                  `json:"run_id"`
	Mode      string                  `json:"mode"`
	Seed      int64                   `json:"seed"`
	StartTime time.Time               `json:"start_time"`
	EndTime   time.Time               `json:"end_time"`
	Phases    map[string]*PhaseResult `json:"phases"`
	Success   bool                    `json:"success"`
	Error     string                  `json:"error,omitempty"`
	Message   string                  `json:"message,omitempty"`
}

// WriteJSON renders the summary to the writer followed by a newline.
func (summary *RunSummary) WriteJSON(w io.Writer) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return err
	}

	if _, err := w.Write(payload); err != nil {
		return err
	}

	_, err = w.Write([]byte("\n"))
	return err
}

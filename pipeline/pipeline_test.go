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
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fundlens/mfdata/rules"
)

func TestRunRejectsUnknownMode(t *testing.T) {
	myPipeline := &Pipeline{
		Engine:    rules.NewEngine(1),
		BatchSize: 10,
		MaxPasses: 1,
	}

	summary, err := myPipeline.Run(context.Background(), "bogus", 1)
	if err == nil {
		t.Fatal("expected error for unknown mode")
	}
	if summary.Success {
		t.Fatal("expected summary marked unsuccessful")
	}
	if summary.Error == "" {
		t.Fatal("expected summary to carry the error message")
	}
	if summary.RunID == "" {
		t.Fatal("expected a run id even on failure")
	}
	if summary.EndTime.Before(summary.StartTime) {
		t.Fatal("expected end time at or after start time")
	}
}

func TestRunRejectsUnknownPhase(t *testing.T) {
	myPipeline := &Pipeline{
		Engine:    rules.NewEngine(1),
		BatchSize: 10,
		MaxPasses: 1,
		Phases:    []string{"holdings", "bogus"},
	}

	summary, err := myPipeline.Run(context.Background(), ModeFillMissing, 1)
	if err == nil {
		t.Fatal("expected error for unknown phase")
	}
	if summary.Success {
		t.Fatal("expected summary marked unsuccessful")
	}
	if len(summary.Phases) != 0 {
		t.Fatalf("expected no phases to run, got %d", len(summary.Phases))
	}
}

func TestRunHonorsPhaseSelection(t *testing.T) {
	// analytics has no repair counterpart, so a repair run restricted to it
	// must skip every phase without touching the database.
	myPipeline := &Pipeline{Phases: []string{"analytics"}}

	summary, err := myPipeline.Run(context.Background(), ModeRepair, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !summary.Success {
		t.Fatal("expected a successful run")
	}
	if len(summary.Phases) != 0 {
		t.Fatalf("expected no phases to run, got %d", len(summary.Phases))
	}
}

func TestRunLogsSeed(t *testing.T) {
	var buf bytes.Buffer
	orig := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = orig }()

	myPipeline := &Pipeline{Phases: []string{"analytics"}}
	if _, err := myPipeline.Run(context.Background(), ModeRepair, 424242); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(buf.String(), `"Seed":424242`) {
		t.Fatalf("run log missing the seed: %s", buf.String())
	}
}

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
	"time"

	"github.com/fundlens/mfdata/data"
)

// IndexProvider fetches historical quote series for benchmark indices.
type IndexProvider interface {
	Name() string

	// FetchIndexQuotes returns daily quotes for the ticker covering the
	// lookback window ending now. The returned quotes carry indexName, not
	// the provider's ticker symbol.
	FetchIndexQuotes(ctx context.Context, indexName, ticker string, lookback time.Duration) ([]*data.IndexQuote, error)
}

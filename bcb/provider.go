// Copyright 2024
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
package bcb

import (
	"context"
	"errors"

	"github.com/brasilcap-analytics/capetl/data"
)

// ErrUnavailable indicates that no external rate-series source can be reached
var ErrUnavailable = errors.New("rate series source unavailable")

// RateProvider supplies the macroeconomic reference series used by contract
// enrichment: CDI as a nominal annual percentage and IPCA as a monthly
// percentage
type RateProvider interface {
	CDI(ctx context.Context) (data.RateSeries, error)
	IPCA(ctx context.Context) (data.RateSeries, error)
}

// NullProvider always fails. It stands in when no external source is
// configured and exercises the degrade-to-cache path in tests.
type NullProvider struct{}

func (NullProvider) CDI(_ context.Context) (data.RateSeries, error) {
	return nil, ErrUnavailable
}

func (NullProvider) IPCA(_ context.Context) (data.RateSeries, error) {
	return nil, ErrUnavailable
}

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
package enrich_test

import (
	"context"
	"testing"
	"time"

	"github.com/brasilcap-analytics/capetl/bcb"
	"github.com/brasilcap-analytics/capetl/data"
	"github.com/brasilcap-analytics/capetl/enrich"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	cdi  data.RateSeries
	ipca data.RateSeries
}

func (provider *stubProvider) CDI(_ context.Context) (data.RateSeries, error) {
	return provider.cdi, nil
}

func (provider *stubProvider) IPCA(_ context.Context) (data.RateSeries, error) {
	return provider.ipca, nil
}

func TestMonthlyFromAnnual(t *testing.T) {
	// 12% a.a. compounds to roughly 0.9489% a month
	assert.InDelta(t, 0.009489, enrich.MonthlyFromAnnual(12.0), 1e-6)
	assert.Zero(t, enrich.MonthlyFromAnnual(0))

	// the two conversions are inverses
	assert.InDelta(t, 0.12, enrich.Annualize(enrich.MonthlyFromAnnual(12.0)), 1e-9)
}

func TestEnrichFromProvider(t *testing.T) {
	provider := &stubProvider{
		cdi: data.RateSeries{{Date: data.NewDate(2024, time.January, 2), Value: 12.0}},
	}
	cache := bcb.NewCache(t.TempDir())

	contracts := []*data.Contract{
		{ID: 1001, StartDate: data.NewDate(2024, time.January, 15)},
	}

	enriched := enrich.New(provider, cache).Enrich(context.Background(), contracts)

	require.Len(t, enriched, 1)
	require.NotNil(t, enriched[0].EstimatedYield)
	assert.InDelta(t, 0.12, *enriched[0].EstimatedYield, 1e-9)

	// a successful fetch refreshes the cache
	cached, err := cache.Load(bcb.CDIName)
	require.NoError(t, err)
	assert.Len(t, cached, 1)
}

func TestEnrichFallsBackToCache(t *testing.T) {
	cache := bcb.NewCache(t.TempDir())
	require.NoError(t, cache.Save(bcb.CDIName, data.RateSeries{
		{Date: data.NewDate(2024, time.January, 2), Value: 12.0},
	}))

	contracts := []*data.Contract{
		{ID: 1001, StartDate: data.NewDate(2024, time.January, 15)},
	}

	enriched := enrich.New(&bcb.NullProvider{}, cache).Enrich(context.Background(), contracts)

	require.Len(t, enriched, 1)
	require.NotNil(t, enriched[0].EstimatedYield)
	assert.InDelta(t, 0.12, *enriched[0].EstimatedYield, 1e-9)
}

func TestEnrichNoDataLeavesYieldAbsent(t *testing.T) {
	stale := 0.5
	contracts := []*data.Contract{
		{ID: 1001, StartDate: data.NewDate(2024, time.January, 15), EstimatedYield: &stale},
		{ID: 1002, StartDate: data.NewDate(2024, time.February, 3)},
	}

	enriched := enrich.New(&bcb.NullProvider{}, bcb.NewCache(t.TempDir())).
		Enrich(context.Background(), contracts)

	require.Len(t, enriched, 2)
	for _, contract := range enriched {
		assert.Nil(t, contract.EstimatedYield)
	}
}

func TestEnrichUnmatchedMonthAnnualizesZero(t *testing.T) {
	provider := &stubProvider{
		cdi: data.RateSeries{{Date: data.NewDate(2023, time.May, 2), Value: 13.65}},
	}

	contracts := []*data.Contract{
		{ID: 1001, StartDate: data.NewDate(2024, time.February, 10)},
		{ID: 1002}, // unparseable start date coerced to zero upstream
	}

	enriched := enrich.New(provider, bcb.NewCache(t.TempDir())).
		Enrich(context.Background(), contracts)

	require.Len(t, enriched, 2)
	for _, contract := range enriched {
		require.NotNil(t, contract.EstimatedYield)
		assert.Zero(t, *contract.EstimatedYield)
	}
}

func TestEnrichWithoutCache(t *testing.T) {
	provider := &stubProvider{
		cdi: data.RateSeries{{Date: data.NewDate(2024, time.January, 2), Value: 12.0}},
	}

	contracts := []*data.Contract{
		{ID: 1001, StartDate: data.NewDate(2024, time.January, 15)},
	}

	enriched := enrich.New(provider, nil).Enrich(context.Background(), contracts)

	require.Len(t, enriched, 1)
	require.NotNil(t, enriched[0].EstimatedYield)
	assert.InDelta(t, 0.12, *enriched[0].EstimatedYield, 1e-9)
}

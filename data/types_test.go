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
package data_test

import (
	"testing"
	"time"

	"github.com/brasilcap-analytics/capetl/data"
	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  data.Date
	}{
		{"iso", "2024-03-15", data.NewDate(2024, time.March, 15)},
		{"brazilian day first", "15/03/2024", data.NewDate(2024, time.March, 15)},
		{"padded", "  2024-03-15 ", data.NewDate(2024, time.March, 15)},
		{"garbage coerces to zero", "not-a-date", data.Date{}},
		{"empty coerces to zero", "", data.Date{}},
		{"partial coerces to zero", "2024-03", data.Date{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := data.ParseDate(tt.value)
			assert.True(t, got.Equal(tt.want.Time), "got %v, want %v", got, tt.want)
		})
	}
}

func TestDateCompetenceMonth(t *testing.T) {
	date := data.NewDate(2024, time.March, 15)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), date.CompetenceMonth())

	first := data.NewDate(2024, time.March, 1)
	assert.Equal(t, date.CompetenceMonth(), first.CompetenceMonth())
}

func TestDateDBValue(t *testing.T) {
	assert.Nil(t, data.Date{}.DBValue())
	assert.Nil(t, data.ParseDate("bogus").DBValue())

	date := data.NewDate(2024, time.March, 15)
	assert.Equal(t, date.Time, date.DBValue())
}

func TestDateMarshalCSV(t *testing.T) {
	out, err := data.NewDate(2024, time.March, 15).MarshalCSV()
	assert.NoError(t, err)
	assert.Equal(t, "2024-03-15", out)

	out, err = data.Date{}.MarshalCSV()
	assert.NoError(t, err)
	assert.Empty(t, out)
}

func TestBatchNumRecords(t *testing.T) {
	batch := &data.Batch{
		Clients:   []*data.Client{{ID: 1}, {ID: 2}},
		Contracts: []*data.Contract{{ID: 1001}},
		Premiums:  []*data.Premium{{ID: 1}, {ID: 2}, {ID: 3}},
	}

	assert.Equal(t, 6, batch.NumRecords())
	assert.Zero(t, (&data.Batch{}).NumRecords())
}

func TestRateSeriesByCompetenceMonth(t *testing.T) {
	series := data.RateSeries{
		{Date: data.NewDate(2024, time.January, 2), Value: 11.65},
		{Date: data.NewDate(2024, time.January, 31), Value: 11.15},
		{Date: data.NewDate(2024, time.February, 1), Value: 10.9},
	}

	rates := series.ByCompetenceMonth()
	assert.Len(t, rates, 2)

	// the later observation within a month wins
	assert.Equal(t, 11.15, rates[time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)])
	assert.Equal(t, 10.9, rates[time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)])
}

func TestRecordColumnsAlignWithRows(t *testing.T) {
	age := 42
	records := []data.Record{
		&data.Client{ID: 1, Age: &age},
		&data.Contract{ID: 1001},
		&data.Premium{ID: 1},
		&data.Redemption{ID: 1},
	}

	for _, record := range records {
		assert.Equal(t, len(record.Columns()), len(record.Row()))
	}
}

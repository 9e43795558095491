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
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func testClient(serverURL string) *Client {
	return &Client{
		baseURL: serverURL,
		http:    resty.New(),
		limiter: rate.NewLimiter(rate.Inf, 1),
	}
}

func TestSeriesParsesAndSortsObservations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dados/serie/bcdata.sgs.12/dados", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("formato"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"data": "02/01/2024", "valor": "11,65"},
			{"data": "bogus", "valor": "x"},
			{"data": "01/12/2023", "valor": "12,15"}
		]`))
	}))
	defer server.Close()

	series, err := testClient(server.URL).CDI(context.Background())
	require.NoError(t, err)

	// the malformed row is dropped and the rest sorted ascending
	require.Len(t, series, 2)
	assert.Equal(t, 12.15, series[0].Value)
	assert.True(t, series[0].Date.Equal(time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 11.65, series[1].Value)
	assert.True(t, series[1].Date.Equal(time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)))
}

func TestSeriesSendsDateRange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dados/serie/bcdata.sgs.433/dados", r.URL.Path)
		assert.Equal(t, "01/01/2023", r.URL.Query().Get("dataInicial"))
		assert.Equal(t, "31/12/2023", r.URL.Query().Get("dataFinal"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC)

	series, err := testClient(server.URL).Series(context.Background(), SeriesIPCA, start, end)
	require.NoError(t, err)
	assert.Empty(t, series)
}

func TestSeriesErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "tea time", http.StatusTeapot)
	}))
	defer server.Close()

	_, err := testClient(server.URL).CDI(context.Background())
	assert.ErrorContains(t, err, "418")
}

func TestSeriesBadPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance window</html>`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).IPCA(context.Background())
	assert.ErrorContains(t, err, "decoding SGS series")
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		value   string
		want    float64
		wantErr bool
	}{
		{"1.234,56", 1234.56, false},
		{"3,49", 3.49, false},
		{"0.25", 0.25, false},
		{"11,65", 11.65, false},
		{" 12,15 ", 12.15, false},
		{"", 0, true},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseNumber(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

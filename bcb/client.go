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
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/brasilcap-analytics/capetl/data"
	"github.com/go-resty/resty/v2"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.bcb.gov.br"

// SGS series identifiers used by the pipeline
const (
	SeriesCDI  = 12  // CDI, nominal % a.a.
	SeriesIPCA = 433 // IPCA, % a.m.
)

// Client fetches time series from the Banco Central SGS API
type Client struct {
	baseURL string
	http    *resty.Client
	limiter *rate.Limiter
}

// NewClient returns a Client with a bounded request timeout and a polite
// request rate across series calls
func NewClient() *Client {
	return &Client{
		baseURL: defaultBaseURL,
		http: resty.New().
			SetTimeout(30 * time.Second).
			SetHeader("Accept", "application/json").
			SetHeader("User-Agent", "capetl/1.0 (brasilcap analytics)"),
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
	}
}

type sgsObservation struct {
	Date  string `json:"data"`
	Value string `json:"valor"`
}

// Series fetches one SGS series, optionally bounded by a date range (zero
// times mean unbounded). Rows whose date or value do not parse are dropped,
// not errors; the result is sorted ascending by date.
func (client *Client) Series(ctx context.Context, seriesID int, start time.Time, end time.Time) (data.RateSeries, error) {
	if err := client.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req := client.http.R().
		SetContext(ctx).
		SetQueryParam("formato", "json")

	if !start.IsZero() {
		req.SetQueryParam("dataInicial", start.Format("02/01/2006"))
	}
	if !end.IsZero() {
		req.SetQueryParam("dataFinal", end.Format("02/01/2006"))
	}

	resp, err := req.Get(fmt.Sprintf("%s/dados/serie/bcdata.sgs.%d/dados", client.baseURL, seriesID))
	if err != nil {
		return nil, fmt.Errorf("fetching SGS series %d: %w", seriesID, err)
	}

	if resp.StatusCode() >= 300 {
		return nil, fmt.Errorf("SGS series %d returned status %d", seriesID, resp.StatusCode())
	}

	var observations []sgsObservation
	if err := json.Unmarshal(resp.Body(), &observations); err != nil {
		return nil, fmt.Errorf("decoding SGS series %d: %w", seriesID, err)
	}

	series := make(data.RateSeries, 0, len(observations))

	for _, obs := range observations {
		date := data.ParseDate(obs.Date)
		if date.IsZero() {
			log.Warn().Int("Series", seriesID).Str("DateStr", obs.Date).Msg("parsing observation date failed, dropping row")
			continue
		}

		value, err := ParseNumber(obs.Value)
		if err != nil {
			log.Warn().Int("Series", seriesID).Str("ValueStr", obs.Value).Msg("parsing observation value failed, dropping row")
			continue
		}

		series = append(series, data.RatePoint{Date: date, Value: value})
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date.Time)
	})

	return series, nil
}

// CDI fetches the full annualized CDI series
func (client *Client) CDI(ctx context.Context) (data.RateSeries, error) {
	return client.Series(ctx, SeriesCDI, time.Time{}, time.Time{})
}

// IPCA fetches the full monthly IPCA series
func (client *Client) IPCA(ctx context.Context) (data.RateSeries, error) {
	return client.Series(ctx, SeriesIPCA, time.Time{}, time.Time{})
}

// ParseNumber parses localized numeric values: "1.234,56", "3,49" and plain
// "0.25" are all accepted
func ParseNumber(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty numeric value")
	}

	if strings.Contains(value, ",") {
		value = strings.ReplaceAll(value, ".", "")
		value = strings.ReplaceAll(value, ",", ".")
	}

	return strconv.ParseFloat(value, 64)
}

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
package data

import "time"

// RatePoint is one observation of an external macroeconomic series
type RatePoint struct {
	Date  Date    `csv:"data"`
	Value float64 `csv:"valor"`
}

// RateSeries is an observation sequence ordered ascending by date
type RateSeries []RatePoint

// ByCompetenceMonth indexes the series by the first day of each observation
// month. When a month has more than one observation the last one wins.
func (series RateSeries) ByCompetenceMonth() map[time.Time]float64 {
	rates := make(map[time.Time]float64, len(series))
	for _, point := range series {
		rates[point.Date.CompetenceMonth()] = point.Value
	}

	return rates
}

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

import (
	"strings"
	"time"
)

// Record is a row destined for a warehouse table. Columns and Row are
// positionally aligned; the loader intersects Columns with the destination
// schema and keeps only the matching positions of Row.
type Record interface {
	Columns() []string
	Row() []any
}

// Batch holds one staged extract of every entity collection
type Batch struct {
	Clients     []*Client
	Contracts   []*Contract
	Premiums    []*Premium
	Redemptions []*Redemption
}

// NumRecords returns the total row count across all entity collections
func (batch *Batch) NumRecords() int {
	return len(batch.Clients) + len(batch.Contracts) + len(batch.Premiums) + len(batch.Redemptions)
}

var dateLayouts = []string{"2006-01-02", "02/01/2006"}

// Date is a calendar date as it appears in staged extracts. Values that do
// not parse coerce to the zero Date rather than failing the row.
type Date struct {
	time.Time
}

// NewDate returns a Date for the given calendar day
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses ISO (2006-01-02) and Brazilian day-first (02/01/2006)
// dates; anything else coerces to the zero Date
func ParseDate(value string) Date {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return Date{Time: t.UTC()}
		}
	}

	return Date{}
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller
func (date *Date) UnmarshalCSV(value string) error {
	*date = ParseDate(value)
	return nil
}

// MarshalCSV implements gocsv.TypeMarshaller
func (date Date) MarshalCSV() (string, error) {
	if date.IsZero() {
		return "", nil
	}

	return date.Format("2006-01-02"), nil
}

// CompetenceMonth truncates the date to the first day of its calendar month;
// it is the join key for monthly macro series
func (date Date) CompetenceMonth() time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// DBValue returns the date as a driver argument, mapping the zero Date to
// NULL so that unparseable extract values never load as 0001-01-01
func (date Date) DBValue() any {
	if date.IsZero() {
		return nil
	}

	return date.Time
}

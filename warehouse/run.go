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
package warehouse

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Run is the audit record of one ETL execution
type Run struct {
	ID              uuid.UUID
	StartedAt       time.Time
	FinishedAt      time.Time
	Truncated       bool
	MacroEnriched   bool
	ReportRequested bool
	RowsAttempted   int64
	RowsInserted    int64
}

// NewRun starts a new audit record
func NewRun() *Run {
	return &Run{
		ID:        uuid.New(),
		StartedAt: time.Now().UTC(),
	}
}

// AddStats accumulates loader statistics into the run totals
func (run *Run) AddStats(stats []TableStats) {
	for _, tableStats := range stats {
		run.RowsAttempted += tableStats.Attempted
		run.RowsInserted += tableStats.Inserted
	}
}

// Record stamps the finish time and writes the audit row
func (run *Run) Record(ctx context.Context, dbConn Querier) error {
	run.FinishedAt = time.Now().UTC()

	_, err := dbConn.Exec(ctx, `INSERT INTO analytics.etl_runs
("id", "started_at", "finished_at", "truncated", "macro_enriched", "report_requested", "rows_attempted", "rows_inserted")
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		run.ID, run.StartedAt, run.FinishedAt, run.Truncated, run.MacroEnriched,
		run.ReportRequested, run.RowsAttempted, run.RowsInserted)

	return err
}

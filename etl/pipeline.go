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
package etl

import (
	"context"
	"errors"
	"fmt"

	"github.com/brasilcap-analytics/capetl/data"
	"github.com/brasilcap-analytics/capetl/enrich"
	"github.com/brasilcap-analytics/capetl/report"
	"github.com/brasilcap-analytics/capetl/warehouse"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// BatchReader supplies the staged entity extracts
type BatchReader interface {
	ReadBatch() (*data.Batch, error)
}

// Options select the optional pipeline stages. Everything is off by default.
type Options struct {
	Truncate bool
	Macro    bool
	Report   bool
}

// Pipeline sequences one warehouse load end to end
type Pipeline struct {
	Warehouse *warehouse.Warehouse
	Reader    BatchReader
	Enricher  *enrich.Enricher
	Loader    *warehouse.Loader
	Reporter  report.Generator
	Opts      Options
}

// Run executes the pipeline. Schema reconciliation and extract reading come
// first so input failures abort before any data is touched; the destructive
// reset, the load, the KPI rebuild and the audit row share one transaction
// so a failed run leaves no partial load behind.
func (pipeline *Pipeline) Run(ctx context.Context) error {
	run := warehouse.NewRun()
	run.Truncated = pipeline.Opts.Truncate
	run.MacroEnriched = pipeline.Opts.Macro
	run.ReportRequested = pipeline.Opts.Report

	log.Info().Str("RunID", run.ID.String()).Msg("starting ETL run")

	if err := pipeline.Warehouse.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring warehouse schema: %w", err)
	}

	batch, err := pipeline.Reader.ReadBatch()
	if err != nil {
		return err
	}

	log.Info().Int("NumRecords", batch.NumRecords()).Msg("staged extracts read")

	if pipeline.Opts.Macro && pipeline.Enricher != nil {
		batch.Contracts = pipeline.Enricher.Enrich(ctx, batch.Contracts)
	}

	tx, err := pipeline.Warehouse.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning warehouse transaction: %w", err)
	}

	defer func() {
		if err := tx.Rollback(ctx); err != nil {
			if !errors.Is(err, pgx.ErrTxClosed) {
				log.Error().Err(err).Msg("error rolling back transaction")
			}
		}
	}()

	if pipeline.Opts.Truncate {
		if err := warehouse.Reset(ctx, tx); err != nil {
			return fmt.Errorf("resetting entity tables: %w", err)
		}
	}

	stats, err := pipeline.Loader.Load(ctx, tx, batch)
	if err != nil {
		return err
	}
	run.AddStats(stats)

	if err := warehouse.RebuildMonthlyKPI(ctx, tx); err != nil {
		return fmt.Errorf("rebuilding monthly KPI: %w", err)
	}

	if err := run.Record(ctx, tx); err != nil {
		return fmt.Errorf("recording run audit: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing warehouse transaction: %w", err)
	}

	log.Info().Str("RunID", run.ID.String()).Int64("RowsAttempted", run.RowsAttempted).
		Int64("RowsInserted", run.RowsInserted).Msg("ETL run committed")

	if pipeline.Opts.Report && pipeline.Reporter != nil {
		if err := pipeline.Reporter.Generate(ctx); err != nil {
			log.Warn().Err(err).Msg("report generation failed")
		}
	}

	return nil
}

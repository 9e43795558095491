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
	"fmt"
	"strings"

	"github.com/alphadose/haxmap"
	"github.com/brasilcap-analytics/capetl/data"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/rs/zerolog/log"
)

// DefaultBatchSize is the number of rows sent per INSERT statement. Chunking
// is a transport knob only; results are identical to a single large insert.
const DefaultBatchSize = 1000

// Loader merges staged entity collections into the warehouse. Inserts are
// conflict-aware: a row whose id already exists is skipped entirely, so a
// load is safe to re-run against the same or a grown input set.
type Loader struct {
	BatchSize int

	columns *haxmap.Map[string, map[string]struct{}]
}

// NewLoader returns a Loader with the default batch size
func NewLoader() *Loader {
	return &Loader{
		BatchSize: DefaultBatchSize,
		columns:   haxmap.New[string, map[string]struct{}](),
	}
}

// TableStats reports attempted vs inserted row counts for one entity table.
// The difference is the number of pre-existing ids skipped on conflict.
type TableStats struct {
	Table     string
	Attempted int64
	Inserted  int64
}

// Load merges all four entity collections in foreign-key dependency order:
// clients before contracts, contracts before premiums and redemptions
func (loader *Loader) Load(ctx context.Context, dbConn Querier, batch *data.Batch) ([]TableStats, error) {
	sets := []struct {
		table   string
		records []data.Record
	}{
		{TableClients, asRecords(batch.Clients)},
		{TableContracts, asRecords(batch.Contracts)},
		{TablePremiums, asRecords(batch.Premiums)},
		{TableRedemptions, asRecords(batch.Redemptions)},
	}

	stats := make([]TableStats, 0, len(sets))

	for _, set := range sets {
		tableStats, err := loader.loadTable(ctx, dbConn, set.table, set.records)
		if err != nil {
			return stats, err
		}

		log.Info().Str("Table", tableStats.Table).Int64("Attempted", tableStats.Attempted).
			Int64("Inserted", tableStats.Inserted).Msg("entity load complete")

		stats = append(stats, tableStats)
	}

	return stats, nil
}

func (loader *Loader) loadTable(ctx context.Context, dbConn Querier, table string, records []data.Record) (TableStats, error) {
	stats := TableStats{Table: table}

	if len(records) == 0 {
		return stats, nil
	}

	destColumns, err := loader.tableColumns(ctx, dbConn, table)
	if err != nil {
		return stats, err
	}

	keep, keepIdx, dropped := projectColumns(records[0].Columns(), destColumns)
	if len(dropped) > 0 {
		log.Warn().Str("Table", table).Strs("Fields", dropped).
			Msg("destination schema is missing extract fields, dropping them")
	}

	if len(keep) == 0 {
		log.Warn().Str("Table", table).Msg("no extract field matches the destination schema, nothing to insert")
		return stats, nil
	}

	batchSize := loader.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	for start := 0; start < len(records); start += batchSize {
		end := min(start+batchSize, len(records))
		chunk := records[start:end]

		args := make([]any, 0, len(chunk)*len(keep))
		for _, record := range chunk {
			row := record.Row()
			for _, idx := range keepIdx {
				args = append(args, row[idx])
			}
		}

		tag, err := dbConn.Exec(ctx, insertSQL(table, keep, len(chunk)), args...)
		if err != nil {
			return stats, fmt.Errorf("inserting into %s.%s: %w", Schema, table, err)
		}

		stats.Attempted += int64(len(chunk))
		stats.Inserted += tag.RowsAffected()
	}

	return stats, nil
}

// tableColumns returns the destination column set, memoized per table for
// the lifetime of the loader
func (loader *Loader) tableColumns(ctx context.Context, dbConn Querier, table string) (map[string]struct{}, error) {
	if columns, ok := loader.columns.Get(table); ok {
		return columns, nil
	}

	var names []string
	if err := pgxscan.Select(ctx, dbConn, &names,
		`SELECT column_name FROM information_schema.columns WHERE table_schema = $1 AND table_name = $2`,
		Schema, table); err != nil {
		return nil, fmt.Errorf("introspecting columns of %s.%s: %w", Schema, table, err)
	}

	columns := make(map[string]struct{}, len(names))
	for _, name := range names {
		columns[name] = struct{}{}
	}

	loader.columns.Set(table, columns)

	return columns, nil
}

// projectColumns intersects extract fields with the destination column set,
// preserving field order
func projectColumns(fields []string, dest map[string]struct{}) (keep []string, keepIdx []int, dropped []string) {
	for idx, field := range fields {
		if _, ok := dest[field]; ok {
			keep = append(keep, field)
			keepIdx = append(keepIdx, idx)
		} else {
			dropped = append(dropped, field)
		}
	}

	return keep, keepIdx, dropped
}

func insertSQL(table string, columns []string, numRows int) string {
	builder := strings.Builder{}
	fmt.Fprintf(&builder, `INSERT INTO %s.%s ("%s") VALUES `, Schema, table, strings.Join(columns, `", "`))

	arg := 1
	for row := 0; row < numRows; row++ {
		if row > 0 {
			builder.WriteString(", ")
		}

		builder.WriteByte('(')
		for col := range columns {
			if col > 0 {
				builder.WriteString(", ")
			}
			fmt.Fprintf(&builder, "$%d", arg)
			arg++
		}
		builder.WriteByte(')')
	}

	builder.WriteString(" ON CONFLICT (id) DO NOTHING")

	return builder.String()
}

func asRecords[T data.Record](records []T) []data.Record {
	out := make([]data.Record, len(records))
	for idx, record := range records {
		out[idx] = record
	}

	return out
}

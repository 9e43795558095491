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
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/xeonx/timeago"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Summary returns a description of the warehouse in markdown
func (warehouse *Warehouse) Summary(ctx context.Context) (string, error) {
	p := message.NewPrinter(language.English)
	builder := strings.Builder{}

	builder.WriteString("# Capitalização Warehouse\n\n")
	builder.WriteString("## Details\n\n")
	builder.WriteString(fmt.Sprintf("Database: %s\n\n", warehouse.DBUrl))

	for _, table := range []string{TableClients, TableContracts, TablePremiums, TableRedemptions} {
		count := 0
		if err := warehouse.DB.QueryRow(ctx,
			fmt.Sprintf("SELECT count(*) FROM %s.%s", Schema, table)).Scan(&count); err != nil {
			return "", err
		}

		builder.WriteString(p.Sprintf("  * %s: %d rows\n", table, count))
	}

	builder.WriteString("\n")

	var lastRun time.Time
	if err := warehouse.DB.QueryRow(ctx,
		"SELECT coalesce(max(finished_at), '0001-01-01'::timestamptz) FROM analytics.etl_runs").Scan(&lastRun); err != nil {
		return "", err
	}

	if lastRun.IsZero() || lastRun.Year() == 1 {
		builder.WriteString("Last Run: Never\n\n")
	} else {
		age := timeago.English.Format(lastRun)
		builder.WriteString(fmt.Sprintf("Last Run: %s (%s)\n\n", age, lastRun.Local().Format("01/02/2006")))
	}

	builder.WriteString("## Recent runs\n\n")

	var runs []*Run
	if err := pgxscan.Select(ctx, warehouse.DB, &runs, `SELECT id, started_at, finished_at,
truncated, macro_enriched, report_requested, rows_attempted, rows_inserted
FROM analytics.etl_runs ORDER BY finished_at DESC LIMIT 10`); err != nil {
		return "", err
	}

	for _, run := range runs {
		flags := make([]string, 0, 3)
		if run.Truncated {
			flags = append(flags, "truncate")
		}
		if run.MacroEnriched {
			flags = append(flags, "macro")
		}
		if run.ReportRequested {
			flags = append(flags, "report")
		}

		flagNote := ""
		if len(flags) > 0 {
			flagNote = fmt.Sprintf(" {%s}", strings.Join(flags, ","))
		}

		builder.WriteString(p.Sprintf("  * %s: %d/%d rows inserted%s [%s]\n",
			run.FinishedAt.Format("2006-01-02 15:04"), run.RowsInserted, run.RowsAttempted,
			flagNote, run.ID.String()[:6]))
	}

	return builder.String(), nil
}

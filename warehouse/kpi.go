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

	"github.com/rs/zerolog/log"
)

// RebuildMonthlyKPI drops and recreates the monthly contribution aggregate
// from the contract table. There is no incremental path: the table is a pure
// function of the current fact_contrato rows.
func RebuildMonthlyKPI(ctx context.Context, dbConn Querier) error {
	if _, err := dbConn.Exec(ctx, `DROP TABLE IF EXISTS analytics.kpi_contribuicoes_mensais`); err != nil {
		return err
	}

	if _, err := dbConn.Exec(ctx, `CREATE TABLE analytics.kpi_contribuicoes_mensais AS
SELECT date_trunc('month', data_inicio) AS mes,
       SUM(valor_mensal) AS total_mensal
FROM analytics.fact_contrato
GROUP BY 1
ORDER BY 1`); err != nil {
		return err
	}

	log.Info().Str("Table", TableMonthlyKPI).Msg("monthly KPI aggregate rebuilt")

	return nil
}

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

	"github.com/rs/zerolog/log"
)

// minimalSchema is just enough DDL to run a load when the migration source
// is unusable. It mirrors the embedded migrations but carries no indexes or
// constraints beyond primary and foreign keys.
const minimalSchema = `
CREATE SCHEMA IF NOT EXISTS analytics;

CREATE TABLE IF NOT EXISTS analytics.dim_cliente (
    id           BIGINT PRIMARY KEY,
    nome         TEXT,
    estado       CHAR(2),
    data_inicio  DATE
);

CREATE TABLE IF NOT EXISTS analytics.fact_contrato (
    id            BIGINT PRIMARY KEY,
    cliente_id    BIGINT REFERENCES analytics.dim_cliente(id),
    valor_mensal  NUMERIC(12,2),
    data_inicio   DATE,
    status        TEXT
);

CREATE TABLE IF NOT EXISTS analytics.fact_premio (
    id           BIGINT PRIMARY KEY,
    contrato_id  BIGINT REFERENCES analytics.fact_contrato(id),
    data_premio  DATE,
    valor        NUMERIC(12,2)
);

CREATE TABLE IF NOT EXISTS analytics.fact_resgate (
    id            BIGINT PRIMARY KEY,
    contrato_id   BIGINT REFERENCES analytics.fact_contrato(id),
    data_resgate  DATE,
    valor        NUMERIC(12,2)
);

CREATE TABLE IF NOT EXISTS analytics.etl_runs (
    id                UUID PRIMARY KEY,
    started_at        TIMESTAMPTZ NOT NULL,
    finished_at       TIMESTAMPTZ NOT NULL,
    truncated         BOOLEAN NOT NULL DEFAULT FALSE,
    macro_enriched    BOOLEAN NOT NULL DEFAULT FALSE,
    report_requested  BOOLEAN NOT NULL DEFAULT FALSE,
    rows_attempted    BIGINT NOT NULL DEFAULT 0,
    rows_inserted     BIGINT NOT NULL DEFAULT 0
);
`

// optionalColumns are additively guaranteed on every run; older warehouses
// gain them without a destructive migration
var optionalColumns = []string{
	`ALTER TABLE analytics.dim_cliente
    ADD COLUMN IF NOT EXISTS idade INT,
    ADD COLUMN IF NOT EXISTS faixa_etaria TEXT,
    ADD COLUMN IF NOT EXISTS renda_mensal NUMERIC(12,2)`,
	`ALTER TABLE analytics.fact_contrato
    ADD COLUMN IF NOT EXISTS tipo_titulo TEXT,
    ADD COLUMN IF NOT EXISTS rentabilidade_estim NUMERIC(10,6)`,
}

// EnsureSchema idempotently guarantees the warehouse tables exist. The
// embedded migrations are the primary source; if they cannot be applied the
// built-in minimal schema is used instead, which is a warning rather than a
// failure. Optional columns are ensured additively on both paths and no data
// rows are ever modified.
func (warehouse *Warehouse) EnsureSchema(ctx context.Context) error {
	if err := warehouse.migrate(warehouse.DBUrl); err != nil {
		log.Warn().Err(err).Msg("schema migrations unavailable, applying built-in minimal schema")

		if _, err := warehouse.DB.Exec(ctx, minimalSchema); err != nil {
			return fmt.Errorf("applying minimal schema: %w", err)
		}
	}

	for _, stmt := range optionalColumns {
		if _, err := warehouse.DB.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensuring optional columns: %w", err)
		}
	}

	return nil
}

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

	"github.com/brasilcap-analytics/capetl/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the warehouse schema all entity and derived tables live in
const Schema = "analytics"

// Entity table names in foreign-key dependency order
const (
	TableClients     = "dim_cliente"
	TableContracts   = "fact_contrato"
	TablePremiums    = "fact_premio"
	TableRedemptions = "fact_resgate"
	TableMonthlyKPI  = "kpi_contribuicoes_mensais"
	TableRuns        = "etl_runs"
)

// Querier is the subset of pgx used by warehouse operations. Both
// *pgxpool.Pool and pgx.Tx satisfy it, so every operation can run inside or
// outside the run transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Pool adds transaction control and lifecycle to Querier
type Pool interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// Warehouse is a handle on the relational store backing the pipeline. It is
// acquired per run and released on all exit paths.
type Warehouse struct {
	DBUrl string
	DB    Pool

	migrate func(databaseURL string) error
}

// New wraps an existing pool in a Warehouse handle
func New(dbURL string, pool Pool) *Warehouse {
	return &Warehouse{
		DBUrl:   dbURL,
		DB:      pool,
		migrate: db.Migrate,
	}
}

// Connect opens a connection pool against the warehouse
func Connect(ctx context.Context, dbURL string) (*Warehouse, error) {
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, err
	}

	return New(dbURL, pool), nil
}

// Close releases the connection pool
func (warehouse *Warehouse) Close() {
	warehouse.DB.Close()
}

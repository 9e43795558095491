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

import "github.com/shopspring/decimal"

// Contract is a row of analytics.fact_contrato. ClientID may reference a
// client that is absent from the extract; referential integrity is left to
// the warehouse constraints.
type Contract struct {
	ID           int64           `csv:"id"`
	ClientID     int64           `csv:"cliente_id"`
	MonthlyValue decimal.Decimal `csv:"valor_mensal"`
	StartDate    Date            `csv:"data_inicio"`
	Status       string          `csv:"status"`
	TitleType    string          `csv:"tipo_titulo"`

	// EstimatedYield is only populated by the macro enrichment step; nil
	// means enrichment was skipped or had no data at all
	EstimatedYield *float64 `csv:"-"`
}

func (contract *Contract) Columns() []string {
	return []string{"id", "cliente_id", "valor_mensal", "data_inicio", "status",
		"tipo_titulo", "rentabilidade_estim"}
}

func (contract *Contract) Row() []any {
	return []any{contract.ID, contract.ClientID, contract.MonthlyValue,
		contract.StartDate.DBValue(), contract.Status, contract.TitleType,
		contract.EstimatedYield}
}

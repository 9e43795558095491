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

// Client is a row of analytics.dim_cliente. Identifiers are assigned by the
// upstream system and are stable across extracts.
type Client struct {
	ID            int64            `csv:"id"`
	Name          string           `csv:"nome"`
	State         string           `csv:"estado"`
	Age           *int             `csv:"idade"`
	AgeBand       string           `csv:"faixa_etaria"`
	MonthlyIncome *decimal.Decimal `csv:"renda_mensal"`
	StartDate     Date             `csv:"data_inicio"`
}

func (client *Client) Columns() []string {
	return []string{"id", "nome", "estado", "idade", "faixa_etaria", "renda_mensal", "data_inicio"}
}

func (client *Client) Row() []any {
	return []any{client.ID, client.Name, client.State, client.Age, client.AgeBand,
		client.MonthlyIncome, client.StartDate.DBValue()}
}

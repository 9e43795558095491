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

// Premium is a row of analytics.fact_premio
type Premium struct {
	ID         int64           `csv:"id"`
	ContractID int64           `csv:"contrato_id"`
	Date       Date            `csv:"data_premio"`
	Amount     decimal.Decimal `csv:"valor"`
}

func (premium *Premium) Columns() []string {
	return []string{"id", "contrato_id", "data_premio", "valor"}
}

func (premium *Premium) Row() []any {
	return []any{premium.ID, premium.ContractID, premium.Date.DBValue(), premium.Amount}
}

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

// Reset empties all four entity tables and restarts identity sequences.
// Development re-seeding only; callers must opt in explicitly.
func Reset(ctx context.Context, dbConn Querier) error {
	_, err := dbConn.Exec(ctx, `TRUNCATE TABLE
    analytics.fact_premio,
    analytics.fact_resgate,
    analytics.fact_contrato,
    analytics.dim_cliente
RESTART IDENTITY CASCADE`)
	if err != nil {
		return err
	}

	log.Info().Msg("entity tables truncated with identity restart")

	return nil
}

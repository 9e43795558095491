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
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSchemaWithMigrations(t *testing.T) {
	mock := newMock(t)

	mock.ExpectExec(optionalColumns[0]).WillReturnResult(pgxmock.NewResult("ALTER", 0))
	mock.ExpectExec(optionalColumns[1]).WillReturnResult(pgxmock.NewResult("ALTER", 0))

	myWarehouse := &Warehouse{
		DBUrl:   "postgres://localhost/analytics",
		DB:      mock,
		migrate: func(string) error { return nil },
	}

	require.NoError(t, myWarehouse.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchemaFallsBackToMinimalSchema(t *testing.T) {
	mock := newMock(t)

	mock.ExpectExec(minimalSchema).WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec(optionalColumns[0]).WillReturnResult(pgxmock.NewResult("ALTER", 0))
	mock.ExpectExec(optionalColumns[1]).WillReturnResult(pgxmock.NewResult("ALTER", 0))

	myWarehouse := &Warehouse{
		DBUrl:   "postgres://localhost/analytics",
		DB:      mock,
		migrate: func(string) error { return errors.New("migration source unusable") },
	}

	require.NoError(t, myWarehouse.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchemaMinimalSchemaFailure(t *testing.T) {
	mock := newMock(t)

	mock.ExpectExec(minimalSchema).WillReturnError(errors.New("permission denied"))

	myWarehouse := &Warehouse{
		DBUrl:   "postgres://localhost/analytics",
		DB:      mock,
		migrate: func(string) error { return errors.New("migration source unusable") },
	}

	err := myWarehouse.EnsureSchema(context.Background())
	assert.ErrorContains(t, err, "applying minimal schema")
	assert.NoError(t, mock.ExpectationsWereMet())
}

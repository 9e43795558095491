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
package report_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/brasilcap-analytics/capetl/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandGeneratorRunsCommand(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "report.pdf")

	generator := &report.CommandGenerator{Command: "touch", Args: []string{marker}}
	require.NoError(t, generator.Generate(context.Background()))

	_, err := os.Stat(marker)
	assert.NoError(t, err)
}

func TestCommandGeneratorFailure(t *testing.T) {
	generator := &report.CommandGenerator{Command: "false"}
	assert.ErrorContains(t, generator.Generate(context.Background()), "report command")
}

func TestCommandGeneratorUnconfigured(t *testing.T) {
	generator := &report.CommandGenerator{}
	assert.ErrorContains(t, generator.Generate(context.Background()), "no report command configured")
}

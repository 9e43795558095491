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
package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Generator produces the post-run summary report. Generation is an external
// concern; the pipeline logs failures and never escalates them to a non-zero
// exit.
type Generator interface {
	Generate(ctx context.Context) error
}

// CommandGenerator shells out to a configured report command (for example a
// script that renders the PDF with charts)
type CommandGenerator struct {
	Command string
	Args    []string
}

func (generator *CommandGenerator) Generate(ctx context.Context) error {
	if generator.Command == "" {
		return errors.New("no report command configured")
	}

	cmd := exec.CommandContext(ctx, generator.Command, generator.Args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("report command %q: %w", generator.Command, err)
	}

	return nil
}

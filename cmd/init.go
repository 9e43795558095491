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
package cmd

import (
	"os"
	"path/filepath"

	"github.com/brasilcap-analytics/capetl/db"
	"github.com/charmbracelet/huh"
	"github.com/jackc/pgx/v5"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type settings struct {
	DBUrl      string `toml:"dbUrl"`
	RawDir     string `toml:"rawDir"`
	StagingDir string `toml:"stagingDir"`
}

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Gather warehouse configuration and setup schema",
	Run: func(cmd *cobra.Command, args []string) {
		config := settings{
			RawDir:     "data/raw",
			StagingDir: "data/staging",
		}

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Provide the DSN for connecting to your PostgreSQL warehouse (postgres://[user[:password]@][netloc][:port][/dbname][?param1=value1&...])").
					Value(&config.DBUrl).
					Validate(func(dsn string) error {
						_, err := pgx.ParseConfig(dsn)
						return err
					}),
			),

			huh.NewGroup(
				huh.NewInput().
					Title("Where are the staged CSV extracts?").
					Value(&config.RawDir),

				huh.NewInput().
					Title("Where should cached macro series live?").
					Value(&config.StagingDir),
			),
		)

		err := form.Run()
		if err != nil {
			log.Fatal().Err(err).Msg("error gathering warehouse settings")
		}

		log.Info().Msg("creating warehouse tables")

		// run migration
		if err := db.Migrate(config.DBUrl); err != nil {
			log.Fatal().Err(err).Msg("error running database migration")
		}

		log.Info().Msg("warehouse tables created")

		// save settings to config file
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatal().Err(err).Msg("could not determine user home directory")
		}

		configFN := filepath.Join(home, ".capetl.toml")
		log.Info().Str("ConfigFile", configFN).Msg("Saving warehouse connection info to config file")
		configData, err := toml.Marshal(config)
		if err != nil {
			log.Fatal().Err(err).Msg("could not marshal configuration data")
		}

		err = os.WriteFile(configFN, configData, 0644)
		if err != nil {
			log.Fatal().Err(err).Str("FileName", configFN).Msg("could not save configuration to file")
		}

		log.Info().Msg("Your warehouse has been initialized")
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

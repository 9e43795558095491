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

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "capetl",
	Short: "capetl loads capitalização extracts into the analytics warehouse",
	Long: `capetl is a one-shot batch ETL job for a capitalização portfolio. It reads
staged CSV extracts (clients, contracts, premiums, redemptions), reconciles
the warehouse schema, merges the extracts under insert-only upsert semantics,
rebuilds the monthly contribution KPI, and can optionally enrich contracts
with CDI/IPCA reference series from the Banco Central SGS API (falling back
to a local cache when the API is unreachable) and hand off to an external
report generator.

Loads are idempotent: a row whose id already exists in the warehouse is
skipped, so re-running a load against the same or a grown extract always
converges to the union of all ids ever seen.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.capetl.toml)")
	rootCmd.PersistentFlags().String("dbUrl", "", "database connection string")
	rootCmd.PersistentFlags().String("rawDir", "data/raw", "directory containing the staged CSV extracts")
	rootCmd.PersistentFlags().String("stagingDir", "data/staging", "directory holding cached macro series")
	rootCmd.PersistentFlags().Bool("latin1", false, "transcode extracts from ISO-8859-1")

	for _, flag := range []string{"dbUrl", "rawDir", "stagingDir", "latin1"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			log.Panic().Err(err).Str("Flag", flag).Msg("BindPFlag failed")
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".capetl" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("toml")
		viper.SetConfigName(".capetl")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Info().Str("ConfigFN", viper.ConfigFileUsed()).Msg("Using config file")
	}
}

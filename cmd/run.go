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
	"context"
	"time"

	"github.com/brasilcap-analytics/capetl/bcb"
	"github.com/brasilcap-analytics/capetl/enrich"
	"github.com/brasilcap-analytics/capetl/etl"
	"github.com/brasilcap-analytics/capetl/ingest"
	"github.com/brasilcap-analytics/capetl/report"
	"github.com/brasilcap-analytics/capetl/warehouse"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	truncateFlag bool
	macroFlag    bool
	reportFlag   bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute the capitalização ETL pipeline",
	Long: `The run sub-command executes one ETL pass: schema reconciliation, staged
extract ingestion, optional CDI/IPCA enrichment, the conflict-aware entity
load, and the monthly KPI rebuild. Optional stages are off by default;
--truncate empties the entity tables first (development re-seeding only).`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		myWarehouse, err := warehouse.Connect(ctx, viper.GetString("dbUrl"))
		if err != nil {
			log.Fatal().Err(err).Msg("could not connect to warehouse")
		}
		defer myWarehouse.Close()

		pipeline := &etl.Pipeline{
			Warehouse: myWarehouse,
			Reader:    ingest.NewReader(viper.GetString("rawDir"), viper.GetBool("latin1")),
			Enricher:  enrich.New(bcb.NewClient(), bcb.NewCache(viper.GetString("stagingDir"))),
			Loader:    warehouse.NewLoader(),
			Reporter:  &report.CommandGenerator{Command: viper.GetString("reportCommand")},
			Opts: etl.Options{
				Truncate: truncateFlag,
				Macro:    macroFlag,
				Report:   reportFlag,
			},
		}

		startTime := time.Now()

		if err := pipeline.Run(ctx); err != nil {
			log.Fatal().Err(err).Msg("ETL run failed")
		}

		log.Info().Dur("RunTime", time.Since(startTime)).Msg("ETL run finished")
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&truncateFlag, "truncate", false, "truncate entity tables before loading (dev re-seed)")
	runCmd.Flags().BoolVar(&macroFlag, "bcb", false, "enrich contracts with CDI/IPCA from the Banco Central")
	runCmd.Flags().BoolVar(&reportFlag, "report", false, "generate the summary report after the load")
}

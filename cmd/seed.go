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
	"time"

	"github.com/brasilcap-analytics/capetl/data"
	"github.com/brasilcap-analytics/capetl/ingest"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	numClients   int
	numContracts int
	seedValue    uint64
)

var brazilianStates = []string{"RJ", "SP", "MG", "RS", "BA", "PR", "PE", "SC", "DF", "GO"}

var titleTypes = []string{"Mensal", "Trimestral", "Anual"}

var monthlyValues = []int{50, 90, 120, 150, 200, 300, 400, 500, 800, 1000}

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate synthetic staged extracts for development",
	Long: `The seed sub-command writes synthetic clientes/contratos/premios/resgates
CSV extracts into the raw directory so the pipeline can run without real
upstream data. Pass --seed for reproducible output.`,
	Run: func(cmd *cobra.Command, args []string) {
		faker := gofakeit.New(seedValue)
		now := time.Now().UTC()

		rawDir := viper.GetString("rawDir")
		if err := os.MkdirAll(rawDir, 0o755); err != nil {
			log.Fatal().Err(err).Str("Dir", rawDir).Msg("could not create raw directory")
		}

		clients := make([]*data.Client, 0, numClients)
		for id := 1; id <= numClients; id++ {
			age := faker.Number(18, 75)
			income := decimal.NewFromInt(int64(faker.Number(1500, 20500)))

			clients = append(clients, &data.Client{
				ID:            int64(id),
				Name:          faker.Name(),
				State:         faker.RandomString(brazilianStates),
				Age:           &age,
				AgeBand:       ageBand(age),
				MonthlyIncome: &income,
				StartDate:     data.Date{Time: faker.DateRange(now.AddDate(-2, 0, 0), now)},
			})
		}

		contracts := make([]*data.Contract, 0, numContracts)
		redeemed := make([]int64, 0, numContracts)
		for idx := 1; idx <= numContracts; idx++ {
			status := "ATIVO"
			switch chance := faker.Float32Range(0, 1); {
			case chance < 0.1:
				status = "CANCELADO"
			case chance < 0.35:
				status = "RESGATADO"
			}

			contract := &data.Contract{
				ID:           int64(1000 + idx),
				ClientID:     int64(faker.Number(1, numClients)),
				MonthlyValue: decimal.NewFromInt(int64(faker.RandomInt(monthlyValues))),
				StartDate:    data.Date{Time: faker.DateRange(now.AddDate(0, -18, 0), now)},
				Status:       status,
				TitleType:    faker.RandomString(titleTypes),
			}

			if status == "RESGATADO" {
				redeemed = append(redeemed, contract.ID)
			}

			contracts = append(contracts, contract)
		}

		premiums := make([]*data.Premium, 0, 249)
		for id := 1; id < 250; id++ {
			premiums = append(premiums, &data.Premium{
				ID:         int64(id),
				ContractID: contracts[faker.Number(0, len(contracts)-1)].ID,
				Date:       data.Date{Time: faker.DateRange(now.AddDate(-1, 0, 0), now)},
				Amount:     decimal.NewFromFloat(faker.Price(1000, 150000)),
			})
		}

		redemptions := make([]*data.Redemption, 0, 199)
		for id := 1; id < 200 && len(redeemed) > 0; id++ {
			redemptions = append(redemptions, &data.Redemption{
				ID:         int64(id),
				ContractID: redeemed[faker.Number(0, len(redeemed)-1)],
				Date:       data.Date{Time: faker.DateRange(now.AddDate(0, -8, 0), now)},
				Amount:     decimal.NewFromFloat(faker.Price(200, 8000)),
			})
		}

		writeExtract(filepath.Join(rawDir, ingest.ClientsFile), &clients)
		writeExtract(filepath.Join(rawDir, ingest.ContractsFile), &contracts)
		writeExtract(filepath.Join(rawDir, ingest.PremiumsFile), &premiums)
		writeExtract(filepath.Join(rawDir, ingest.RedemptionsFile), &redemptions)

		log.Info().Str("Dir", rawDir).Int("NumClients", len(clients)).Int("NumContracts", len(contracts)).
			Int("NumPremiums", len(premiums)).Int("NumRedemptions", len(redemptions)).
			Msg("synthetic extracts written")
	},
}

func ageBand(age int) string {
	switch {
	case age <= 25:
		return "18-25"
	case age <= 35:
		return "26-35"
	case age <= 45:
		return "36-45"
	case age <= 60:
		return "46-60"
	default:
		return "60+"
	}
}

func writeExtract(path string, records any) {
	file, err := os.Create(path)
	if err != nil {
		log.Fatal().Err(err).Str("FileName", path).Msg("could not create extract file")
	}
	defer file.Close()

	if err := gocsv.MarshalFile(records, file); err != nil {
		log.Fatal().Err(err).Str("FileName", path).Msg("could not write extract file")
	}
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().IntVar(&numClients, "clients", 250, "number of synthetic clients")
	seedCmd.Flags().IntVar(&numContracts, "contracts", 600, "number of synthetic contracts")
	seedCmd.Flags().Uint64Var(&seedValue, "seed", 0, "random seed (0 picks a random one)")
}

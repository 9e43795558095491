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
package ingest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/brasilcap-analytics/capetl/data"
	"github.com/gocarina/gocsv"
	"golang.org/x/text/encoding/charmap"
)

// Staged extract file names
const (
	ClientsFile     = "clientes.csv"
	ContractsFile   = "contratos.csv"
	PremiumsFile    = "premios.csv"
	RedemptionsFile = "resgates.csv"
)

// Reader loads the four staged entity extracts from a raw directory. A
// missing file is a fatal error for the run; malformed optional values
// within a file coerce instead of failing.
type Reader struct {
	Dir string

	// Latin1 transcodes extracts from ISO-8859-1, still common for
	// Brazilian upstream systems
	Latin1 bool
}

// NewReader returns a Reader over the given raw directory
func NewReader(dir string, latin1 bool) *Reader {
	return &Reader{Dir: dir, Latin1: latin1}
}

// ReadBatch reads all four extracts
func (reader *Reader) ReadBatch() (*data.Batch, error) {
	batch := &data.Batch{}

	if err := reader.readFile(ClientsFile, &batch.Clients); err != nil {
		return nil, err
	}
	if err := reader.readFile(ContractsFile, &batch.Contracts); err != nil {
		return nil, err
	}
	if err := reader.readFile(PremiumsFile, &batch.Premiums); err != nil {
		return nil, err
	}
	if err := reader.readFile(RedemptionsFile, &batch.Redemptions); err != nil {
		return nil, err
	}

	normalize(batch)

	return batch, nil
}

func (reader *Reader) readFile(name string, out any) error {
	path := filepath.Join(reader.Dir, name)

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("required input file %s: %w", path, err)
	}
	defer file.Close()

	var source io.Reader = file
	if reader.Latin1 {
		source = charmap.ISO8859_1.NewDecoder().Reader(file)
	}

	if err := gocsv.Unmarshal(source, out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	return nil
}

// normalize strips stray whitespace from free-text fields
func normalize(batch *data.Batch) {
	for _, client := range batch.Clients {
		client.Name = strings.TrimSpace(client.Name)
		client.State = strings.TrimSpace(client.State)
		client.AgeBand = strings.TrimSpace(client.AgeBand)
	}

	for _, contract := range batch.Contracts {
		contract.Status = strings.TrimSpace(contract.Status)
		contract.TitleType = strings.TrimSpace(contract.TitleType)
	}
}

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
package bcb

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/brasilcap-analytics/capetl/data"
	"github.com/gocarina/gocsv"
	"github.com/gosimple/slug"
)

// Cache series names
const (
	CDIName  = "cdi"
	IPCAName = "ipca"
)

// Cache persists the most recent successfully fetched copy of each macro
// series as a flat CSV under a staging directory. It is last-write-wins, not
// versioned.
type Cache struct {
	Dir string
}

// NewCache returns a Cache rooted at dir
func NewCache(dir string) *Cache {
	return &Cache{Dir: dir}
}

func (cache *Cache) path(name string) string {
	return filepath.Join(cache.Dir, slug.Make(name)+".csv")
}

// Save overwrites the cached series wholesale. An empty series is a no-op so
// a failed fetch can never clobber an earlier good copy.
func (cache *Cache) Save(name string, series data.RateSeries) error {
	if len(series) == 0 {
		return nil
	}

	if err := os.MkdirAll(cache.Dir, 0o755); err != nil {
		return err
	}

	file, err := os.Create(cache.path(name))
	if err != nil {
		return err
	}
	defer file.Close()

	return gocsv.MarshalFile(&series, file)
}

// Load returns the cached series, or nil when no cache exists yet
func (cache *Cache) Load(name string) (data.RateSeries, error) {
	file, err := os.Open(cache.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	series := data.RateSeries{}
	if err := gocsv.UnmarshalFile(file, &series); err != nil {
		return nil, err
	}

	return series, nil
}

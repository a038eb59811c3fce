// Copyright 2024 Tomas Machalek <tomas.machalek@gmail.com>
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

package cnf

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
)

// FilterConf specifies a plug-in containing a compatible component filter
// (see catalog.ComponentFilter).
type FilterConf struct {
	Lib string `json:"lib"`
	Fn  string `json:"fn"`
}

// DBConf selects and configures the catalog storage backend.
type DBConf struct {
	Type           string   `json:"type"`
	Name           string   `json:"name"`
	Host           string   `json:"host"`
	User           string   `json:"user"`
	Password       string   `json:"password"`
	PreconfQueries []string `json:"preconfSettings"`
}

// CatalogConf holds configuration for a single catalog-building run: which
// schematic/symbol files to parse and where to store the derived facts.
type CatalogConf struct {
	// Path is either a single file or a directory searched recursively
	// for files named with one of FileSuffixes.
	Path string `json:"path,omitempty"`

	// Paths is an alternative to Path allowing explicit selection of one
	// or more files.
	Paths []string `json:"paths,omitempty"`

	// FileSuffixes restricts which files ListFiles returns for Path,
	// whether Path is a directory or a single file. Defaults to
	// {".sch", ".sym"} when empty.
	FileSuffixes []string `json:"fileSuffixes,omitempty"`

	DB DBConf `json:"db"`

	Filter FilterConf `json:"filter"`

	Verbosity int `json:"verbosity"`
}

func (c *CatalogConf) HasConfiguredFilter() bool {
	return c.Filter.Lib != "" && c.Filter.Fn != ""
}

// Suffixes returns FileSuffixes, or the default {".sch", ".sym"} when
// unconfigured.
func (c *CatalogConf) Suffixes() []string {
	if len(c.FileSuffixes) > 0 {
		return c.FileSuffixes
	}
	return []string{".sch", ".sym"}
}

func LoadConf(confPath string) (*CatalogConf, error) {
	rawData, err := os.ReadFile(confPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog config: %w", err)
	}
	var conf CatalogConf
	if err := sonic.Unmarshal(rawData, &conf); err != nil {
		return nil, fmt.Errorf("failed to load catalog config: %w", err)
	}
	return &conf, nil
}

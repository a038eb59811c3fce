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

package mysql

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

func joinArgs(args []string) string {
	return strings.Join(args, ", ")
}

// dropExisting drops existing tables. It is safe to call even if neither
// exists.
func dropExisting(database *sql.DB) error {
	log.Info().Msg("attempting to drop possible existing catalog tables")
	for _, table := range []string{"catalog_component", "catalog_file"} {
		if _, err := database.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
			return fmt.Errorf("failed to drop table '%s': %s", table, err)
		}
	}
	return nil
}

// createSchema creates the catalog_file and catalog_component tables.
func createSchema(database *sql.DB) error {
	log.Info().Msg("attempting to create catalog tables")

	_, err := database.Exec(
		`CREATE TABLE catalog_file (
			id INTEGER PRIMARY KEY auto_increment,
			path VARCHAR(1024) UNIQUE,
			xschem_version VARCHAR(64),
			file_version VARCHAR(64),
			symbol_type VARCHAR(255),
			text_count INTEGER,
			wire_count INTEGER,
			line_count INTEGER,
			rectangle_count INTEGER,
			polygon_count INTEGER,
			arc_count INTEGER,
			component_count INTEGER,
			distinct_prop_keys TEXT,
			parse_duration_ms INTEGER,
			parse_error TEXT
		)`)
	if err != nil {
		return fmt.Errorf("failed to create table 'catalog_file': %s", err)
	}

	_, err = database.Exec(
		`CREATE TABLE catalog_component (
			id INTEGER PRIMARY KEY auto_increment,
			file_path VARCHAR(1024),
			reference VARCHAR(255),
			pos_x DOUBLE,
			pos_y DOUBLE,
			rotation INTEGER,
			flip INTEGER,
			embedding_depth INTEGER,
			name_attr VARCHAR(255)
		)`)
	if err != nil {
		return fmt.Errorf("failed to create table 'catalog_component': %s", err)
	}

	_, err = database.Exec("CREATE INDEX catalog_component_file_path_idx ON catalog_component(file_path(255))")
	if err != nil {
		return fmt.Errorf("failed to create index catalog_component_file_path_idx: %s", err)
	}
	return nil
}

func joinArgsPlaceholders(n int) string {
	placeholders := make([]string, n)
	for i := range placeholders {
		placeholders[i] = "?"
	}
	return joinArgs(placeholders)
}

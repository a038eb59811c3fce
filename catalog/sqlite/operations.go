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

package sqlite

/*
This file contains the database operations required to create and
populate the catalog schema (two tables: one per parsed file, one per
component instance).
*/

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	_ "github.com/mattn/go-sqlite3" // load the driver
)

// openDatabase opens a sqlite3 database specified by its filesystem path.
func openDatabase(dbPath string) (*sql.DB, error) {
	database, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog db: %s", err)
	}
	return database, nil
}

func joinArgs(args []string) string {
	return strings.Join(args, ", ")
}

// prepareInsert creates a prepared statement for an INSERT operation.
func prepareInsert(tx *sql.Tx, table string, cols []string) (*sql.Stmt, error) {
	valReplac := make([]string, len(cols))
	for i := range cols {
		valReplac[i] = "?"
	}
	stmt, err := tx.Prepare(
		fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, joinArgs(cols), joinArgs(valReplac)))
	if err != nil {
		return nil, fmt.Errorf("failed to prepare INSERT: %s", err)
	}
	return stmt, nil
}

// dropExisting drops existing tables. It is safe to call even if neither
// exists.
func dropExisting(database *sql.DB) error {
	log.Info().Msg("Attempting to drop possible existing catalog tables")
	for _, table := range []string{"catalog_component", "catalog_file"} {
		if _, err := database.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
			return fmt.Errorf("failed to drop table '%s': %s", table, err)
		}
	}
	return nil
}

// createSchema creates the catalog_file and catalog_component tables.
func createSchema(database *sql.DB) error {
	log.Info().Msg("Attempting to create catalog tables")

	_, err := database.Exec(
		`CREATE TABLE catalog_file (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT UNIQUE,
			xschem_version TEXT,
			file_version TEXT,
			symbol_type TEXT,
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
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			file_path TEXT,
			reference TEXT,
			pos_x REAL,
			pos_y REAL,
			rotation INTEGER,
			flip INTEGER,
			embedding_depth INTEGER,
			name_attr TEXT
		)`)
	if err != nil {
		return fmt.Errorf("failed to create table 'catalog_component': %s", err)
	}

	_, err = database.Exec("CREATE INDEX catalog_component_file_path_idx ON catalog_component(file_path)")
	if err != nil {
		return fmt.Errorf("failed to create index catalog_component_file_path_idx: %s", err)
	}
	return nil
}

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

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/tomachalek/xschem-parse/catalog"
	"github.com/tomachalek/xschem-parse/cnf"
	"github.com/tomachalek/xschem-parse/fs"
)

// Writer persists a catalog to a sqlite3 file.
type Writer struct {
	database       *sql.DB
	tx             *sql.Tx
	Path           string
	PreconfQueries []string
}

func (w *Writer) DatabaseExists() bool {
	return fs.IsFile(w.Path)
}

func (w *Writer) Initialize(appendMode bool) error {
	var err error
	dbExisted := fs.IsFile(w.Path)
	w.database, err = openDatabase(w.Path)
	if err != nil {
		return err
	}

	if !appendMode {
		if dbExisted {
			log.Warn().Str("path", w.Path).Msg("catalog database already exists, existing data will be deleted")
			if err := dropExisting(w.database); err != nil {
				return err
			}
		}
		if err := createSchema(w.database); err != nil {
			return err
		}
	}

	dbConf := w.PreconfQueries
	if len(dbConf) == 0 {
		dbConf = []string{
			"PRAGMA synchronous = OFF",
			"PRAGMA journal_mode = MEMORY",
		}
	}
	for _, q := range dbConf {
		log.Info().Str("query", q).Msg("applying preconfiguration query")
		w.database.Exec(q)
	}

	w.tx, err = w.database.Begin()
	return err
}

func (w *Writer) PrepareInsert(table string, cols []string) (catalog.InsertOperation, error) {
	if w.tx == nil {
		return nil, fmt.Errorf("cannot prepare insert into %s - no transaction active", table)
	}
	stmt, err := prepareInsert(w.tx, table, cols)
	if err != nil {
		return nil, err
	}
	return &catalog.Insert{Stmt: stmt}, nil
}

func (w *Writer) Commit() error {
	return w.tx.Commit()
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback()
}

func (w *Writer) Close() {
	if err := w.database.Close(); err != nil {
		log.Warn().Err(err).Msg("error closing catalog database")
	}
}

// NewWriter configures a sqlite3-backed Writer from conf.DB.
func NewWriter(conf *cnf.CatalogConf) *Writer {
	return &Writer{
		Path:           conf.DB.Name,
		PreconfQueries: conf.DB.PreconfQueries,
	}
}

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
	"time"

	"github.com/rs/zerolog/log"

	"github.com/go-sql-driver/mysql"

	"github.com/tomachalek/xschem-parse/catalog"
	"github.com/tomachalek/xschem-parse/cnf"
)

// Writer persists a catalog to a MySQL/MariaDB database.
type Writer struct {
	database *sql.DB
	tx       *sql.Tx
	dbName   string
}

func (w *Writer) DatabaseExists() bool {
	row := w.database.QueryRow(
		`SELECT COUNT(*) > 0 FROM information_schema.TABLES WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?`,
		w.dbName, "catalog_file",
	)
	var ans bool
	if err := row.Scan(&ans); err != nil {
		if err == sql.ErrNoRows {
			return false
		}
		log.Error().Err(err).Msg("failed to test catalog storage existence")
		return false
	}
	return ans
}

func (w *Writer) Initialize(appendMode bool) error {
	var err error
	dbExisted := w.DatabaseExists()
	if !appendMode {
		if dbExisted {
			log.Warn().Str("db", w.dbName).Msg("catalog tables already exist, existing data will be deleted")
			if err := dropExisting(w.database); err != nil {
				return err
			}
		}
		if err := createSchema(w.database); err != nil {
			return err
		}
	}
	w.tx, err = w.database.Begin()
	return err
}

func (w *Writer) PrepareInsert(table string, cols []string) (catalog.InsertOperation, error) {
	if w.tx == nil {
		return nil, fmt.Errorf("cannot prepare insert into %s - no transaction active", table)
	}
	stmt, err := w.tx.Prepare(
		fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, joinArgs(cols), joinArgsPlaceholders(len(cols))))
	if err != nil {
		return nil, fmt.Errorf("failed to prepare INSERT into %s: %s", table, err)
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

// NewWriter opens a MySQL/MariaDB connection configured from conf.DB.
func NewWriter(conf *cnf.CatalogConf) (*Writer, error) {
	mconf := mysql.NewConfig()
	mconf.Net = "tcp"
	mconf.Addr = conf.DB.Host
	mconf.User = conf.DB.User
	mconf.Passwd = conf.DB.Password
	mconf.DBName = conf.DB.Name
	mconf.ParseTime = true
	mconf.Loc = time.Local
	database, err := sql.Open("mysql", mconf.FormatDSN())
	if err != nil {
		return nil, err
	}
	return &Writer{database: database, dbName: conf.DB.Name}, nil
}

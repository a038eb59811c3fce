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

package factory

import (
	"fmt"

	"github.com/tomachalek/xschem-parse/catalog"
	"github.com/tomachalek/xschem-parse/catalog/mysql"
	"github.com/tomachalek/xschem-parse/catalog/sqlite"
	"github.com/tomachalek/xschem-parse/cnf"
)

// NullWriter is returned for an unrecognized cnf.DBConf.Type so a caller
// always holds a valid catalog.Writer; every operation fails loudly
// instead of panicking on a nil Writer.
type NullWriter struct{}

func (nw *NullWriter) DatabaseExists() bool { return false }

func (nw *NullWriter) Initialize(appendMode bool) error {
	return fmt.Errorf("no valid catalog database writer installed")
}

func (nw *NullWriter) PrepareInsert(table string, cols []string) (catalog.InsertOperation, error) {
	return nil, fmt.Errorf("no valid catalog database writer installed")
}

func (nw *NullWriter) Commit() error { return fmt.Errorf("no valid catalog database writer installed") }

func (nw *NullWriter) Rollback() error {
	return fmt.Errorf("no valid catalog database writer installed")
}

func (nw *NullWriter) Close() {}

// NewDatabaseWriter selects a catalog.Writer backend based on
// conf.DB.Type.
func NewDatabaseWriter(conf *cnf.CatalogConf) (catalog.Writer, error) {
	switch conf.DB.Type {
	case "sqlite":
		return sqlite.NewWriter(conf), nil
	case "mysql":
		return mysql.NewWriter(conf)
	default:
		return &NullWriter{}, nil
	}
}

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

// Package catalog builds and persists a derived index of many parsed
// Xschem files: one row per file (counts, distinct property keys, parse
// outcome) and one row per component instance found across them. It never
// touches parse/token's syntactic model; it only reads the Schematic a
// successful parse already produced.
package catalog

import "database/sql"

const (
	// FileTable holds one row summarizing a single parsed file.
	FileTable = "catalog_file"

	// ComponentTable holds one row per component instance found across
	// every parsed file.
	ComponentTable = "catalog_component"
)

// FileTableColumns lists catalog_file's columns in insert order. Both
// backends must create a table with exactly these columns, in this order,
// so FileRecord.Values lines up with a prepared INSERT regardless of
// which Writer is in use.
var FileTableColumns = []string{
	"path",
	"xschem_version",
	"file_version",
	"symbol_type",
	"text_count",
	"wire_count",
	"line_count",
	"rectangle_count",
	"polygon_count",
	"arc_count",
	"component_count",
	"distinct_prop_keys",
	"parse_duration_ms",
	"parse_error",
}

// ComponentTableColumns lists catalog_component's columns in insert order.
var ComponentTableColumns = []string{
	"file_path",
	"reference",
	"pos_x",
	"pos_y",
	"rotation",
	"flip",
	"embedding_depth",
	"name_attr",
}

// FileRecord is one catalog_file row.
type FileRecord struct {
	Path             string
	XschemVersion    string
	FileVersion      string
	SymbolType       string
	TextCount        int
	WireCount        int
	LineCount        int
	RectangleCount   int
	PolygonCount     int
	ArcCount         int
	ComponentCount   int
	DistinctPropKeys string
	ParseDurationMs  int64
	ParseError       string
}

// Values returns the record's fields in the same order as
// FileTableColumns, ready to pass to InsertOperation.Exec.
func (r FileRecord) Values() []any {
	return []any{
		r.Path,
		r.XschemVersion,
		r.FileVersion,
		r.SymbolType,
		r.TextCount,
		r.WireCount,
		r.LineCount,
		r.RectangleCount,
		r.PolygonCount,
		r.ArcCount,
		r.ComponentCount,
		r.DistinctPropKeys,
		r.ParseDurationMs,
		r.ParseError,
	}
}

// ComponentRecord is one catalog_component row.
type ComponentRecord struct {
	FilePath       string
	Reference      string
	PosX           float64
	PosY           float64
	Rotation       int
	Flip           bool
	EmbeddingDepth int
	NameAttr       string
}

// Values returns the record's fields in the same order as
// ComponentTableColumns.
func (r ComponentRecord) Values() []any {
	return []any{
		r.FilePath,
		r.Reference,
		r.PosX,
		r.PosY,
		r.Rotation,
		r.Flip,
		r.EmbeddingDepth,
		r.NameAttr,
	}
}

// Insert wraps a prepared INSERT statement, substituting sql.NullString
// for empty strings so optional text columns store SQL NULL rather than
// an empty string.
type Insert struct {
	Stmt *sql.Stmt
}

func (ins *Insert) Exec(values ...any) error {
	for i, v := range values {
		if s, ok := v.(string); ok && s == "" {
			values[i] = sql.NullString{String: "", Valid: false}
		}
	}
	_, err := ins.Stmt.Exec(values...)
	return err
}

// InsertOperation is a single prepared INSERT, reusable across many rows.
type InsertOperation interface {
	Exec(values ...any) error
}

// Writer persists catalog rows to a concrete storage backend.
type Writer interface {
	DatabaseExists() bool
	Initialize(appendMode bool) error
	PrepareInsert(table string, cols []string) (InsertOperation, error)
	Commit() error
	Rollback() error
	Close()
}

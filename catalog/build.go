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

package catalog

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/czcorpus/cnc-gokit/collections"
	"github.com/rs/zerolog/log"

	xschemparse "github.com/tomachalek/xschem-parse"
	"github.com/tomachalek/xschem-parse/cnf"
	"github.com/tomachalek/xschem-parse/fs"
	"github.com/tomachalek/xschem-parse/token"
)

// Status reports the outcome of processing a single file during a
// catalog build.
type Status struct {
	Datetime time.Time
	File     string
	Error    error
}

func sendErrStatus(statusChan chan Status, file string, err error) {
	statusChan <- Status{Datetime: time.Now(), File: file, Error: err}
}

func resolveFiles(conf *cnf.CatalogConf) ([]string, error) {
	if conf.Path != "" && len(conf.Paths) > 0 {
		return nil, fmt.Errorf("cannot use path and paths at the same time")
	}
	if conf.Path != "" {
		return fs.ListFiles(conf.Path, conf.Suffixes()...)
	}
	if len(conf.Paths) > 0 {
		if !fs.AllExist(conf.Paths) {
			return nil, fmt.Errorf("one or more configured paths do not exist")
		}
		return conf.Paths, nil
	}
	return nil, fmt.Errorf("neither path nor paths provide a valid data source")
}

// summarize derives a FileRecord and the component instances worth
// recording (per filter) from a successfully parsed schematic.
func summarize(path string, sch token.Schematic, dur time.Duration, filter ComponentFilter) (FileRecord, []ComponentRecord) {
	keys := collections.NewSet[string]()
	for k := range sch.Version.Property.Attrs {
		keys.Add(k)
	}
	var symbolType string
	if sch.SymbolProperty != nil {
		symbolType = sch.SymbolProperty.Property.Attrs["type"].Text()
		for k := range sch.SymbolProperty.Property.Attrs {
			keys.Add(k)
		}
	}

	components := make([]ComponentRecord, 0, len(sch.Components))
	for _, c := range sch.Components {
		attrs := make(map[string]string, len(c.Property.Attrs))
		for k, v := range c.Property.Attrs {
			attrs[k] = v.Text()
			keys.Add(k)
		}
		if !filter.Apply(attrs) {
			continue
		}
		depth := 0
		if c.Embedding != nil {
			depth = 1
		}
		components = append(components, ComponentRecord{
			FilePath:       path,
			Reference:      c.Reference.Text(),
			PosX:           c.Position.X.Value(),
			PosY:           c.Position.Y.Value(),
			Rotation:       int(c.Rotation),
			Flip:           c.Flip.Bool(),
			EmbeddingDepth: depth,
			NameAttr:       attrs["name"],
		})
	}

	keySlice := keys.ToOrderedSlice()
	sort.Strings(keySlice)

	record := FileRecord{
		Path:             path,
		XschemVersion:    sch.Version.Property.Attrs["version"].Text(),
		FileVersion:      sch.Version.Property.Attrs["file_version"].Text(),
		SymbolType:       symbolType,
		TextCount:        len(sch.Texts),
		WireCount:        len(sch.Wires),
		LineCount:        len(sch.Lines),
		RectangleCount:   len(sch.Rectangles),
		PolygonCount:     len(sch.Polygons),
		ArcCount:         len(sch.Arcs),
		ComponentCount:   len(sch.Components),
		DistinctPropKeys: joinComma(keySlice),
		ParseDurationMs:  dur.Milliseconds(),
	}
	return record, components
}

func joinComma(vs []string) string {
	out := ""
	for i, v := range vs {
		if i > 0 {
			out += ","
		}
		out += v
	}
	return out
}

// BuildCatalog parses every file resolved from conf and persists one
// catalog_file row (and one catalog_component row per matching component)
// per file, through the Writer backend conf.DB.Type selects. The returned
// Status channel carries one Status per error (per-file parse and insert
// failures, and setup or commit failures with an empty File); files that
// are processed without error send nothing. It is closed when the build
// finishes.
func BuildCatalog(ctx context.Context, conf *cnf.CatalogConf, dbWriter Writer, appendMode bool) (chan Status, error) {
	dbExisted := dbWriter.DatabaseExists()
	if !dbExisted && appendMode {
		return nil, fmt.Errorf("append mode requested but the catalog database does not exist")
	}

	files, err := resolveFiles(conf)
	if err != nil {
		return nil, err
	}

	filter, err := LoadCustomFilter(conf.Filter.Lib, conf.Filter.Fn)
	if err != nil {
		return nil, err
	}

	statusChan := make(chan Status)
	go func() {
		defer dbWriter.Close()
		defer close(statusChan)

		if err := dbWriter.Initialize(appendMode); err != nil {
			sendErrStatus(statusChan, "", err)
			return
		}

		fileIns, err := dbWriter.PrepareInsert(FileTable, FileTableColumns)
		if err != nil {
			sendErrStatus(statusChan, "", err)
			return
		}
		componentIns, err := dbWriter.PrepareInsert(ComponentTable, ComponentTableColumns)
		if err != nil {
			sendErrStatus(statusChan, "", err)
			return
		}

		seq, err := NewFileSequence(files...)
		if err != nil {
			sendErrStatus(statusChan, "", err)
			return
		}

		for {
			select {
			case <-ctx.Done():
				sendErrStatus(statusChan, "", ctx.Err())
				return
			default:
			}
			path, contents, ok := seq.Next()
			if !ok {
				break
			}
			log.Info().Str("path", path).Msg("parsing file for catalog")
			t0 := time.Now()
			sch, parseErr := xschemparse.ParseBytesPath(contents, path)
			dur := time.Since(t0)

			var record FileRecord
			var components []ComponentRecord
			if parseErr != nil {
				record = FileRecord{Path: path, ParseDurationMs: dur.Milliseconds(), ParseError: parseErr.Error()}
			} else {
				record, components = summarize(path, sch, dur, filter)
			}

			if err := fileIns.Exec(record.Values()...); err != nil {
				sendErrStatus(statusChan, path, fmt.Errorf("failed to insert catalog_file row: %w", err))
				continue
			}
			for _, c := range components {
				if err := componentIns.Exec(c.Values()...); err != nil {
					sendErrStatus(statusChan, path, fmt.Errorf("failed to insert catalog_component row: %w", err))
				}
			}
			if parseErr != nil {
				sendErrStatus(statusChan, path, fmt.Errorf("failed to parse file: %w", parseErr))
			}
		}
		if seq.Err() != nil {
			sendErrStatus(statusChan, "", fmt.Errorf("failed to read file: %w", seq.Err()))
		}

		if err := dbWriter.Commit(); err != nil {
			sendErrStatus(statusChan, "", err)
		}
	}()

	return statusChan, nil
}

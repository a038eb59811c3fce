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

package xschemparse

import (
	"github.com/tomachalek/xschem-parse/parse"
	"github.com/tomachalek/xschem-parse/span"
	"github.com/tomachalek/xschem-parse/token"
)

// ParseString parses a Schematic from a string.
func ParseString(s string) (token.Schematic, error) {
	return parseFull(span.New(s))
}

// ParseBytes parses a Schematic from a byte slice.
func ParseBytes(b []byte) (token.Schematic, error) {
	return parseFull(span.NewBytes(b))
}

// ParseStringPath parses a Schematic from a string, tagging every
// location in the returned value (and any error) with path, so
// diagnostics render "path:line:col" instead of ":line:col".
func ParseStringPath(s string, path string) (token.Schematic, error) {
	return parseFull(span.NewWithPath(s, path))
}

// ParseBytesPath parses a Schematic from a byte slice, tagging every
// location with path.
func ParseBytesPath(b []byte, path string) (token.Schematic, error) {
	return parseFull(span.NewBytesWithPath(b, path))
}

func parseFull(in span.Span) (token.Schematic, error) {
	sch, err := parse.SchematicFull(in)
	if err != nil {
		return token.Schematic{}, err
	}
	return sch, nil
}

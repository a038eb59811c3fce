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

package parse

import (
	"github.com/tomachalek/xschem-parse/span"
	"github.com/tomachalek/xschem-parse/token"
	"github.com/tomachalek/xschem-parse/xerr"
)

// schematic parses a mandatory version line followed by any number of
// whitespace-separated objects, folding them into a Schematic. depth is
// the current embedding nesting level (0 at the top level).
func schematic(in span.Span, depth int) (span.Span, token.Schematic, *xerr.Error) {
	rest := multispace0(in)
	rest2, ver, err := versionObject(rest)
	if err != nil {
		return in, token.Schematic{}, err
	}

	sch := token.New(ver)
	cur := rest2
	for {
		save := cur
		afterSp, spErr := multispace1(cur)
		if spErr != nil {
			cur = save
			break
		}
		next, obj, objErr := anyObject(afterSp, depth)
		if objErr != nil {
			if objErr.Fatal {
				return in, token.Schematic{}, objErr
			}
			cur = save
			break
		}
		sch = sch.AddObject(obj)
		cur = next
	}
	return cur, sch, nil
}

// Schematic parses in as a top-level schematic, stopping wherever the
// grammar stops recognizing objects. Trailing bytes are left unconsumed
// in the returned span; use SchematicFull to additionally require end of
// input.
func Schematic(in span.Span) (span.Span, token.Schematic, *xerr.Error) {
	return schematic(in, 0)
}

// SchematicFull parses in as a complete schematic, requiring that
// (aside from trailing whitespace) the entire input be consumed.
func SchematicFull(in span.Span) (token.Schematic, *xerr.Error) {
	rest, sch, err := schematic(in, 0)
	if err != nil {
		return token.Schematic{}, err
	}
	rest2 := multispace0(rest)
	if !rest2.IsEmpty() {
		return token.Schematic{}, xerr.New(rest2, xerr.KindEOF)
	}
	return sch, nil
}

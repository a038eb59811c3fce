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

package token

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tomachalek/xschem-parse/span"
)

func textSpan(s string) span.Span { return span.New(s) }

func TestPropertyString(t *testing.T) {
	p := Property{Prop: textSpan("type=regulator")}
	assert.Equal(t, "{type=regulator}", p.String())
}

func TestVersionString(t *testing.T) {
	v := Version{Property: Property{Prop: textSpan("xschem version=3.4.5")}}
	assert.Equal(t, "v {xschem version=3.4.5}", v.String())
}

func TestPolygonStringRecomputesCount(t *testing.T) {
	x1, _ := NewFiniteDouble(0)
	y1, _ := NewFiniteDouble(0)
	x2, _ := NewFiniteDouble(1)
	y2, _ := NewFiniteDouble(1)
	p := Polygon{
		Layer:    3,
		Points:   []Coordinate{{X: x1, Y: y1}, {X: x2, Y: y2}},
		Property: Property{Prop: textSpan("")},
	}
	assert.Equal(t, "P 3 2 0 0 1 1 {}", p.String())
}

func TestComponentStringWithoutEmbedding(t *testing.T) {
	pos, _ := NewVec2(890, -160)
	c := Component{
		Reference: textSpan("capa.sym"),
		Position:  pos,
		Rotation:  RotationZero,
		Flip:      FlipUnflipped,
		Property:  Property{Prop: textSpan("name=C4")},
	}
	assert.Equal(t, "C {capa.sym} 890 -160 0 0 {name=C4}", c.String())
}

func TestComponentStringWithEmbedding(t *testing.T) {
	pos, _ := NewVec2(0, 0)
	inner := New(Version{Property: Property{Prop: textSpan("xschem version=1.2")}})
	c := Component{
		Reference: textSpan("r.sym"),
		Position:  pos,
		Rotation:  RotationZero,
		Flip:      FlipUnflipped,
		Property:  Property{Prop: textSpan("")},
		Embedding: &Embedding{Schematic: inner},
	}
	want := "C {r.sym} 0 0 0 0 {}\n[\nv {xschem version=1.2}\n]"
	assert.Equal(t, want, c.String())
}

func TestSchematicAddObjectLastWinsForSingletons(t *testing.T) {
	sch := New(Version{Property: Property{Prop: textSpan("xschem version=1.2")}})
	sch = sch.AddObject(Object{Kind: KindSymbolProperty, SymbolProperty: SymbolProperty{Property: Property{Prop: textSpan("first")}}})
	sch = sch.AddObject(Object{Kind: KindSymbolProperty, SymbolProperty: SymbolProperty{Property: Property{Prop: textSpan("second")}}})
	assert.NotNil(t, sch.SymbolProperty)
	assert.Equal(t, "second", sch.SymbolProperty.Property.Prop.Text())
}

func TestSchematicAddObjectAppendsGraphicalObjectsInOrder(t *testing.T) {
	sch := New(Version{Property: Property{Prop: textSpan("xschem version=1.2")}})
	sch = sch.AddObject(Object{Kind: KindLine, Line: Line{Layer: 1, Property: Property{Prop: textSpan("")}}})
	sch = sch.AddObject(Object{Kind: KindLine, Line: Line{Layer: 2, Property: Property{Prop: textSpan("")}}})
	assert.Equal(t, 2, len(sch.Lines))
	assert.Equal(t, uint64(1), sch.Lines[0].Layer)
	assert.Equal(t, uint64(2), sch.Lines[1].Layer)
}

func TestSchematicStringGroupsByKindAndOmitsEmpty(t *testing.T) {
	sch := New(Version{Property: Property{Prop: textSpan("xschem version=1.2")}})
	sch = sch.AddObject(Object{Kind: KindLine, Line: Line{Layer: 4, Property: Property{Prop: textSpan("")}}})
	assert.Equal(t, "v {xschem version=1.2}\nL 4 0 0 0 0 {}", sch.String())
}

func TestSchematicStringOrdersSingletonsAndSequences(t *testing.T) {
	sch := New(Version{Property: Property{Prop: textSpan("xschem version=1.2")}})
	sch = sch.AddObject(Object{Kind: KindSpiceProperty, SpiceProperty: SpiceProperty{Property: Property{Prop: textSpan("s")}}})
	sch = sch.AddObject(Object{Kind: KindVhdlProperty, VhdlProperty: VhdlProperty{Property: Property{Prop: textSpan("g")}}})
	sch = sch.AddObject(Object{Kind: KindWire, Wire: Wire{Property: Property{Prop: textSpan("")}}})
	sch = sch.AddObject(Object{Kind: KindText, Text: Text{Text: textSpan("x"), Property: Property{Prop: textSpan("")}}})
	want := "v {xschem version=1.2}\n" +
		"G {g}\n" +
		"S {s}\n" +
		"T {x} 0 0 0 0 0 0 {}\n" +
		"N 0 0 0 0 {}"
	assert.Equal(t, want, sch.String())
}

func TestObjectsStringJoinsWithNewlines(t *testing.T) {
	o := Objects[Line]{
		{Layer: 1, Property: Property{Prop: textSpan("")}},
		{Layer: 2, Property: Property{Prop: textSpan("")}},
	}
	assert.Equal(t, "L 1 0 0 0 0 {}\nL 2 0 0 0 0 {}", o.String())
}

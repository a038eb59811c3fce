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

// Package token defines the parsed representation of an Xschem schematic
// or symbol: every textual field is a span into the original input
// buffer rather than a copied string.
package token

import (
	"fmt"

	"github.com/tomachalek/xschem-parse/span"
)

// Objects is an ordered sequence of same-kind objects, displayed one per
// line.
type Objects[T fmt.Stringer] []T

func (o Objects[T]) String() string {
	var out string
	for i, v := range o {
		if i == 0 {
			out = v.String()
			continue
		}
		out += "\n" + v.String()
	}
	return out
}

// Property is a brace-enclosed xschem property string together with the
// key/value attributes found inside it. Prop is the verbatim text
// between the braces (used for round-trip rendering); Attrs holds every
// key=value pair found anywhere in that text, with text that does not
// form such a pair (including a bare key with no '=') skipped and not
// recorded.
type Property struct {
	Prop  span.Span
	Attrs map[string]span.Span
}

func (p Property) String() string {
	return "{" + p.Prop.Text() + "}"
}

// Version is the mandatory leading "v {...}" line of a schematic.
type Version struct{ Property Property }

func (v Version) String() string { return "v " + v.Property.String() }

// VhdlProperty is the optional "G {...}" line.
type VhdlProperty struct{ Property Property }

func (p VhdlProperty) String() string { return "G " + p.Property.String() }

// SymbolProperty is the optional "K {...}" line.
type SymbolProperty struct{ Property Property }

func (p SymbolProperty) String() string { return "K " + p.Property.String() }

// VerilogProperty is the optional "V {...}" line.
type VerilogProperty struct{ Property Property }

func (p VerilogProperty) String() string { return "V " + p.Property.String() }

// SpiceProperty is the optional "S {...}" line.
type SpiceProperty struct{ Property Property }

func (p SpiceProperty) String() string { return "S " + p.Property.String() }

// TedaXProperty is the optional "E {...}" line.
type TedaXProperty struct{ Property Property }

func (p TedaXProperty) String() string { return "E " + p.Property.String() }

// ObjectKind identifies which variant an Object holds.
type ObjectKind int

const (
	KindSpiceProperty ObjectKind = iota
	KindVerilogProperty
	KindVhdlProperty
	KindTedaXProperty
	KindSymbolProperty
	KindArc
	KindComponent
	KindLine
	KindPolygon
	KindRectangle
	KindText
	KindWire
)

// Object is a single parsed line of the body (anything after the
// version), tagged by Kind. Exactly one of the typed fields is valid for
// a given Kind.
type Object struct {
	Kind            ObjectKind
	SpiceProperty   SpiceProperty
	VerilogProperty VerilogProperty
	VhdlProperty    VhdlProperty
	TedaXProperty   TedaXProperty
	SymbolProperty  SymbolProperty
	Arc             Arc
	Component       Component
	Line            Line
	Polygon         Polygon
	Rectangle       Rectangle
	Text            Text
	Wire            Wire
}

// Arc is a xschem "A" line.
type Arc struct {
	Layer      uint64
	Center     Coordinate
	Radius     FiniteDouble
	StartAngle FiniteDouble
	SweepAngle FiniteDouble
	Property   Property
}

func (a Arc) String() string {
	return fmt.Sprintf("A %d %s %s %s %s %s", a.Layer, a.Center, a.Radius, a.StartAngle, a.SweepAngle, a.Property)
}

// Component is a xschem "C" line, optionally followed by an embedded
// sub-schematic.
type Component struct {
	Reference span.Span
	Position  Coordinate
	Rotation  Rotation
	Flip      Flip
	Property  Property
	Embedding *Embedding
}

func (c Component) String() string {
	out := fmt.Sprintf("C {%s} %s %s %s %s", c.Reference.Text(), c.Position, c.Rotation, c.Flip, c.Property)
	if c.Embedding != nil {
		out += "\n" + c.Embedding.String()
	}
	return out
}

// Line is a xschem "L" line.
type Line struct {
	Layer    uint64
	Start    Coordinate
	End      Coordinate
	Property Property
}

func (l Line) String() string {
	return fmt.Sprintf("L %d %s %s %s", l.Layer, l.Start, l.End, l.Property)
}

// Polygon is a xschem "P" line. Its point count is always rendered from
// len(Points), never from a stored count field.
type Polygon struct {
	Layer    uint64
	Points   []Coordinate
	Property Property
}

func (p Polygon) String() string {
	pts := ""
	for i, c := range p.Points {
		if i == 0 {
			pts = c.String()
			continue
		}
		pts += " " + c.String()
	}
	return fmt.Sprintf("P %d %d %s %s", p.Layer, len(p.Points), pts, p.Property)
}

// Rectangle is a xschem "B" line.
type Rectangle struct {
	Layer    uint64
	Start    Coordinate
	End      Coordinate
	Property Property
}

func (r Rectangle) String() string {
	return fmt.Sprintf("B %d %s %s %s", r.Layer, r.Start, r.End, r.Property)
}

// Text is a xschem "T" line.
type Text struct {
	Text     span.Span
	Position Coordinate
	Rotation Rotation
	Flip     Flip
	Size     Size
	Property Property
}

func (t Text) String() string {
	return fmt.Sprintf("T {%s} %s %s %s %s %s", t.Text.Text(), t.Position, t.Rotation, t.Flip, t.Size, t.Property)
}

// Wire is a xschem "N" line.
type Wire struct {
	Start    Coordinate
	End      Coordinate
	Property Property
}

func (w Wire) String() string {
	return fmt.Sprintf("N %s %s %s", w.Start, w.End, w.Property)
}

// Embedding is a bracket-enclosed sub-schematic nested under a
// Component.
type Embedding struct{ Schematic Schematic }

func (e Embedding) String() string {
	return "[\n" + e.Schematic.String() + "\n]"
}

// Schematic is a fully parsed xschem file: a mandatory version followed
// by at most one of each singleton property and any number of graphical
// objects, in no fixed relative order on input but grouped by kind on
// output.
type Schematic struct {
	Version         Version
	VhdlProperty    *VhdlProperty
	SymbolProperty  *SymbolProperty
	VerilogProperty *VerilogProperty
	SpiceProperty   *SpiceProperty
	TedaXProperty   *TedaXProperty
	Texts           Objects[Text]
	Lines           Objects[Line]
	Rectangles      Objects[Rectangle]
	Polygons        Objects[Polygon]
	Arcs            Objects[Arc]
	Wires           Objects[Wire]
	Components      Objects[Component]
}

// New creates an empty schematic carrying only its mandatory version.
func New(version Version) Schematic {
	return Schematic{Version: version}
}

// AddObject folds one parsed Object into the schematic. Singleton
// properties replace any earlier occurrence (last wins); graphical
// objects are appended in encounter order.
func (s Schematic) AddObject(o Object) Schematic {
	switch o.Kind {
	case KindVhdlProperty:
		p := o.VhdlProperty
		s.VhdlProperty = &p
	case KindSymbolProperty:
		p := o.SymbolProperty
		s.SymbolProperty = &p
	case KindVerilogProperty:
		p := o.VerilogProperty
		s.VerilogProperty = &p
	case KindSpiceProperty:
		p := o.SpiceProperty
		s.SpiceProperty = &p
	case KindTedaXProperty:
		p := o.TedaXProperty
		s.TedaXProperty = &p
	case KindArc:
		s.Arcs = append(s.Arcs, o.Arc)
	case KindComponent:
		s.Components = append(s.Components, o.Component)
	case KindLine:
		s.Lines = append(s.Lines, o.Line)
	case KindPolygon:
		s.Polygons = append(s.Polygons, o.Polygon)
	case KindRectangle:
		s.Rectangles = append(s.Rectangles, o.Rectangle)
	case KindText:
		s.Texts = append(s.Texts, o.Text)
	case KindWire:
		s.Wires = append(s.Wires, o.Wire)
	}
	return s
}

func (s Schematic) String() string {
	out := s.Version.String()
	if s.VhdlProperty != nil {
		out += "\n" + s.VhdlProperty.String()
	}
	if s.SymbolProperty != nil {
		out += "\n" + s.SymbolProperty.String()
	}
	if s.VerilogProperty != nil {
		out += "\n" + s.VerilogProperty.String()
	}
	if s.SpiceProperty != nil {
		out += "\n" + s.SpiceProperty.String()
	}
	if s.TedaXProperty != nil {
		out += "\n" + s.TedaXProperty.String()
	}
	if len(s.Texts) > 0 {
		out += "\n" + s.Texts.String()
	}
	if len(s.Lines) > 0 {
		out += "\n" + s.Lines.String()
	}
	if len(s.Rectangles) > 0 {
		out += "\n" + s.Rectangles.String()
	}
	if len(s.Polygons) > 0 {
		out += "\n" + s.Polygons.String()
	}
	if len(s.Arcs) > 0 {
		out += "\n" + s.Arcs.String()
	}
	if len(s.Wires) > 0 {
		out += "\n" + s.Wires.String()
	}
	if len(s.Components) > 0 {
		out += "\n" + s.Components.String()
	}
	return out
}

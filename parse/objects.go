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

// MaxEmbeddingDepth bounds how deeply a "C ... [ ... ]" embedded
// sub-schematic may nest, guarding against stack exhaustion on
// adversarial input.
const MaxEmbeddingDepth = 64

// afterSpace requires at least one whitespace character before p.
func afterSpace[T any](in span.Span, p func(span.Span) (span.Span, T, *xerr.Error)) (span.Span, T, *xerr.Error) {
	var zero T
	rest, err := multispace1(in)
	if err != nil {
		return in, zero, err
	}
	return p(rest)
}

// object parses a single literal tag rune, then hands off to inner.
// Once the tag matches, any failure from inner is promoted to fatal and
// tagged with name: alternation must not backtrack past a recognized
// tag character.
func object[T any](in span.Span, name string, tagChar rune, inner func(span.Span) (span.Span, T, *xerr.Error)) (span.Span, T, *xerr.Error) {
	var zero T
	rest, err := matchChar(in, tagChar)
	if err != nil {
		return in, zero, err
	}
	rest2, v, err2 := inner(rest)
	if err2 != nil {
		return in, zero, err2.Cut().Context(name, in)
	}
	return rest2, v, nil
}

func versionObject(in span.Span) (span.Span, token.Version, *xerr.Error) {
	return object(in, "version", 'v', func(s span.Span) (span.Span, token.Version, *xerr.Error) {
		rest, p, err := afterSpace(s, property)
		if err != nil {
			return s, token.Version{}, err
		}
		return rest, token.Version{Property: p}, nil
	})
}

// propertyObject parses one of the five singleton "global property"
// lines (G/K/V/S/E), all sharing the same context label as the original
// grammar does.
func propertyObject(in span.Span, tagChar rune) (span.Span, token.Property, *xerr.Error) {
	return object(in, "global property", tagChar, func(s span.Span) (span.Span, token.Property, *xerr.Error) {
		return afterSpace(s, property)
	})
}

func arcObject(in span.Span) (span.Span, token.Arc, *xerr.Error) {
	return object(in, "arc", 'A', func(s span.Span) (span.Span, token.Arc, *xerr.Error) {
		rest, lyr, err := afterSpace(s, layer)
		if err != nil {
			return s, token.Arc{}, err
		}
		rest, center, err := afterSpace(rest, coordinate)
		if err != nil {
			return s, token.Arc{}, err
		}
		rest, radius, err := afterSpace(rest, finiteDouble)
		if err != nil {
			return s, token.Arc{}, err
		}
		rest, startAngle, err := afterSpace(rest, finiteDouble)
		if err != nil {
			return s, token.Arc{}, err
		}
		rest, sweepAngle, err := afterSpace(rest, finiteDouble)
		if err != nil {
			return s, token.Arc{}, err
		}
		rest, prop, err := afterSpace(rest, property)
		if err != nil {
			return s, token.Arc{}, err
		}
		return rest, token.Arc{
			Layer:      lyr,
			Center:     center,
			Radius:     radius,
			StartAngle: startAngle,
			SweepAngle: sweepAngle,
			Property:   prop,
		}, nil
	})
}

func componentInstance(in span.Span, depth int) (span.Span, token.Component, *xerr.Error) {
	return object(in, "component", 'C', func(s span.Span) (span.Span, token.Component, *xerr.Error) {
		rest, ref, err := afterSpace(s, reference)
		if err != nil {
			return s, token.Component{}, err
		}
		rest, pos, err := afterSpace(rest, coordinate)
		if err != nil {
			return s, token.Component{}, err
		}
		rest, rot, err := afterSpace(rest, rotation)
		if err != nil {
			return s, token.Component{}, err
		}
		rest, fl, err := afterSpace(rest, flip)
		if err != nil {
			return s, token.Component{}, err
		}
		rest, prop, err := afterSpace(rest, property)
		if err != nil {
			return s, token.Component{}, err
		}

		var emb *token.Embedding
		if msRest, msErr := multispace1(rest); msErr == nil {
			embRest, embVal, embErr := embedding(msRest, depth)
			if embErr == nil {
				emb = &embVal
				rest = embRest
			} else if embErr.Fatal {
				return s, token.Component{}, embErr
			}
		}

		return rest, token.Component{
			Reference: ref,
			Position:  pos,
			Rotation:  rot,
			Flip:      fl,
			Property:  prop,
			Embedding: emb,
		}, nil
	})
}

func lineObject(in span.Span) (span.Span, token.Line, *xerr.Error) {
	return object(in, "line", 'L', func(s span.Span) (span.Span, token.Line, *xerr.Error) {
		rest, lyr, err := afterSpace(s, layer)
		if err != nil {
			return s, token.Line{}, err
		}
		rest, start, err := afterSpace(rest, coordinate)
		if err != nil {
			return s, token.Line{}, err
		}
		rest, end, err := afterSpace(rest, coordinate)
		if err != nil {
			return s, token.Line{}, err
		}
		rest, prop, err := afterSpace(rest, property)
		if err != nil {
			return s, token.Line{}, err
		}
		return rest, token.Line{Layer: lyr, Start: start, End: end, Property: prop}, nil
	})
}

func polygonObject(in span.Span) (span.Span, token.Polygon, *xerr.Error) {
	return object(in, "polygon", 'P', func(s span.Span) (span.Span, token.Polygon, *xerr.Error) {
		rest, lyr, err := afterSpace(s, layer)
		if err != nil {
			return s, token.Polygon{}, err
		}
		rest, err2 := multispace1(rest)
		if err2 != nil {
			return s, token.Polygon{}, err2
		}
		rest, count, err3 := usize(rest)
		if err3 != nil {
			return s, token.Polygon{}, err3
		}
		points := make([]token.Coordinate, 0, count)
		cur := rest
		for i := 0; i < count; i++ {
			next, err4 := space1(cur)
			if err4 != nil {
				return s, token.Polygon{}, err4
			}
			next2, pt, err5 := coordinate(next)
			if err5 != nil {
				return s, token.Polygon{}, err5
			}
			points = append(points, pt)
			cur = next2
		}
		rest5, prop, err6 := afterSpace(cur, property)
		if err6 != nil {
			return s, token.Polygon{}, err6
		}
		return rest5, token.Polygon{Layer: lyr, Points: points, Property: prop}, nil
	})
}

func rectangleObject(in span.Span) (span.Span, token.Rectangle, *xerr.Error) {
	return object(in, "rectangle", 'B', func(s span.Span) (span.Span, token.Rectangle, *xerr.Error) {
		rest, lyr, err := afterSpace(s, layer)
		if err != nil {
			return s, token.Rectangle{}, err
		}
		rest, start, err := afterSpace(rest, coordinate)
		if err != nil {
			return s, token.Rectangle{}, err
		}
		rest, end, err := afterSpace(rest, coordinate)
		if err != nil {
			return s, token.Rectangle{}, err
		}
		rest, prop, err := afterSpace(rest, property)
		if err != nil {
			return s, token.Rectangle{}, err
		}
		return rest, token.Rectangle{Layer: lyr, Start: start, End: end, Property: prop}, nil
	})
}

func textObject(in span.Span) (span.Span, token.Text, *xerr.Error) {
	return object(in, "text", 'T', func(s span.Span) (span.Span, token.Text, *xerr.Error) {
		rest, txt, err := afterSpace(s, text)
		if err != nil {
			return s, token.Text{}, err
		}
		rest, pos, err := afterSpace(rest, coordinate)
		if err != nil {
			return s, token.Text{}, err
		}
		rest, rot, err := afterSpace(rest, rotation)
		if err != nil {
			return s, token.Text{}, err
		}
		rest, fl, err := afterSpace(rest, flip)
		if err != nil {
			return s, token.Text{}, err
		}
		rest, sz, err := afterSpace(rest, size)
		if err != nil {
			return s, token.Text{}, err
		}
		rest, prop, err := afterSpace(rest, property)
		if err != nil {
			return s, token.Text{}, err
		}
		return rest, token.Text{Text: txt, Position: pos, Rotation: rot, Flip: fl, Size: sz, Property: prop}, nil
	})
}

func wireObject(in span.Span) (span.Span, token.Wire, *xerr.Error) {
	return object(in, "wire", 'N', func(s span.Span) (span.Span, token.Wire, *xerr.Error) {
		rest, start, err := afterSpace(s, coordinate)
		if err != nil {
			return s, token.Wire{}, err
		}
		rest, end, err := afterSpace(rest, coordinate)
		if err != nil {
			return s, token.Wire{}, err
		}
		rest, prop, err := afterSpace(rest, property)
		if err != nil {
			return s, token.Wire{}, err
		}
		return rest, token.Wire{Start: start, End: end, Property: prop}, nil
	})
}

func embedding(in span.Span, depth int) (span.Span, token.Embedding, *xerr.Error) {
	return object(in, "embedded symbol", '[', func(s span.Span) (span.Span, token.Embedding, *xerr.Error) {
		if depth >= MaxEmbeddingDepth {
			return s, token.Embedding{}, xerr.New(in, xerr.KindRecursionLimit)
		}
		rest, err := multispace1(s)
		if err != nil {
			return s, token.Embedding{}, err
		}
		rest2, sch, err2 := schematic(rest, depth+1)
		if err2 != nil {
			return s, token.Embedding{}, err2
		}
		rest3, err3 := multispace1(rest2)
		if err3 != nil {
			return s, token.Embedding{}, err3
		}
		rest4, err4 := matchChar(rest3, ']')
		if err4 != nil {
			return s, token.Embedding{}, err4
		}
		return rest4, token.Embedding{Schematic: sch}, nil
	})
}

// anyObject tries each recognized object/property line in turn. The
// first literal tag character that matches commits to that alternative;
// if nothing matches, a non-fatal error is returned so a caller folding
// over a sequence of objects can simply stop.
func anyObject(in span.Span, depth int) (span.Span, token.Object, *xerr.Error) {
	if rest, p, err := propertyObject(in, 'G'); err == nil {
		return rest, token.Object{Kind: token.KindVhdlProperty, VhdlProperty: token.VhdlProperty{Property: p}}, nil
	} else if err.Fatal {
		return in, token.Object{}, err
	}
	if rest, p, err := propertyObject(in, 'K'); err == nil {
		return rest, token.Object{Kind: token.KindSymbolProperty, SymbolProperty: token.SymbolProperty{Property: p}}, nil
	} else if err.Fatal {
		return in, token.Object{}, err
	}
	if rest, p, err := propertyObject(in, 'V'); err == nil {
		return rest, token.Object{Kind: token.KindVerilogProperty, VerilogProperty: token.VerilogProperty{Property: p}}, nil
	} else if err.Fatal {
		return in, token.Object{}, err
	}
	if rest, p, err := propertyObject(in, 'S'); err == nil {
		return rest, token.Object{Kind: token.KindSpiceProperty, SpiceProperty: token.SpiceProperty{Property: p}}, nil
	} else if err.Fatal {
		return in, token.Object{}, err
	}
	if rest, p, err := propertyObject(in, 'E'); err == nil {
		return rest, token.Object{Kind: token.KindTedaXProperty, TedaXProperty: token.TedaXProperty{Property: p}}, nil
	} else if err.Fatal {
		return in, token.Object{}, err
	}
	if rest, v, err := arcObject(in); err == nil {
		return rest, token.Object{Kind: token.KindArc, Arc: v}, nil
	} else if err.Fatal {
		return in, token.Object{}, err
	}
	if rest, v, err := componentInstance(in, depth); err == nil {
		return rest, token.Object{Kind: token.KindComponent, Component: v}, nil
	} else if err.Fatal {
		return in, token.Object{}, err
	}
	if rest, v, err := lineObject(in); err == nil {
		return rest, token.Object{Kind: token.KindLine, Line: v}, nil
	} else if err.Fatal {
		return in, token.Object{}, err
	}
	if rest, v, err := polygonObject(in); err == nil {
		return rest, token.Object{Kind: token.KindPolygon, Polygon: v}, nil
	} else if err.Fatal {
		return in, token.Object{}, err
	}
	if rest, v, err := rectangleObject(in); err == nil {
		return rest, token.Object{Kind: token.KindRectangle, Rectangle: v}, nil
	} else if err.Fatal {
		return in, token.Object{}, err
	}
	if rest, v, err := textObject(in); err == nil {
		return rest, token.Object{Kind: token.KindText, Text: v}, nil
	} else if err.Fatal {
		return in, token.Object{}, err
	}
	if rest, v, err := wireObject(in); err == nil {
		return rest, token.Object{Kind: token.KindWire, Wire: v}, nil
	} else if err.Fatal {
		return in, token.Object{}, err
	}
	return in, token.Object{}, xerr.NewChar(in, 'N')
}

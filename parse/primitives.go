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
	"strconv"

	"github.com/tomachalek/xschem-parse/span"
	"github.com/tomachalek/xschem-parse/token"
	"github.com/tomachalek/xschem-parse/xerr"
)

func isSpaceOrTab(r rune) bool { return r == ' ' || r == '\t' }

func isMultispace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

// multispace0 consumes any amount (possibly none) of whitespace.
func multispace0(in span.Span) span.Span {
	return takeWhile(in, isMultispace)
}

// multispace1 requires at least one whitespace character.
func multispace1(in span.Span) (span.Span, *xerr.Error) {
	rest := takeWhile(in, isMultispace)
	if in.Offset(rest) == 0 {
		return in, xerr.New(in, xerr.KindTakeWhile1)
	}
	return rest, nil
}

// space1 requires at least one space or tab (but not newline).
func space1(in span.Span) (span.Span, *xerr.Error) {
	_, rest, err := takeWhile1(in, isSpaceOrTab, xerr.KindTakeWhile1)
	return rest, err
}

// layer parses an unsigned decimal integer (xschem layer index).
func layer(in span.Span) (span.Span, uint64, *xerr.Error) {
	s, rest, err := takeWhile1(in, isASCIIDigit, xerr.KindDigit)
	if err != nil {
		return in, 0, err
	}
	v, convErr := strconv.ParseUint(s.Text(), 10, 64)
	if convErr != nil {
		return in, 0, xerr.New(in, xerr.KindDigit)
	}
	return rest, v, nil
}

func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }

// usize parses a non-negative decimal integer (used for polygon point
// counts).
func usize(in span.Span) (span.Span, int, *xerr.Error) {
	s, rest, err := takeWhile1(in, isASCIIDigit, xerr.KindDigit)
	if err != nil {
		return in, 0, err
	}
	v, convErr := strconv.Atoi(s.Text())
	if convErr != nil {
		return in, 0, xerr.New(in, xerr.KindDigit)
	}
	return rest, v, nil
}

// recognizeFloat scans the textual grammar of a floating point literal:
// an optional sign, digits with an optional decimal point (at least one
// digit somewhere before or after it), and an optional exponent.
func recognizeFloat(in span.Span) (span.Span, span.Span, bool) {
	cur := in
	if r, size, ok := cur.PeekRune(); ok && (r == '+' || r == '-') {
		cur = cur.TakeFrom(size)
	}

	intPart := takeWhile(cur, isASCIIDigit)
	hasInt := cur.Offset(intPart) > 0
	cur = intPart

	hasFrac := false
	if r, size, ok := cur.PeekRune(); ok && r == '.' {
		afterDot := cur.TakeFrom(size)
		fracPart := takeWhile(afterDot, isASCIIDigit)
		hasFrac = afterDot.Offset(fracPart) > 0
		cur = fracPart
	}

	if !hasInt && !hasFrac {
		return in, in, false
	}

	if r, size, ok := cur.PeekRune(); ok && (r == 'e' || r == 'E') {
		afterE := cur.TakeFrom(size)
		if r2, size2, ok2 := afterE.PeekRune(); ok2 && (r2 == '+' || r2 == '-') {
			afterE = afterE.TakeFrom(size2)
		}
		expDigits := takeWhile(afterE, isASCIIDigit)
		if afterE.Offset(expDigits) > 0 {
			cur = expDigits
		}
	}

	n := in.Offset(cur)
	return in.Take(n), cur, true
}

// finiteDouble parses a floating point literal and rejects any result
// that is not finite (the grammar itself cannot produce NaN, but very
// large exponents can overflow to +/-Inf).
func finiteDouble(in span.Span) (span.Span, token.FiniteDouble, *xerr.Error) {
	s, rest, ok := recognizeFloat(in)
	if !ok {
		return in, token.FiniteDouble{}, xerr.New(in, xerr.KindFloat)
	}
	f, parseErr := strconv.ParseFloat(s.Text(), 64)
	if parseErr != nil {
		return in, token.FiniteDouble{}, xerr.New(in, xerr.KindFloat)
	}
	fd, finiteErr := token.NewFiniteDouble(f)
	if finiteErr != nil {
		return in, token.FiniteDouble{}, xerr.New(in, xerr.KindFloat)
	}
	return rest, fd, nil
}

// vec2 parses two finite doubles separated by whitespace.
func vec2(in span.Span) (span.Span, token.Vec2, *xerr.Error) {
	rest, x, err := finiteDouble(in)
	if err != nil {
		return in, token.Vec2{}, err
	}
	rest2, err2 := multispace1(rest)
	if err2 != nil {
		return in, token.Vec2{}, err2
	}
	rest3, y, err3 := finiteDouble(rest2)
	if err3 != nil {
		return in, token.Vec2{}, err3
	}
	return rest3, token.Vec2{X: x, Y: y}, nil
}

// coordinate parses a Vec2 in the "coordinate" grammar position.
func coordinate(in span.Span) (span.Span, token.Coordinate, *xerr.Error) {
	rest, v, err := vec2(in)
	if err != nil {
		return in, token.Coordinate{}, err.Context("coordinate", in)
	}
	return rest, v, nil
}

// size parses a Vec2 in the "size" grammar position.
func size(in span.Span) (span.Span, token.Size, *xerr.Error) {
	rest, v, err := vec2(in)
	if err != nil {
		return in, token.Size{}, err.Context("size", in)
	}
	return rest, v, nil
}

// rotation parses one of the four rotation digits.
func rotation(in span.Span) (span.Span, token.Rotation, *xerr.Error) {
	r, size, ok := in.PeekRune()
	if ok {
		switch r {
		case '0':
			return in.TakeFrom(size), token.RotationZero, nil
		case '1':
			return in.TakeFrom(size), token.RotationOne, nil
		case '2':
			return in.TakeFrom(size), token.RotationTwo, nil
		case '3':
			return in.TakeFrom(size), token.RotationThree, nil
		}
	}
	return in, 0, xerr.New(in, xerr.KindDigit).Context("rotation", in)
}

// flip parses the 0/1 flip digit.
func flip(in span.Span) (span.Span, token.Flip, *xerr.Error) {
	r, size, ok := in.PeekRune()
	if ok {
		switch r {
		case '0':
			return in.TakeFrom(size), token.FlipUnflipped, nil
		case '1':
			return in.TakeFrom(size), token.FlipFlipped, nil
		}
	}
	return in, 0, xerr.New(in, xerr.KindDigit).Context("flip", in)
}

// property parses a brace-enclosed property string together with the
// attributes found in it. A fatal attribute failure (an unterminated
// quoted value) fails the whole property.
func property(in span.Span) (span.Span, token.Property, *xerr.Error) {
	prop, rest, err := braceEnclosed(in, "property", propertyString)
	if err != nil {
		return in, token.Property{}, err
	}
	attrs, attrErr := attributes(prop)
	if attrErr != nil {
		return in, token.Property{}, attrErr
	}
	return rest, token.Property{Prop: prop, Attrs: attrs}, nil
}

// text parses a brace-enclosed text body (used by the "T" object),
// returning the remainder before the body like the other field parsers.
func text(in span.Span) (span.Span, span.Span, *xerr.Error) {
	body, rest, err := braceEnclosed(in, "text", propertyString)
	return rest, body, err
}

// reference parses a brace-enclosed component reference (used by the
// "C" object), returning the remainder before the reference.
func reference(in span.Span) (span.Span, span.Span, *xerr.Error) {
	body, rest, err := braceEnclosed(in, "reference", propertyString)
	return rest, body, err
}

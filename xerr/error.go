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

// Package xerr implements the parser's diagnostic error type: a
// source-localized, multi-frame, caret-underlined rendering in the style
// of a compiler error, plus the fatal/recoverable distinction a hand
// written recursive-descent parser needs to decide whether to backtrack
// or abort.
package xerr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tomachalek/xschem-parse/span"
)

// Kind identifies what kind of thing the parser expected and did not
// find.
type Kind int

const (
	// KindChar means a specific character was expected; Expected holds it.
	KindChar Kind = iota
	KindAlpha
	KindDigit
	KindTakeWhile1
	KindEscaped
	KindEOF
	KindFloat
	// KindRecursionLimit means an embedded sub-schematic nested deeper
	// than MaxEmbeddingDepth.
	KindRecursionLimit
)

func (k Kind) describe(expected rune) string {
	switch k {
	case KindChar:
		return fmt.Sprintf("expected '%c'", expected)
	case KindAlpha:
		return "expected an alphabetic character"
	case KindDigit:
		return "expected a digit"
	case KindTakeWhile1:
		return "expected at least one matching character"
	case KindEscaped:
		return "invalid escape sequence"
	case KindEOF:
		return "expected end of input"
	case KindFloat:
		return "expected a finite floating point number"
	case KindRecursionLimit:
		return "embedding nested too deeply"
	default:
		return "parse error"
	}
}

// Frame is one entry of a context stack: the name of the construct being
// parsed (e.g. "property", "version") and the span at which it began.
type Frame struct {
	Name string
	Span span.Span
}

// Error is the parser's diagnostic error. Span and Kind (plus Expected,
// for KindChar) describe the deepest failure; Frames records the chain
// of named constructs the failure unwound through, innermost first.
// Fatal distinguishes a committed failure (stop trying alternatives)
// from a recoverable one (backtrack and try the next alternative).
type Error struct {
	Span     span.Span
	Kind     Kind
	Expected rune
	Frames   []Frame
	Fatal    bool
}

// New builds a leaf error at s.
func New(s span.Span, kind Kind) *Error {
	return &Error{Span: s, Kind: kind}
}

// NewChar builds a leaf "expected '<c>'" error at s.
func NewChar(s span.Span, c rune) *Error {
	return &Error{Span: s, Kind: KindChar, Expected: c}
}

// Context appends a context frame and returns the receiver, so call sites
// can write `return in, err.Context("property", in)`-style chains
// while unwinding out of a named construct.
func (e *Error) Context(name string, s span.Span) *Error {
	e.Frames = append(e.Frames, Frame{Name: name, Span: s})
	return e
}

// Cut marks the error fatal: a caller that reached a point of no return
// (e.g. consumed a distinguishing keyword) should not let its own caller
// backtrack into a sibling alternative.
func (e *Error) Cut() *Error {
	e.Fatal = true
	return e
}

// Error implements the error interface with a plain-text, multi-frame,
// caret-underlined rendering: the leaf failure, followed by each context
// frame innermost-first.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(renderErrorLine(e.Span, e.Kind.describe(e.Expected)))
	for _, f := range e.Frames {
		b.WriteString("\n")
		b.WriteString(renderContextLine(f.Span, f.Name))
	}
	return b.String()
}

func renderErrorLine(s span.Span, desc string) string {
	return fmt.Sprintf("error: %s\n%s", desc, renderLine(s))
}

func renderContextLine(s span.Span, name string) string {
	return fmt.Sprintf("in %s\n%s", name, renderLine(s))
}

// renderLine reproduces the five-line location block: a "--> file:line:col"
// header, a blank gutter, the source line prefixed by its number, a
// caret pointing at the column, and a trailing blank gutter.
func renderLine(s span.Span) string {
	line := s.Line()
	col := s.Column()
	width := len(strconv.Itoa(line)) + 1
	pad := strings.Repeat(" ", width)

	var loc string
	if s.HasPath() {
		loc = fmt.Sprintf("%s:%d:%d", s.Path(), line, col)
	} else {
		loc = fmt.Sprintf(":%d:%d", line, col)
	}

	numbered := fmt.Sprintf("%*d", width, line)

	var b strings.Builder
	fmt.Fprintf(&b, "%s--> %s\n", pad, loc)
	fmt.Fprintf(&b, "%s |\n", pad)
	fmt.Fprintf(&b, "%s | %s\n", numbered, s.LineText())
	fmt.Fprintf(&b, "%s |%s^\n", pad, strings.Repeat(" ", col))
	fmt.Fprintf(&b, "%s |", pad)
	return b.String()
}

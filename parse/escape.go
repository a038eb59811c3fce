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

// Package parse is the hand-written recursive-descent grammar for Xschem
// schematics and symbols. Every function takes the remaining input as a
// span.Span and returns the unconsumed remainder alongside either a
// value or a *xerr.Error; a Fatal error means a distinguishing token was
// already committed to and the caller must not backtrack into a sibling
// alternative.
package parse

import (
	"strings"

	"github.com/tomachalek/xschem-parse/span"
	"github.com/tomachalek/xschem-parse/xerr"
)

// escapeChar is the only escape introducer this grammar recognizes.
const escapeChar = '\\'

// escapeMatcher reports whether the bytes immediately following an
// escape character form a recognized escape unit, returning its byte
// length when it does.
type escapeMatcher func(rest span.Span) (n int, ok bool)

// propertyEscapeMatch accepts exactly one byte after the backslash: the
// backslash itself, '{', or '}'. This mirrors the property grammar's
// one_of(ESCAPED_CHARS), a single-character match.
func propertyEscapeMatch(rest span.Span) (int, bool) {
	r, size, ok := rest.PeekRune()
	if ok && (r == '\\' || r == '{' || r == '}') {
		return size, true
	}
	return 0, false
}

// valueEscapeMatch mirrors the value grammar's
// alt((tag(r#"\""#), tag(r"\"), tag("{"), tag("}"))): the two-byte
// sequence `\"` is tried first (so escaping a literal quote takes three
// bytes in total: the backslash that introduced the escape, plus this
// backslash and quote), then the single bytes '\\', '{', '}'.
func valueEscapeMatch(rest span.Span) (int, bool) {
	if r1, s1, ok1 := rest.PeekRune(); ok1 && r1 == '\\' {
		if r2, s2, ok2 := rest.TakeFrom(s1).PeekRune(); ok2 && r2 == '"' {
			return s1 + s2, true
		}
	}
	if r, size, ok := rest.PeekRune(); ok && (r == '\\' || r == '{' || r == '}') {
		return size, true
	}
	return 0, false
}

// scanEscaped consumes a run of bytes that are not the escape character
// and not a member of stop, treating a backslash followed by whatever
// match recognizes as a unit that is consumed but does not itself stop
// the scan. It returns the scanned span and the unconsumed remainder.
// The first unescaped byte that is a member of stop (or end of input)
// ends the scan without being consumed.
func scanEscaped(in span.Span, stop string, match escapeMatcher) (span.Span, span.Span, *xerr.Error) {
	cur := in
	for {
		r, size, ok := cur.PeekRune()
		if !ok {
			break
		}
		if r == escapeChar {
			rest := cur.TakeFrom(size)
			n, matched := match(rest)
			if !matched {
				return in, in, xerr.New(cur, xerr.KindEscaped)
			}
			cur = rest.TakeFrom(n)
			continue
		}
		if strings.ContainsRune(stop, r) {
			break
		}
		cur = cur.TakeFrom(size)
	}
	n := in.Offset(cur)
	return in.Take(n), cur, nil
}

// propertyString scans a property body up to (but not including) the
// first unescaped '{' or '}'.
func propertyString(in span.Span) (span.Span, span.Span, *xerr.Error) {
	return scanEscaped(in, "{}", propertyEscapeMatch)
}

// quotedValue scans a double-quoted attribute value's contents, up to
// (but not including) the first unescaped '"'. Escaping a literal quote
// requires a doubled backslash (`\\"`), matching the grammar this was
// ported from; a lone `\"` is not itself a valid escape unit.
func quotedValue(in span.Span) (span.Span, span.Span, *xerr.Error) {
	return scanEscaped(in, "\"", valueEscapeMatch)
}

func isKeyChar(r rune) bool {
	return isAlnum(r) || r == '_'
}

func isValueChar(r rune) bool {
	return isAlnum(r) || isASCIIPunct(r)
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func isASCIIPunct(r rune) bool {
	return strings.ContainsRune("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", r)
}

// takeWhile1 consumes a maximal non-empty run of runes satisfying pred.
func takeWhile1(in span.Span, pred func(rune) bool, kind xerr.Kind) (span.Span, span.Span, *xerr.Error) {
	cur := in
	for {
		r, size, ok := cur.PeekRune()
		if !ok || !pred(r) {
			break
		}
		cur = cur.TakeFrom(size)
	}
	n := in.Offset(cur)
	if n == 0 {
		return in, in, xerr.New(in, kind)
	}
	return in.Take(n), cur, nil
}

// takeWhile consumes a (possibly empty) maximal run of runes satisfying
// pred.
func takeWhile(in span.Span, pred func(rune) bool) span.Span {
	cur := in
	for {
		r, size, ok := cur.PeekRune()
		if !ok || !pred(r) {
			break
		}
		cur = cur.TakeFrom(size)
	}
	return cur
}

// key scans an attribute key: a maximal run of alphanumerics and
// underscores.
func key(in span.Span) (span.Span, span.Span, *xerr.Error) {
	s, rest, err := takeWhile1(in, isKeyChar, xerr.KindTakeWhile1)
	if err != nil {
		return s, rest, err.Context("key", in)
	}
	return s, rest, nil
}

// value scans an attribute value, which is either a double-quoted,
// escape-aware string or a maximal run of "value characters" (alnum and
// ASCII punctuation).
func value(in span.Span) (span.Span, span.Span, *xerr.Error) {
	if rest, err := matchChar(in, '"'); err == nil {
		body, rest2, err2 := quotedValue(rest)
		if err2 != nil {
			return in, in, err2.Cut().Context("value", in)
		}
		rest3, err3 := matchChar(rest2, '"')
		if err3 != nil {
			return in, in, err3.Cut().Context("value", in)
		}
		return body, rest3, nil
	}
	s, rest, err := takeWhile1(in, isValueChar, xerr.KindTakeWhile1)
	if err != nil {
		return s, rest, err.Context("value", in)
	}
	return s, rest, nil
}

// keyValue scans a single "key=value" (or "key=\"quoted value\"") pair.
func keyValue(in span.Span) (k span.Span, v span.Span, rest span.Span, err *xerr.Error) {
	k, r1, err := key(in)
	if err != nil {
		return span.Span{}, span.Span{}, in, err.Context("key_value", in)
	}
	r2, err := matchChar(r1, '=')
	if err != nil {
		return span.Span{}, span.Span{}, in, err.Context("key_value", in)
	}
	v, r3, err := value(r2)
	if err != nil {
		return span.Span{}, span.Span{}, in, err.Context("key_value", in)
	}
	return k, v, r3, nil
}

// attributes scans prop for any number of "key=value" pairs anywhere in
// its text, skipping over anything that is not a recognizable pair.
// Later occurrences of a duplicate key overwrite earlier ones. A
// recoverable key_value failure (e.g. a key with no following '=') is
// skipped past a single key so the scan keeps making progress; a fatal
// (cut) failure — an unterminated quoted value — propagates instead of
// being silently dropped.
func attributes(prop span.Span) (map[string]span.Span, *xerr.Error) {
	attrs := make(map[string]span.Span)
	cur := prop
	for !cur.IsEmpty() {
		cur = takeWhile(cur, func(r rune) bool { return !isKeyChar(r) })
		if cur.IsEmpty() {
			break
		}
		k, v, rest, err := keyValue(cur)
		if err != nil {
			if err.Fatal {
				return nil, err
			}
			// Drop past the key that failed to form a pair so the scan
			// always makes progress.
			_, krest, kerr := key(cur)
			if kerr != nil {
				break
			}
			cur = krest
			continue
		}
		attrs[k.Text()] = v
		cur = rest
	}
	return attrs, nil
}

// matchChar consumes a single literal rune c, or fails with KindChar.
func matchChar(in span.Span, c rune) (span.Span, *xerr.Error) {
	r, size, ok := in.PeekRune()
	if !ok || r != c {
		return in, xerr.NewChar(in, c)
	}
	return in.TakeFrom(size), nil
}

// braceEnclosed parses '{', then inner (labeled name for diagnostics),
// then a mandatory '}'. A missing opening brace is a plain, unlabeled,
// non-fatal failure (so a caller alternating over several object kinds
// can still backtrack into a sibling). Once the opening brace is seen,
// failure from inner is fatal and carries a name context frame; a
// missing closing brace is fatal but unlabeled, matching the original
// grammar's brace_enclosed(context(name, inner)) composition, where
// context wraps only inner and cut wraps the whole of "inner then '}'".
func braceEnclosed(in span.Span, name string, inner func(span.Span) (span.Span, span.Span, *xerr.Error)) (span.Span, span.Span, *xerr.Error) {
	rest, err := matchChar(in, '{')
	if err != nil {
		return in, in, err
	}
	body, rest2, err2 := inner(rest)
	if err2 != nil {
		return in, in, err2.Context(name, rest).Cut()
	}
	rest3, err3 := matchChar(rest2, '}')
	if err3 != nil {
		return in, in, err3.Cut()
	}
	return body, rest3, nil
}

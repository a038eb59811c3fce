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

// Package span implements the zero-copy input abstraction the parser is
// built on: a view into a shared buffer that carries its own 1-based line
// and UTF-8 column, plus an optional file-path tag used only for error
// rendering.
package span

import (
	"bytes"
	"unicode/utf8"
)

// Span is a substring view into an original input buffer. A Span never
// copies the buffer; advancing or slicing a Span produces a new Span that
// shares the same underlying bytes.
type Span struct {
	buf       []byte
	start     int
	end       int
	line      int
	lineStart int
	path      string
	bytesMode bool
}

// New creates a Span over the whole of s, with no path tag.
func New(s string) Span {
	return newSpan([]byte(s), "", false)
}

// NewWithPath creates a Span over the whole of s, tagged with path.
func NewWithPath(s string, path string) Span {
	return newSpan([]byte(s), path, false)
}

// NewBytes creates a Span over the whole of b, with no path tag. Lines
// containing invalid UTF-8 render as "<invalid UTF-8>" in diagnostics.
func NewBytes(b []byte) Span {
	return newSpan(b, "", true)
}

// NewBytesWithPath creates a Span over the whole of b, tagged with path.
func NewBytesWithPath(b []byte, path string) Span {
	return newSpan(b, path, true)
}

func newSpan(buf []byte, path string, bytesMode bool) Span {
	return Span{
		buf:       buf,
		start:     0,
		end:       len(buf),
		line:      1,
		lineStart: 0,
		path:      path,
		bytesMode: bytesMode,
	}
}

// Len returns the number of remaining bytes in the span.
func (s Span) Len() int { return s.end - s.start }

// IsEmpty reports whether the span has no remaining bytes.
func (s Span) IsEmpty() bool { return s.start >= s.end }

// Bytes returns the span's content as a byte slice into the original
// buffer.
func (s Span) Bytes() []byte { return s.buf[s.start:s.end] }

// Text returns the span's content as a string. It allocates (Go strings
// are immutable) but does not copy the buffer for any other purpose.
func (s Span) Text() string { return string(s.buf[s.start:s.end]) }

// Line returns the 1-based line number at the span's start.
func (s Span) Line() int { return s.line }

// Column returns the 1-based UTF-8 column at the span's start. A tab
// counts as a single column.
func (s Span) Column() int {
	return utf8.RuneCount(s.buf[s.lineStart:s.start]) + 1
}

// Path returns the file-path tag, or "" if the span carries none.
func (s Span) Path() string { return s.path }

// HasPath reports whether the span carries a non-empty file-path tag.
func (s Span) HasPath() bool { return s.path != "" }

// LineBytes returns the raw bytes of the source line containing the
// span's start, excluding the trailing newline.
func (s Span) LineBytes() []byte {
	end := bytes.IndexByte(s.buf[s.lineStart:], '\n')
	if end < 0 {
		return s.buf[s.lineStart:]
	}
	return s.buf[s.lineStart : s.lineStart+end]
}

// LineText renders LineBytes as a display string. Bytes mode spans whose
// line is not valid UTF-8 render as "<invalid UTF-8>".
func (s Span) LineText() string {
	b := s.LineBytes()
	if s.bytesMode && !utf8.Valid(b) {
		return "<invalid UTF-8>"
	}
	return string(b)
}

// PeekRune returns the rune at the span's start, its encoded length in
// bytes, and whether one was available.
func (s Span) PeekRune() (r rune, size int, ok bool) {
	if s.IsEmpty() {
		return 0, 0, false
	}
	r, size = utf8.DecodeRune(s.buf[s.start:s.end])
	return r, size, true
}

// Take returns the first n bytes of the span as a new Span sharing the
// same location metadata (i.e. a captured substring starting at the same
// position). n must not exceed s.Len().
func (s Span) Take(n int) Span {
	out := s
	out.end = s.start + n
	return out
}

// TakeFrom returns the span advanced past its first n bytes: a new
// "remaining input" view starting after the consumed prefix, with line
// and column recomputed from any newlines consumed. n must not exceed
// s.Len().
func (s Span) TakeFrom(n int) Span {
	consumed := s.buf[s.start : s.start+n]
	out := s
	out.start = s.start + n
	if idx := bytes.LastIndexByte(consumed, '\n'); idx >= 0 {
		out.lineStart = s.start + idx + 1
	}
	out.line = s.line + bytes.Count(consumed, []byte{'\n'})
	return out
}

// Split is Take and TakeFrom combined: the captured prefix of length n,
// and the remaining span after it.
func (s Span) Split(n int) (prefix Span, rest Span) {
	return s.Take(n), s.TakeFrom(n)
}

// Offset returns the number of bytes between s's start and other's start,
// assuming both are derived from the same original buffer.
func (s Span) Offset(other Span) int {
	return other.start - s.start
}

// SameBuffer reports whether s and other were derived from the same
// original buffer (by identity of the backing array's first byte, which
// is sufficient since Span never copies).
func (s Span) SameBuffer(other Span) bool {
	if len(s.buf) == 0 || len(other.buf) == 0 {
		return len(s.buf) == len(other.buf)
	}
	return &s.buf[0] == &other.buf[0]
}

// Equal reports whether two spans have byte-identical content, regardless
// of their position in the buffer.
func (s Span) Equal(other Span) bool {
	return bytes.Equal(s.Bytes(), other.Bytes())
}

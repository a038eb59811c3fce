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

package span

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAndText(t *testing.T) {
	s := New("hello world")
	assert.Equal(t, "hello world", s.Text())
	assert.Equal(t, 11, s.Len())
	assert.Equal(t, 1, s.Line())
	assert.Equal(t, 1, s.Column())
}

func TestTakeAndTakeFrom(t *testing.T) {
	s := New("abcdef")
	assert.Equal(t, "abc", s.Take(3).Text())
	assert.Equal(t, "def", s.TakeFrom(3).Text())
}

func TestSplit(t *testing.T) {
	s := New("abcdef")
	prefix, rest := s.Split(2)
	assert.Equal(t, "ab", prefix.Text())
	assert.Equal(t, "cdef", rest.Text())
}

func TestLineTracking(t *testing.T) {
	s := New("ab\ncd\nef")
	rest := s.TakeFrom(3)
	assert.Equal(t, 2, rest.Line())
	assert.Equal(t, "cd\nef", rest.Text())

	rest2 := rest.TakeFrom(3)
	assert.Equal(t, 3, rest2.Line())
	assert.Equal(t, 1, rest2.Column())
}

func TestColumnUTF8(t *testing.T) {
	s := New("héllo")
	rest := s.TakeFrom(3) // 'h' (1 byte) + 'é' (2 bytes)
	assert.Equal(t, 3, rest.Column())
	assert.Equal(t, "llo", rest.Text())
}

func TestColumnCountsTabAsOne(t *testing.T) {
	s := New("\tx")
	assert.Equal(t, 2, s.TakeFrom(1).Column())
}

func TestPeekRune(t *testing.T) {
	s := New("é")
	r, size, ok := s.PeekRune()
	assert.True(t, ok)
	assert.Equal(t, 'é', r)
	assert.Equal(t, 2, size)

	_, _, ok = New("").PeekRune()
	assert.False(t, ok)
}

func TestOffset(t *testing.T) {
	s := New("abcdef")
	rest := s.TakeFrom(4)
	assert.Equal(t, 4, s.Offset(rest))
}

func TestPathTagging(t *testing.T) {
	s := NewWithPath("abc", "foo.sch")
	assert.True(t, s.HasPath())
	assert.Equal(t, "foo.sch", s.Path())
	assert.False(t, New("abc").HasPath())
}

func TestLineBytesExcludesNewline(t *testing.T) {
	s := New("ab\ncd").TakeFrom(1)
	assert.Equal(t, []byte("ab"), s.LineBytes())
}

func TestBytesModeInvalidUTF8(t *testing.T) {
	s := NewBytes([]byte{'a', 0xff, 'b'})
	assert.Equal(t, "<invalid UTF-8>", s.LineText())
}

func TestTextModeKeepsInvalidBytesVerbatim(t *testing.T) {
	s := New(string([]byte{'a', 0xff, 'b'}))
	assert.NotEqual(t, "<invalid UTF-8>", s.LineText())
}

func TestEqual(t *testing.T) {
	a := New("foo bar").Take(3)
	b := New("foo baz").Take(3)
	assert.True(t, a.Equal(b))
}

func TestSameBuffer(t *testing.T) {
	s := New("abcdef")
	assert.True(t, s.SameBuffer(s.TakeFrom(2)))
	assert.False(t, s.SameBuffer(New("abcdef")))
}

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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tomachalek/xschem-parse/span"
)

// These cases are transcribed byte-for-byte from the original grammar's
// key_value test oracle.
func TestKeyValue(t *testing.T) {
	cases := []struct {
		in      string
		key     string
		val     string
		restLen int
	}{
		{"a1A_9Z=!#$zcv_`~^)", "a1A_9Z", "!#$zcv_`~^)", 0},
		{`key=""`, "key", "", 0},
		{`key=\{val\}`, "key", `\{val\}`, 0},
		{`key="\{val\}"`, "key", `\{val\}`, 0},
		// Escaping a literal quote inside a value takes a doubled
		// backslash: the bytes \\" (three characters), not a lone \".
		{"key=\"\\\\\"val\\\\\"\"", "key", "\\\\\"val\\\\\"", 0},
		{"key=\"\\\\val\"", "key", "\\\\val", 0},
	}
	for _, c := range cases {
		k, v, rest, err := keyValue(span.New(c.in))
		assert.Nil(t, err, "input: %q", c.in)
		assert.Equal(t, c.key, k.Text(), "input: %q", c.in)
		assert.Equal(t, c.val, v.Text(), "input: %q", c.in)
		assert.Equal(t, c.restLen, rest.Len(), "input: %q", c.in)
	}
}

func TestKeyValueMissingKeyFails(t *testing.T) {
	_, _, _, err := keyValue(span.New("=val"))
	assert.NotNil(t, err)
	assert.False(t, err.Fatal)
}

func TestValueUnterminatedQuoteIsFatal(t *testing.T) {
	_, _, err := value(span.New(`"unterminated`))
	assert.NotNil(t, err)
	assert.True(t, err.Fatal)
	var names []string
	for _, f := range err.Frames {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "value")
}

func TestAttributesSkipsUnrecognizedText(t *testing.T) {
	attrs, err := attributes(span.New("key=val"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(attrs))
	assert.Equal(t, "val", attrs["key"].Text())

	attrs2, err := attributes(span.New("key=val k=v"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(attrs2))
	assert.Equal(t, "val", attrs2["key"].Text())
	assert.Equal(t, "v", attrs2["k"].Text())

	attrs3, err := attributes(span.New("nokey k=v test"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(attrs3))
	assert.Equal(t, "v", attrs3["k"].Text())
}

func TestAttributesLastDuplicateWins(t *testing.T) {
	attrs, err := attributes(span.New("k=first k=second"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(attrs))
	assert.Equal(t, "second", attrs["k"].Text())
}

func TestAttributesPropagatesFatalFailure(t *testing.T) {
	_, err := attributes(span.New(`k="unterminated`))
	assert.NotNil(t, err)
	assert.True(t, err.Fatal)
}

func TestPropertyStringEscapeUnits(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"a b c}", "a b c"},
		{`\\\}}`, `\\\}`},
		{"\t\n \\{\\}}", "\t\n \\{\\}"},
	}
	for _, c := range cases {
		body, _, err := propertyString(span.New(c.in))
		assert.Nil(t, err, "input: %q", c.in)
		assert.Equal(t, c.want, body.Text(), "input: %q", c.in)
	}
}

func TestPropertyStringRejectsBadEscape(t *testing.T) {
	_, _, err := propertyString(span.New(`a\qb}`))
	assert.NotNil(t, err)
}

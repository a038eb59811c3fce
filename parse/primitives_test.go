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

func TestLayer(t *testing.T) {
	rest, v, err := layer(span.New("5 rest"))
	assert.Nil(t, err)
	assert.Equal(t, uint64(5), v)
	assert.Equal(t, " rest", rest.Text())
}

func TestFiniteDoubleRejectsHugeExponent(t *testing.T) {
	_, _, err := finiteDouble(span.New("1e400"))
	assert.NotNil(t, err, "1e400 overflows to +Inf and must be rejected")
}

func TestFiniteDoubleBasic(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		rest string
	}{
		{"-17.5 rest", -17.5, " rest"},
		{"120", 120, ""},
		{"0.2 0.2", 0.2, " 0.2"},
		{"1.5e3", 1500, ""},
		{"-2E-2", -0.02, ""},
	}
	for _, c := range cases {
		rest, v, err := finiteDouble(span.New(c.in))
		assert.Nil(t, err, "input: %q", c.in)
		assert.Equal(t, c.want, v.Value(), "input: %q", c.in)
		assert.Equal(t, c.rest, rest.Text(), "input: %q", c.in)
	}
}

func TestVec2(t *testing.T) {
	rest, v, err := vec2(span.New("890 -130 rest"))
	assert.Nil(t, err)
	assert.Equal(t, float64(890), v.X.Value())
	assert.Equal(t, float64(-130), v.Y.Value())
	assert.Equal(t, " rest", rest.Text())
}

func TestRotationAndFlip(t *testing.T) {
	for digit, want := range map[string]int{"0": 0, "1": 1, "2": 2, "3": 3} {
		_, r, err := rotation(span.New(digit))
		assert.Nil(t, err)
		assert.Equal(t, want, int(r))
	}
	_, _, err := rotation(span.New("4"))
	assert.NotNil(t, err)

	_, f, err := flip(span.New("0"))
	assert.Nil(t, err)
	assert.False(t, f.Bool())

	_, f, err = flip(span.New("1"))
	assert.Nil(t, err)
	assert.True(t, f.Bool())

	_, _, err = flip(span.New("2"))
	assert.NotNil(t, err)
}

func TestPropertyParsesAttrsFromBody(t *testing.T) {
	rest, p, err := property(span.New("{xschem version=3.4.0 file_version=1.0}"))
	assert.Nil(t, err)
	assert.True(t, rest.IsEmpty())
	assert.Equal(t, "xschem version=3.4.0 file_version=1.0", p.Prop.Text())
	assert.Equal(t, "3.4.0", p.Attrs["version"].Text())
	assert.Equal(t, "1.0", p.Attrs["file_version"].Text())
}

func TestPropertyDefault(t *testing.T) {
	rest, p, err := property(span.New("{}"))
	assert.Nil(t, err)
	assert.True(t, rest.IsEmpty())
	assert.Equal(t, "", p.Prop.Text())
	assert.Equal(t, 0, len(p.Attrs))
}

func TestPropertyMissingOpeningBraceIsRecoverable(t *testing.T) {
	_, _, err := property(span.New("no brace"))
	assert.NotNil(t, err)
	assert.False(t, err.Fatal)
}

func TestPropertyMissingClosingBraceIsFatal(t *testing.T) {
	_, _, err := property(span.New("{never closed"))
	assert.NotNil(t, err)
	assert.True(t, err.Fatal)
}

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
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrNotFinite is returned by NewFiniteDouble when given NaN or an
// infinity.
var ErrNotFinite = errors.New("value is not finite")

// FiniteDouble wraps a float64 known to be neither NaN nor infinite, so
// that geometry fields can never silently carry an unrenderable value.
type FiniteDouble struct{ v float64 }

// NewFiniteDouble validates v and wraps it.
func NewFiniteDouble(v float64) (FiniteDouble, error) {
	if !isFinite(v) {
		return FiniteDouble{}, ErrNotFinite
	}
	return FiniteDouble{v: v}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Value returns the wrapped float.
func (f FiniteDouble) Value() float64 { return f.v }

func (f FiniteDouble) String() string {
	return strconv.FormatFloat(f.v, 'g', -1, 64)
}

// Vec2 is a generic x/y pair used both as a Coordinate and as a Size.
type Vec2 struct {
	X FiniteDouble
	Y FiniteDouble
}

// Coordinate is a point in schematic space.
type Coordinate = Vec2

// Size is a width/height pair (reusing Vec2's x/y layout).
type Size = Vec2

// NewVec2 validates both components and builds a Vec2.
func NewVec2(x, y float64) (Vec2, error) {
	xf, err := NewFiniteDouble(x)
	if err != nil {
		return Vec2{}, err
	}
	yf, err := NewFiniteDouble(y)
	if err != nil {
		return Vec2{}, err
	}
	return Vec2{X: xf, Y: yf}, nil
}

func (v Vec2) String() string {
	return fmt.Sprintf("%s %s", v.X, v.Y)
}

// Rotation is one of the four xschem rotation quadrants (0, 1, 2, 3).
type Rotation uint8

const (
	RotationZero Rotation = iota
	RotationOne
	RotationTwo
	RotationThree
)

// NewRotation validates v as one of the four accepted rotation codes.
func NewRotation(v uint8) (Rotation, error) {
	if v > uint8(RotationThree) {
		return 0, fmt.Errorf("invalid rotation %d", v)
	}
	return Rotation(v), nil
}

func (r Rotation) String() string {
	return strconv.Itoa(int(r))
}

// Flip is xschem's mirrored/unmirrored orientation flag.
type Flip uint8

const (
	FlipUnflipped Flip = iota
	FlipFlipped
)

// NewFlip maps a boolean onto Flip, mirroring the wire format's 0/1
// encoding.
func NewFlip(flipped bool) Flip {
	if flipped {
		return FlipFlipped
	}
	return FlipUnflipped
}

func (f Flip) Bool() bool { return f == FlipFlipped }

func (f Flip) String() string {
	if f == FlipFlipped {
		return "1"
	}
	return "0"
}

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

package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFileSequenceRequiresAtLeastOnePath(t *testing.T) {
	_, err := NewFileSequence()
	assert.Error(t, err)
}

func TestFileSequenceNext(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.sch")
	b := filepath.Join(dir, "b.sch")
	assert.NoError(t, os.WriteFile(a, []byte("A"), 0o644))
	assert.NoError(t, os.WriteFile(b, []byte("B"), 0o644))

	seq, err := NewFileSequence(a, b)
	assert.NoError(t, err)
	assert.Equal(t, 2, seq.Remaining())

	p, c, ok := seq.Next()
	assert.True(t, ok)
	assert.Equal(t, a, p)
	assert.Equal(t, "A", string(c))
	assert.Equal(t, 1, seq.Remaining())

	p, c, ok = seq.Next()
	assert.True(t, ok)
	assert.Equal(t, b, p)
	assert.Equal(t, "B", string(c))

	_, _, ok = seq.Next()
	assert.False(t, ok)
	assert.NoError(t, seq.Err())
}

func TestFileSequenceUnreadableFile(t *testing.T) {
	seq, err := NewFileSequence("/does/not/exist.sch")
	assert.NoError(t, err)
	_, _, ok := seq.Next()
	assert.False(t, ok)
	assert.Error(t, seq.Err())
}

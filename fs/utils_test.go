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

package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDirAndIsFile(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, IsDir(dir))

	f := filepath.Join(dir, "a.sch")
	assert.NoError(t, os.WriteFile(f, []byte("x"), 0o644))
	assert.True(t, IsFile(f))
	assert.False(t, IsDir(f))
	assert.False(t, IsFile(dir))
	assert.False(t, IsFile(filepath.Join(dir, "missing")))
}

func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	assert.NoError(t, os.Mkdir(sub, 0o755))
	for _, name := range []string{"a.sch", "b.sym", "c.txt", filepath.Join("sub", "d.sch")} {
		assert.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("v {xschem version=1.2}\n"), 0o644))
	}

	got, err := ListFiles(dir, ".sch", ".sym")
	assert.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.sch"),
		filepath.Join(dir, "b.sym"),
		filepath.Join(dir, "sub", "d.sch"),
	}, got)
}

func TestListFilesSingleFile(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "only.sch")
	assert.NoError(t, os.WriteFile(f, []byte("v {xschem version=1.2}\n"), 0o644))

	got, err := ListFiles(f, ".sch")
	assert.NoError(t, err)
	assert.Equal(t, []string{f}, got)
}

func TestAllExist(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "present.sch")
	assert.NoError(t, os.WriteFile(f, []byte("x"), 0o644))
	assert.True(t, AllExist([]string{f}))
	assert.False(t, AllExist([]string{f, filepath.Join(dir, "missing.sch")}))
}

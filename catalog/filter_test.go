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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPassAllFilter(t *testing.T) {
	var f PassAllFilter
	assert.True(t, f.Apply(map[string]string{}))
	assert.True(t, f.Apply(map[string]string{"name": "R1"}))
}

func TestLoadCustomFilterDefaultsToPassAll(t *testing.T) {
	f, err := LoadCustomFilter("", "")
	assert.NoError(t, err)
	assert.IsType(t, &PassAllFilter{}, f)
}

func TestLoadCustomFilterMissingPlugin(t *testing.T) {
	_, err := LoadCustomFilter("nonexistent.so", "Allow")
	assert.Error(t, err)
}

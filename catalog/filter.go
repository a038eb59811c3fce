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
	"fmt"
	"path/filepath"
	"plugin"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/tomachalek/xschem-parse/fs"
)

const defaultSystemPluginDir = "/usr/local/lib/xschemparse"

// ComponentFilter selects which parsed component instances are worth
// recording in the catalog, based on the component's accumulated
// property attributes (e.g. only components whose "name" attribute
// matches some pattern).
type ComponentFilter interface {
	Apply(attrs map[string]string) bool
}

func findPluginLib(pathSuff string) (string, error) {
	paths := []string{
		pathSuff,
		filepath.Join(fs.GetWorkingDir(), pathSuff),
		filepath.Join(defaultSystemPluginDir, pathSuff),
	}
	for _, fullPath := range paths {
		if fs.IsFile(fullPath) {
			return fullPath, nil
		}
	}
	return "", fmt.Errorf("failed to find plug-in file in %s", strings.Join(paths, ", "))
}

// PassAllFilter is the default filter: every component is recorded.
type PassAllFilter struct{}

func (df *PassAllFilter) Apply(attrs map[string]string) bool { return true }

// LoadCustomFilter loads a compiled .so plugin from a defined path and
// looks up the exported symbol named fn, which must implement
// ComponentFilter. If libPath does not point to an
// existing file, it is treated as a path suffix and resolved against the
// working directory, then the system plugin directory.
func LoadCustomFilter(libPath string, fn string) (ComponentFilter, error) {
	if libPath != "" && fn != "" {
		fullPath, err := findPluginLib(libPath)
		if err != nil {
			return nil, err
		}
		p, err := plugin.Open(fullPath)
		if err != nil {
			return nil, err
		}
		sym, err := p.Lookup(fn)
		if err != nil {
			return nil, err
		}
		log.Info().Str("fn", fn).Str("path", fullPath).Msg("using component filter plug-in")
		return sym.(ComponentFilter), nil
	}
	log.Info().Msg("no custom filter plug-in defined, using pass-all")
	return &PassAllFilter{}, nil
}

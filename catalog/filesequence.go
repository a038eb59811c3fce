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
	"os"
)

// FileSequence walks a fixed list of file paths, handing back one whole
// file's contents per step. Unlike a line scanner, this parser is
// zero-copy over a complete buffer and cannot incrementally consume a
// stream, so each step reads and closes one file in full rather than
// keeping a handle open across steps.
type FileSequence struct {
	filePaths    []string
	currentIndex int
	err          error
}

// NewFileSequence creates a sequence over filePaths, processed in order.
func NewFileSequence(filePaths ...string) (*FileSequence, error) {
	if len(filePaths) == 0 {
		return nil, fmt.Errorf("at least one file path required")
	}
	return &FileSequence{filePaths: filePaths, currentIndex: -1}, nil
}

// Next advances to the next file and returns its path and contents. ok is
// false once every path has been consumed or a read fails; check Err to
// distinguish the two.
func (fs *FileSequence) Next() (path string, contents []byte, ok bool) {
	fs.currentIndex++
	if fs.currentIndex >= len(fs.filePaths) {
		return "", nil, false
	}
	path = fs.filePaths[fs.currentIndex]
	contents, err := os.ReadFile(path)
	if err != nil {
		fs.err = err
		return "", nil, false
	}
	return path, contents, true
}

// Remaining reports how many files have not yet been handed out by Next.
func (fs *FileSequence) Remaining() int {
	n := len(fs.filePaths) - (fs.currentIndex + 1)
	if n < 0 {
		return 0
	}
	return n
}

// Err returns the first error encountered while reading a file.
func (fs *FileSequence) Err() error {
	return fs.err
}

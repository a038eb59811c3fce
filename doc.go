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

// Package xschemparse parses Xschem schematic and symbol files.
//
// This library supports up to Xschem file version 1.2. See the Xschem
// developer documentation for more information on the file format.
//
// Use ParseString or ParseBytes to parse a token.Schematic from a string
// or byte slice. The resulting data structure holds span.Span values that
// reference one input buffer rather than per-field copies: ParseBytes uses
// the caller's slice directly, while ParseString first copies the string
// into a single byte buffer.
//
// The returned error, when non-nil, is always a *xerr.Error, whose
// Error() method renders a human-readable, caret-underlined diagnostic.
//
// # Parsing a file
//
// Since a parsed schematic holds references into the input, this
// package cannot parse directly from a path: the caller must read the
// file first and keep its contents alive for as long as the returned
// Schematic is used.
//
//	contents, err := os.ReadFile(path)
//	if err != nil {
//		return err
//	}
//	schematic, perr := xschemparse.ParseStringPath(string(contents), path)
//	if perr != nil {
//		return perr
//	}
package xschemparse

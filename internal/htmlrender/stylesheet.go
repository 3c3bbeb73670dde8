/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package htmlrender

import "sort"

// StyleSheet provides hierarchical resolution of BlockStyle presets.
// It supports three scopes:
//  - Global: app defaults or builtins
//  - Document: styles chosen for the current screenplay
//  - Page: overrides specific to a single page profile
// Resolution precedence is Page > Document > Global > Builtin.
// Builtins are provided by styles.go (builtinStyles map).

type StyleSheet struct {
	Global   map[string]BlockStyle
	Document map[string]BlockStyle
	Page     map[string]BlockStyle
}

// NewStyleSheet creates a stylesheet with empty scopes and builtin styles
// copied into Global for convenience.
func NewStyleSheet() *StyleSheet {
	ss := &StyleSheet{
		Global:   map[string]BlockStyle{},
		Document: map[string]BlockStyle{},
		Page:     map[string]BlockStyle{},
	}
	for _, name := range ListStyles() {
		if st, ok := GetStyle(name); ok {
			ss.Global[name] = st
		}
	}
	return ss
}

// WithDocument returns a copy with the provided document-level overrides merged.
func (s *StyleSheet) WithDocument(over map[string]BlockStyle) *StyleSheet {
	cp := s.clone()
	for k, v := range over {
		cp.Document[k] = v
	}
	return cp
}

// WithPage returns a copy with the provided page-level overrides merged.
func (s *StyleSheet) WithPage(over map[string]BlockStyle) *StyleSheet {
	cp := s.clone()
	for k, v := range over {
		cp.Page[k] = v
	}
	return cp
}

// Resolve returns the effective BlockStyle by kind using precedence
// Page > Document > Global > Builtin. The second return value is false if
// the kind cannot be resolved at any level.
func (s *StyleSheet) Resolve(kind string) (BlockStyle, bool) {
	if s == nil {
		return BlockStyle{}, false
	}
	if st, ok := s.Page[kind]; ok {
		return st, true
	}
	if st, ok := s.Document[kind]; ok {
		return st, true
	}
	if st, ok := s.Global[kind]; ok {
		return st, true
	}
	if st, ok := GetStyle(kind); ok {
		return st, true
	}
	return BlockStyle{}, false
}

// Names returns the set of known style kinds considering all scopes.
// Order is deterministic: builtin ListStyles order, then any additional
// names per scope, sorted.
func (s *StyleSheet) Names() []string {
	seen := map[string]bool{}
	var out []string
	for _, name := range ListStyles() {
		if _, ok := s.Resolve(name); ok {
			out = append(out, name)
			seen[name] = true
		}
	}
	collect := func(m map[string]BlockStyle) {
		var extra []string
		for k := range m {
			if !seen[k] {
				seen[k] = true
				extra = append(extra, k)
			}
		}
		sort.Strings(extra)
		out = append(out, extra...)
	}
	collect(s.Global)
	collect(s.Document)
	collect(s.Page)
	return out
}

func (s *StyleSheet) clone() *StyleSheet {
	cp := &StyleSheet{
		Global:   map[string]BlockStyle{},
		Document: map[string]BlockStyle{},
		Page:     map[string]BlockStyle{},
	}
	for k, v := range s.Global {
		cp.Global[k] = v
	}
	for k, v := range s.Document {
		cp.Document[k] = v
	}
	for k, v := range s.Page {
		cp.Page[k] = v
	}
	return cp
}

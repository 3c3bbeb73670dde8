/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package htmlrender

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadStyleSheet reads style overrides from a JSON or YAML file, picking the
// codec from the extension. The file maps element kinds to inline CSS
// declarations, for example:
//
//	dialogue: "text-align:center;color:#222"
//	transition: "text-align:left;font-style:italic"
//
// The overrides are applied at document scope over the builtin presets, so
// kinds the file does not mention keep their builtin styling. An empty CSS
// value is allowed and clears the styling for that kind.
func LoadStyleSheet(path string) (*StyleSheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load stylesheet: %w", err)
	}
	var kinds map[string]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &kinds); err != nil {
			return nil, fmt.Errorf("load stylesheet %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &kinds); err != nil {
			return nil, fmt.Errorf("load stylesheet %s: %w", path, err)
		}
	}
	if len(kinds) == 0 {
		return nil, fmt.Errorf("load stylesheet %s: no styles defined", path)
	}
	over := make(map[string]BlockStyle, len(kinds))
	for kind, css := range kinds {
		kind = strings.TrimSpace(kind)
		if kind == "" {
			return nil, fmt.Errorf("load stylesheet %s: empty kind name", path)
		}
		over[kind] = BlockStyle{Name: kind, CSS: strings.TrimSpace(css)}
	}
	return NewStyleSheet().WithDocument(over), nil
}

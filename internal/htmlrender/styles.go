/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package htmlrender

// BlockStyle is a reusable styling preset for one element kind, carried as
// inline CSS declarations so the rendered fragment needs no external sheet.
//
// The presets follow Arabic screenplay convention in an RTL page: action
// prose sits on the right margin, dialogue is centered under its speaker,
// and the basmala is set apart on the left in bold.
type BlockStyle struct {
	Name string
	CSS  string
}

var builtinStyles = map[string]BlockStyle{
	"basmala": {
		Name: "basmala",
		CSS:  "text-align:left;font-weight:bold",
	},
	"scene-header": {
		Name: "scene-header",
		CSS:  "text-align:center;font-weight:bold",
	},
	"action": {
		Name: "action",
		CSS:  "text-align:right",
	},
	"character": {
		Name: "character",
		CSS:  "text-align:center;font-weight:bold",
	},
	"parenthetical": {
		Name: "parenthetical",
		CSS:  "text-align:center;font-style:italic",
	},
	"dialogue": {
		Name: "dialogue",
		CSS:  "text-align:center",
	},
	"transition": {
		Name: "transition",
		CSS:  "text-align:left",
	},
}

// GetStyle returns a builtin style preset by kind. The second return value
// is false if the kind is not found.
func GetStyle(kind string) (BlockStyle, bool) { s, ok := builtinStyles[kind]; return s, ok }

// ListStyles lists the names of the builtin styles in stable order.
func ListStyles() []string {
	return []string{
		"basmala",
		"scene-header",
		"action",
		"character",
		"parenthetical",
		"dialogue",
		"transition",
	}
}

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package paginate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// BlockMargin is the vertical spacing around one block kind, in pixels.
type BlockMargin struct {
	Top    float64 `json:"top" yaml:"top"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
}

// Profile describes the page geometry pagination lays blocks into. All
// lengths are CSS pixels at 96 dpi. BlockMargins is keyed by element kind
// (scene-header, action, dialogue, character, parenthetical, transition,
// basmala); kinds without an entry get zero margins.
type Profile struct {
	Name         string                 `json:"name" yaml:"name"`
	PageWidth    float64                `json:"pageWidth" yaml:"pageWidth"`
	PageHeight   float64                `json:"pageHeight" yaml:"pageHeight"`
	MarginTop    float64                `json:"marginTop" yaml:"marginTop"`
	MarginBottom float64                `json:"marginBottom" yaml:"marginBottom"`
	MarginLeft   float64                `json:"marginLeft" yaml:"marginLeft"`
	MarginRight  float64                `json:"marginRight" yaml:"marginRight"`
	SafetyMargin float64                `json:"safetyMargin" yaml:"safetyMargin"`
	FontSize     float64                `json:"fontSize" yaml:"fontSize"`
	LineHeight   float64                `json:"lineHeight" yaml:"lineHeight"`
	BlockMargins map[string]BlockMargin `json:"blockMargins,omitempty" yaml:"blockMargins,omitempty"`
}

// ContentWidth is the horizontal space available to block content.
func (p Profile) ContentWidth() float64 {
	return p.PageWidth - p.MarginLeft - p.MarginRight
}

// ContentHeight is the vertical space available to block content, before
// the safety margin is subtracted.
func (p Profile) ContentHeight() float64 {
	return p.PageHeight - p.MarginTop - p.MarginBottom
}

// Margin returns the block margins for an element kind, zero when the
// profile carries no entry for it.
func (p Profile) Margin(kind string) BlockMargin {
	return p.BlockMargins[kind]
}

// Validate reports the first geometry problem, nil when the profile is
// usable.
func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile: name must not be empty")
	}
	if p.PageWidth <= 0 || p.PageHeight <= 0 {
		return fmt.Errorf("profile %s: page dimensions must be positive", p.Name)
	}
	if p.ContentWidth() <= 0 {
		return fmt.Errorf("profile %s: horizontal margins leave no content width", p.Name)
	}
	if p.ContentHeight() <= p.SafetyMargin {
		return fmt.Errorf("profile %s: vertical margins leave no content height", p.Name)
	}
	if p.LineHeight <= 0 {
		return fmt.Errorf("profile %s: lineHeight must be positive", p.Name)
	}
	return nil
}

func defaultBlockMargins() map[string]BlockMargin {
	return map[string]BlockMargin{
		"basmala":       {Top: 16, Bottom: 16},
		"scene-header":  {Top: 12, Bottom: 12},
		"action":        {Top: 6, Bottom: 6},
		"character":     {Top: 8, Bottom: 2},
		"dialogue":      {Top: 2, Bottom: 2},
		"parenthetical": {Top: 2, Bottom: 2},
		"transition":    {Top: 10, Bottom: 10},
	}
}

// A4 is the default profile: 210x297mm at 96 dpi with one-inch margins.
func A4() Profile {
	return Profile{
		Name:         "a4",
		PageWidth:    794,
		PageHeight:   1123,
		MarginTop:    96,
		MarginBottom: 96,
		MarginLeft:   96,
		MarginRight:  96,
		SafetyMargin: 8,
		FontSize:     14,
		LineHeight:   22,
		BlockMargins: defaultBlockMargins(),
	}
}

// Letter is the US letter profile: 8.5x11in at 96 dpi.
func Letter() Profile {
	return Profile{
		Name:         "letter",
		PageWidth:    816,
		PageHeight:   1056,
		MarginTop:    96,
		MarginBottom: 96,
		MarginLeft:   96,
		MarginRight:  96,
		SafetyMargin: 8,
		FontSize:     14,
		LineHeight:   22,
		BlockMargins: defaultBlockMargins(),
	}
}

var builtinProfiles = map[string]func() Profile{
	"a4":     A4,
	"letter": Letter,
}

// BuiltinProfile resolves a profile by name, case-insensitive.
func BuiltinProfile(name string) (Profile, bool) {
	f, ok := builtinProfiles[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Profile{}, false
	}
	return f(), true
}

// BuiltinProfileNames lists the built-in profile names sorted.
func BuiltinProfileNames() []string {
	names := make([]string, 0, len(builtinProfiles))
	for n := range builtinProfiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LoadProfile reads a profile from a JSON or YAML file, picking the codec
// from the extension, and validates it.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("load profile: %w", err)
	}
	var p Profile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &p); err != nil {
			return Profile{}, fmt.Errorf("load profile %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &p); err != nil {
			return Profile{}, fmt.Errorf("load profile %s: %w", path, err)
		}
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

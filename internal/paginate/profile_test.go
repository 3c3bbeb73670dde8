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
	"os"
	"path/filepath"
	"reflect"
	"testing"

	gojsonschema "github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

func TestBuiltinProfilesConformToSchema(t *testing.T) {
	schemaPath := filepath.Join("..", "..", "docs", "page_profile.schema.json")
	schemaBytes, err := os.ReadFile(schemaPath)
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	schemaLoader := gojsonschema.NewBytesLoader(schemaBytes)

	for _, name := range BuiltinProfileNames() {
		p, ok := BuiltinProfile(name)
		if !ok {
			t.Fatalf("BuiltinProfile(%q) missing", name)
		}
		data, err := json.Marshal(p)
		if err != nil {
			t.Fatalf("marshal %s: %v", name, err)
		}
		result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
		if err != nil {
			t.Fatalf("schema validate error for %s: %v", name, err)
		}
		if !result.Valid() {
			for _, e := range result.Errors() {
				t.Logf("schema error: %s", e)
			}
			t.Fatalf("profile %s does not conform to schema", name)
		}
	}
}

func TestBuiltinProfilesValidate(t *testing.T) {
	for _, name := range BuiltinProfileNames() {
		p, _ := BuiltinProfile(name)
		if err := p.Validate(); err != nil {
			t.Fatalf("builtin %s invalid: %v", name, err)
		}
		if p.ContentWidth() <= 0 || p.ContentHeight() <= 0 {
			t.Fatalf("builtin %s has no content area", name)
		}
	}
}

func TestBuiltinProfile_UnknownName(t *testing.T) {
	if _, ok := BuiltinProfile("tabloid"); ok {
		t.Fatalf("unknown profile name resolved")
	}
	if _, ok := BuiltinProfile(" A4 "); !ok {
		t.Fatalf("profile lookup should be case- and space-insensitive")
	}
}

func TestLoadProfile_JSONAndYAML(t *testing.T) {
	dir := t.TempDir()
	want := A4()

	jsonPath := filepath.Join(dir, "profile.json")
	data, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := LoadProfile(jsonPath)
	if err != nil {
		t.Fatalf("LoadProfile(json): %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("json round trip = %+v, want %+v", got, want)
	}

	yamlPath := filepath.Join(dir, "profile.yaml")
	ydata, err := yaml.Marshal(want)
	if err != nil {
		t.Fatalf("yaml marshal: %v", err)
	}
	if err := os.WriteFile(yamlPath, ydata, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err = LoadProfile(yamlPath)
	if err != nil {
		t.Fatalf("LoadProfile(yaml): %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("yaml round trip = %+v, want %+v", got, want)
	}
}

func TestLoadProfile_RejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	bad := A4()
	bad.PageHeight = 0
	data, err := json.Marshal(bad)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadProfile(path); err == nil {
		t.Fatalf("LoadProfile accepted a zero-height profile")
	}
	if _, err := LoadProfile(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatalf("LoadProfile accepted a missing file")
	}
}

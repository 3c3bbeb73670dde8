/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */
package htmlrender

import (
	"os"
	"path/filepath"
	"testing"
)

func writeStyleFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write style file: %v", err)
	}
	return path
}

func TestLoadStyleSheet_YAMLOverrides(t *testing.T) {
	path := writeStyleFile(t, "noir.yaml",
		"dialogue: \"text-align:center;color:#222\"\nnote: \"font-size:smaller\"\n")
	ss, err := LoadStyleSheet(path)
	if err != nil {
		t.Fatalf("LoadStyleSheet: %v", err)
	}

	got, ok := ss.Resolve("dialogue")
	if !ok || got.CSS != "text-align:center;color:#222" {
		t.Fatalf("dialogue override not applied: %q, %v", got.CSS, ok)
	}
	// Kinds the file does not mention keep their builtin styling.
	builtin, _ := GetStyle("action")
	if got, ok := ss.Resolve("action"); !ok || got.CSS != builtin.CSS {
		t.Fatalf("action should stay builtin, got %q", got.CSS)
	}
	// Extra kinds become resolvable alongside the builtins.
	if got, ok := ss.Resolve("note"); !ok || got.CSS != "font-size:smaller" {
		t.Fatalf("custom kind not resolvable: %q, %v", got.CSS, ok)
	}
}

func TestLoadStyleSheet_JSON(t *testing.T) {
	path := writeStyleFile(t, "plain.json", `{"transition":"text-align:left;font-style:italic"}`)
	ss, err := LoadStyleSheet(path)
	if err != nil {
		t.Fatalf("LoadStyleSheet: %v", err)
	}
	if got, _ := ss.Resolve("transition"); got.CSS != "text-align:left;font-style:italic" {
		t.Fatalf("json override not applied: %q", got.CSS)
	}
}

func TestLoadStyleSheet_EmptyCSSClearsStyling(t *testing.T) {
	path := writeStyleFile(t, "bare.yaml", "basmala: \"\"\n")
	ss, err := LoadStyleSheet(path)
	if err != nil {
		t.Fatalf("LoadStyleSheet: %v", err)
	}
	got, ok := ss.Resolve("basmala")
	if !ok {
		t.Fatalf("basmala should still resolve")
	}
	if got.CSS != "" {
		t.Fatalf("empty override should clear CSS, got %q", got.CSS)
	}
}

func TestLoadStyleSheet_Errors(t *testing.T) {
	if _, err := LoadStyleSheet(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	empty := writeStyleFile(t, "empty.yaml", "")
	if _, err := LoadStyleSheet(empty); err == nil {
		t.Fatalf("expected error for file with no styles")
	}
	junk := writeStyleFile(t, "junk.yaml", "dialogue: [nested, list]\n")
	if _, err := LoadStyleSheet(junk); err == nil {
		t.Fatalf("expected error for non-string values")
	}
}

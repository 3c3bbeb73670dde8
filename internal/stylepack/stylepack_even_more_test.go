/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package stylepack

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func TestInstall_BarePathsAndDirectoryEntries(t *testing.T) {
	work := t.TempDir()
	zpath := filepath.Join(work, "pack2.zip")
	f, err := os.Create(zpath)
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	zw := zip.NewWriter(f)

	// Directory entry
	dh := &zip.FileHeader{Name: "styles/print/"}
	dh.SetMode(os.ModeDir | 0o755)
	if _, err := zw.CreateHeader(dh); err != nil {
		t.Fatalf("create dir header: %v", err)
	}

	// Entry without the styles/ prefix installs as-is under the dir
	w, _ := zw.Create("extra/plain.yaml")
	_, _ = w.Write([]byte("transition: \"text-align:left\"\n"))

	_ = zw.Close()
	_ = f.Close()

	stylesDir := filepath.Join(work, "styles")
	installed, err := Install(stylesDir, zpath)
	if err != nil {
		t.Fatalf("install pack: %v", err)
	}
	if installed != 1 { // only the file counts, directory entry doesn't
		t.Fatalf("expected installed=1, got %d", installed)
	}
	if _, err := os.Stat(filepath.Join(stylesDir, "extra", "plain.yaml")); err != nil {
		t.Fatalf("expected installed file under extra/: %v", err)
	}
	if fi, err := os.Stat(filepath.Join(stylesDir, "print")); err != nil || !fi.IsDir() {
		t.Fatalf("expected directory entry materialized: %v", err)
	}
}

func TestInstall_ErrorArgs(t *testing.T) {
	if _, err := Install("", ""); err == nil {
		t.Fatalf("expected error on empty args")
	}
	if _, err := Install(t.TempDir(), filepath.Join(t.TempDir(), "missing.zip")); err == nil {
		t.Fatalf("expected error for missing pack")
	}
}

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sinsweatpants/ara-scriptease/internal/htmlrender"
	"github.com/sinsweatpants/ara-scriptease/internal/paginate"
	"github.com/sinsweatpants/ara-scriptease/internal/screenplay"
	"github.com/sinsweatpants/ara-scriptease/internal/textmetrics"
)

const proofScript = `بسم الله الرحمن الرحيم

مشهد 1 - داخلي - ليل
القصر

يدخل أحمد إلى القاعة حاملاً مصباحاً.

أحمد :
أين كنت يا سعاد؟

سعاد :
( بصوت خافت )
كنت في الحديقة أقطف الورود.

قطع إلى:`

func paginatedEngine(t *testing.T) (*paginate.Engine, paginate.Measurer) {
	t.Helper()
	profile := paginate.A4()
	m := textmetrics.NewNodeMeasurer(profile, nil)
	r := htmlrender.NewRenderer(nil)
	e, err := paginate.New(profile, m, r.ParagraphBuilder())
	if err != nil {
		t.Fatalf("paginate.New: %v", err)
	}
	r.PaginateDocument(e, screenplay.Classify(proofScript))
	return e, m
}

func TestWriteLayoutPDF_CreatesFile(t *testing.T) {
	e, m := paginatedEngine(t)
	out := filepath.Join(t.TempDir(), "exports", "proof.pdf")
	if err := WriteLayoutPDF(e, m, "ليلة القصر", out, PDFOptions{IncludeGuides: true}); err != nil {
		t.Fatalf("export: %v", err)
	}
	st, err := os.Stat(out)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if st.Size() <= 0 {
		t.Fatalf("pdf file empty")
	}
	head := make([]byte, 5)
	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	if _, err := f.Read(head); err != nil {
		t.Fatalf("read head: %v", err)
	}
	if string(head) != "%PDF-" {
		t.Fatalf("not a PDF header: %q", head)
	}
}

func TestWriteLayoutPDF_PageSubset(t *testing.T) {
	e, m := paginatedEngine(t)
	out := filepath.Join(t.TempDir(), "subset.pdf")
	if err := WriteLayoutPDF(e, m, "ليلة القصر", out, PDFOptions{Pages: []int{0}}); err != nil {
		t.Fatalf("export subset: %v", err)
	}
	if st, err := os.Stat(out); err != nil || st.Size() <= 0 {
		t.Fatalf("subset pdf missing or empty: %v", err)
	}
}

func TestWriteLayoutPDF_RejectsNilInputs(t *testing.T) {
	e, m := paginatedEngine(t)
	out := filepath.Join(t.TempDir(), "bad.pdf")
	if err := WriteLayoutPDF(nil, m, "x", out, PDFOptions{}); err == nil {
		t.Fatalf("expected error for nil engine")
	}
	if err := WriteLayoutPDF(e, nil, "x", out, PDFOptions{}); err == nil {
		t.Fatalf("expected error for nil measurer")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("no file should be written on error")
	}
}

func TestWriteHTML_StandaloneDocument(t *testing.T) {
	e, _ := paginatedEngine(t)
	out := filepath.Join(t.TempDir(), "nested", "dir", "script.html")
	if err := WriteHTML(e, "شرق & غرب", out); err != nil {
		t.Fatalf("export html: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	s := string(data)
	for _, want := range []string{
		"<!DOCTYPE html>",
		`dir="rtl"`,
		"<title>شرق &amp; غرب</title>",
		`class="page"`,
		"794px",
		"الورود",
	} {
		if !strings.Contains(s, want) {
			t.Fatalf("exported html missing %q", want)
		}
	}
	if strings.Contains(s, "<title>شرق & غرب</title>") {
		t.Fatalf("title not escaped")
	}
}

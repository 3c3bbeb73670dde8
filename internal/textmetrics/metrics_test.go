/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textmetrics

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/sinsweatpants/ara-scriptease/internal/paginate"
)

func metricsProfile() paginate.Profile {
	return paginate.Profile{
		Name:       "metrics-test",
		PageWidth:  90,
		PageHeight: 500,
		MarginTop:  10, MarginBottom: 10,
		MarginLeft: 10, MarginRight: 10,
		FontSize:   13,
		LineHeight: 10,
		BlockMargins: map[string]paginate.BlockMargin{
			"scene-header": {Top: 12, Bottom: 12},
		},
	}
}

func blockNode(kind, text string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div"}
	if kind != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: kind})
	}
	if text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
	return n
}

func TestMeasure_WrapCount(t *testing.T) {
	// Face7x13 advances 7px per rune: "abcd" is 28px, a space 7px. With
	// 70px of content width two words share a line, the third wraps.
	m := NewNodeMeasurer(metricsProfile(), nil)
	ext, err := m.Measure(blockNode("action", "abcd abcd abcd abcd"))
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if ext.Height != 20 {
		t.Fatalf("Height = %v, want 20 (two wrapped lines)", ext.Height)
	}
}

func TestMeasure_ArabicFallbackAdvance(t *testing.T) {
	// Arabic runes resolve to the replacement glyph's fixed advance, so
	// measurement stays deterministic for Arabic text.
	m := NewNodeMeasurer(metricsProfile(), nil)
	ext, err := m.Measure(blockNode("action", "كلمة كلمة كلمة كلمة"))
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if ext.Height != 20 {
		t.Fatalf("Height = %v, want 20", ext.Height)
	}
}

func TestMeasure_Deterministic(t *testing.T) {
	m := NewNodeMeasurer(metricsProfile(), nil)
	n := blockNode("action", "نص تجريبي من عدة كلمات متتابعة للقياس")
	first, err := m.Measure(n)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := m.Measure(n)
		if err != nil {
			t.Fatalf("Measure: %v", err)
		}
		if again != first {
			t.Fatalf("Measure drifted: %+v then %+v", first, again)
		}
	}
}

func TestMeasure_MonotonicInWordCount(t *testing.T) {
	m := NewNodeMeasurer(metricsProfile(), nil)
	prev := 0.0
	for n := 1; n <= 30; n += 3 {
		text := strings.TrimSpace(strings.Repeat("كلمة ", n))
		ext, err := m.Measure(blockNode("action", text))
		if err != nil {
			t.Fatalf("Measure: %v", err)
		}
		if ext.Height < prev {
			t.Fatalf("height decreased with more words: %v after %v", ext.Height, prev)
		}
		prev = ext.Height
	}
}

func TestMeasure_MarginsFromProfileKind(t *testing.T) {
	m := NewNodeMeasurer(metricsProfile(), nil)
	ext, err := m.Measure(blockNode("scene-header", "مشهد 1"))
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if ext.MarginTop != 12 || ext.MarginBottom != 12 {
		t.Fatalf("margins = %v/%v, want 12/12", ext.MarginTop, ext.MarginBottom)
	}
	ext, err = m.Measure(blockNode("action", "نص"))
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if ext.MarginTop != 0 || ext.MarginBottom != 0 {
		t.Fatalf("unlisted kind margins = %v/%v, want zero", ext.MarginTop, ext.MarginBottom)
	}
}

func TestMeasure_BlockChildrenStack(t *testing.T) {
	m := NewNodeMeasurer(metricsProfile(), nil)
	parent := blockNode("scene-header", "")
	parent.AppendChild(blockNode("", "مشهد 1"))
	parent.AppendChild(blockNode("", "قصر"))
	parent.AppendChild(blockNode("", "نهار"))
	ext, err := m.Measure(parent)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if ext.Height != 30 {
		t.Fatalf("Height = %v, want 30 (three stacked lines)", ext.Height)
	}
}

func TestMeasure_EmptyBlockIsOneLine(t *testing.T) {
	m := NewNodeMeasurer(metricsProfile(), nil)
	ext, err := m.Measure(blockNode("action", ""))
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if ext.Height != 10 {
		t.Fatalf("Height = %v, want one line height", ext.Height)
	}
}

func TestMeasure_NilNode(t *testing.T) {
	m := NewNodeMeasurer(metricsProfile(), nil)
	if _, err := m.Measure(nil); err == nil {
		t.Fatalf("Measure(nil) succeeded")
	}
}

func TestNodeMeasurer_DrivesEngine(t *testing.T) {
	profile := metricsProfile()
	m := NewNodeMeasurer(profile, BasicProvider{})
	e, err := paginate.New(profile, m, func(kind, text string) *html.Node {
		return blockNode(kind, text)
	})
	if err != nil {
		t.Fatalf("paginate.New: %v", err)
	}
	long := strings.TrimSpace(strings.Repeat("كلمة ", 300))
	e.AppendTextParagraph(long, "action")
	if len(e.Pages()) < 2 {
		t.Fatalf("long paragraph stayed on %d page(s), want a split", len(e.Pages()))
	}
}

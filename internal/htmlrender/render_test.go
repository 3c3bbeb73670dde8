/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */
package htmlrender

import (
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/sinsweatpants/ara-scriptease/internal/screenplay"
)

func TestRender_EscapesInjectedMarkup(t *testing.T) {
	doc := screenplay.Document{
		Elements: []screenplay.ScreenplayElement{
			{
				Type:    screenplay.ElementAction,
				Content: `<script>alert("x")</script>`,
				Lines:   []string{`<script>alert("x")</script>`},
			},
		},
		LineCount: 1,
	}
	out, err := NewRenderer(nil).Render(doc)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("raw script tag survived rendering: %s", out)
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Fatalf("expected escaped script tag in output: %s", out)
	}
}

func TestRender_RTLAttributes(t *testing.T) {
	doc := screenplay.Classify("أحمد يدخل الغرفة")
	out, err := NewRenderer(nil).Render(doc)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, `dir="rtl"`) {
		t.Fatalf("missing dir attribute: %s", out)
	}
	if !strings.Contains(out, `lang="ar"`) {
		t.Fatalf("missing lang attribute: %s", out)
	}
}

func TestBuildNode_SceneHeaderStructure(t *testing.T) {
	el := screenplay.ScreenplayElement{
		Type:    screenplay.ElementSceneHeader,
		Content: "مشهد 1 - داخلي-ليل - القصر",
		Lines:   []string{"مشهد 1 - داخلي - ليل", "القصر"},
	}
	n := NewRenderer(nil).BuildNode(el)
	if got := attrVal(n, "class"); got != "scene-header" {
		t.Fatalf("class = %q, want scene-header", got)
	}
	top := n.FirstChild
	if top == nil || attrVal(top, "class") != "scene-header-top" {
		t.Fatalf("missing scene-header-top child")
	}
	num := top.FirstChild
	if num == nil || attrVal(num, "class") != "scene-num" || collectText(num) != "مشهد 1" {
		t.Fatalf("scene-num span wrong: %q", collectText(num))
	}
	var timeLoc *html.Node
	for c := top.FirstChild; c != nil; c = c.NextSibling {
		if attrVal(c, "class") == "time-location" {
			timeLoc = c
		}
	}
	if timeLoc == nil || collectText(timeLoc) != "داخلي-ليل" {
		t.Fatalf("time-location span wrong")
	}
	place := top.NextSibling
	if place == nil || attrVal(place, "class") != "scene-place" {
		t.Fatalf("missing scene-place child")
	}
	if got := collectText(place); got != "القصر" {
		t.Fatalf("place = %q, want القصر", got)
	}
}

func TestBuildNode_SceneHeaderFallsBackToContent(t *testing.T) {
	el := screenplay.ScreenplayElement{
		Type:    screenplay.ElementSceneHeader,
		Content: "مشهد بدون رقم",
		Lines:   []string{"مشهد بدون رقم"},
	}
	n := NewRenderer(nil).BuildNode(el)
	if got := collectText(n); got != "مشهد بدون رقم" {
		t.Fatalf("fallback text = %q", got)
	}
}

func TestBuildNode_DialogueInterleaving(t *testing.T) {
	el := screenplay.ScreenplayElement{
		Type: screenplay.ElementDialogue,
		Lines: []string{
			"أحمد:",
			"مرحباً بكم",
			"(يبتسم)",
			"أتمنى أن تكونوا بخير",
		},
	}
	n := NewRenderer(nil).BuildNode(el)

	wantClass := []string{"character", "dialogue", "parenthetical", "dialogue"}
	wantText := []string{"أحمد:", "مرحباً بكم", "(يبتسم)", "أتمنى أن تكونوا بخير"}
	i := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if i >= len(wantClass) {
			t.Fatalf("too many children")
		}
		if got := attrVal(c, "class"); got != wantClass[i] {
			t.Fatalf("child %d class = %q, want %q", i, got, wantClass[i])
		}
		if got := collectText(c); got != wantText[i] {
			t.Fatalf("child %d text = %q, want %q", i, got, wantText[i])
		}
		i++
	}
	if i != len(wantClass) {
		t.Fatalf("got %d children, want %d", i, len(wantClass))
	}
}

func TestBuildNode_AppliesResolvedStyles(t *testing.T) {
	ss := NewStyleSheet().WithDocument(map[string]BlockStyle{
		"action": {Name: "action", CSS: "text-align:right;color:#333"},
	})
	el := screenplay.ScreenplayElement{Type: screenplay.ElementAction, Content: "يدخل أحمد"}
	n := NewRenderer(ss).BuildNode(el)
	if got := attrVal(n, "style"); got != "text-align:right;color:#333" {
		t.Fatalf("style = %q", got)
	}
}

func TestRender_ClassifiedSampleOrder(t *testing.T) {
	text := "بسم الله الرحمن الرحيم\n" +
		"مشهد 1 - ليل - داخلي\n" +
		"القصر\n" +
		"\n" +
		"أحمد يجلس وحيداً.\n" +
		"أحمد:\n" +
		"مرحباً\n" +
		"\n" +
		"قطع إلى:"
	doc := screenplay.Classify(text)
	out, err := NewRenderer(nil).Render(doc)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := []string{"basmala", "scene-header", "action", "dialogue-block", "transition"}
	pos := 0
	for _, cls := range want {
		idx := strings.Index(out[pos:], `class="`+cls+`"`)
		if idx < 0 {
			t.Fatalf("missing block %q after offset %d in %s", cls, pos, out)
		}
		pos += idx
	}
}

// attrVal returns the value of the named attribute, or "".
func attrVal(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// collectText concatenates all text node descendants.
func collectText(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(collectText(c))
	}
	return sb.String()
}

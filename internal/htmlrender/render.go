/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package htmlrender turns classified screenplay elements into styled HTML.
// Every piece of source text enters the tree as a text node, so the
// serializer escapes markup characters and raw input can never inject tags.
package htmlrender

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/sinsweatpants/ara-scriptease/internal/screenplay"
)

// Renderer builds block nodes for screenplay elements, styling them from a
// resolved stylesheet.
type Renderer struct {
	styles *StyleSheet
}

// NewRenderer builds a renderer over a stylesheet; nil means builtins only.
func NewRenderer(ss *StyleSheet) *Renderer {
	if ss == nil {
		ss = NewStyleSheet()
	}
	return &Renderer{styles: ss}
}

// BuildNode materializes one element as a block node.
func (r *Renderer) BuildNode(el screenplay.ScreenplayElement) *html.Node {
	switch el.Type {
	case screenplay.ElementSceneHeader:
		return r.sceneHeaderNode(el)
	case screenplay.ElementDialogue:
		return r.dialogueNode(el)
	case screenplay.ElementBasmala:
		return r.lineNode("basmala", el.Content)
	case screenplay.ElementTransition:
		return r.lineNode("transition", el.Content)
	default:
		return r.lineNode("action", el.Content)
	}
}

// Render serializes the whole document as one RTL fragment, one block per
// element, without pagination.
func (r *Renderer) Render(doc screenplay.Document) (string, error) {
	root := elemNode("screenplay")
	root.Attr = append(root.Attr,
		html.Attribute{Key: "dir", Val: "rtl"},
		html.Attribute{Key: "lang", Val: "ar"},
	)
	for _, el := range doc.Elements {
		root.AppendChild(r.BuildNode(el))
	}
	var sb strings.Builder
	if err := html.Render(&sb, root); err != nil {
		return "", fmt.Errorf("htmlrender: %w", err)
	}
	return sb.String(), nil
}

// sceneHeaderNode re-derives the header parts from the element's lines and
// lays them out as scene number and time/location spans over a place line.
func (r *Renderer) sceneHeaderNode(el screenplay.ScreenplayElement) *html.Node {
	n := r.blockNode("scene-header")
	parts, ok := screenplay.ExtractSceneHeader(el.Lines, 0)
	if !ok {
		n.AppendChild(textNode(el.Content))
		return n
	}
	top := elemNode("scene-header-top")
	top.AppendChild(spanNode("scene-num", parts.SceneNum))
	if parts.TimeLocation != "" {
		top.AppendChild(textNode(" – "))
		top.AppendChild(spanNode("time-location", parts.TimeLocation))
	}
	n.AppendChild(top)
	if parts.Place != "" {
		place := elemNode("scene-place")
		place.AppendChild(textNode(parts.Place))
		n.AppendChild(place)
	}
	return n
}

// dialogueNode keeps the element's interleaving: the character line first,
// then parentheticals and speech in their original order.
func (r *Renderer) dialogueNode(el screenplay.ScreenplayElement) *html.Node {
	n := r.blockNode("dialogue-block")
	if len(el.Lines) == 0 {
		return n
	}
	n.AppendChild(r.lineNode("character", el.Lines[0]))
	for _, ln := range el.Lines[1:] {
		if screenplay.IsParenthetical(ln) {
			n.AppendChild(r.lineNode("parenthetical", ln))
		} else {
			n.AppendChild(r.lineNode("dialogue", ln))
		}
	}
	return n
}

func (r *Renderer) lineNode(kind, text string) *html.Node {
	n := r.blockNode(kind)
	if text != "" {
		n.AppendChild(textNode(text))
	}
	return n
}

func (r *Renderer) blockNode(kind string) *html.Node {
	n := elemNode(kind)
	if st, ok := r.styles.Resolve(kind); ok && st.CSS != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "style", Val: st.CSS})
	}
	return n
}

func elemNode(class string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div"}
	if class != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
	}
	return n
}

func spanNode(class, text string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: atom.Span, Data: "span"}
	n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
	n.AppendChild(textNode(text))
	return n
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

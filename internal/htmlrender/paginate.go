/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package htmlrender

import (
	"golang.org/x/net/html"

	"github.com/sinsweatpants/ara-scriptease/internal/paginate"
	"github.com/sinsweatpants/ara-scriptease/internal/screenplay"
)

// ParagraphBuilder adapts the renderer for the pagination engine, which
// materializes paragraph blocks while fitting word prefixes.
func (r *Renderer) ParagraphBuilder() paginate.ParagraphBuilder {
	return func(kind, text string) *html.Node {
		return r.lineNode(kind, text)
	}
}

// PaginateDocument feeds the document's elements to the engine in order.
// Headers, transitions, the basmala, character lines and parentheticals are
// indivisible blocks; action prose and speech lines flow as paragraphs that
// may split across pages at word boundaries. A document with no elements
// but a positive line count (whitespace-only input) emits one blank
// placeholder block.
func (r *Renderer) PaginateDocument(e *paginate.Engine, doc screenplay.Document) {
	for _, el := range doc.Elements {
		switch el.Type {
		case screenplay.ElementBasmala, screenplay.ElementSceneHeader, screenplay.ElementTransition:
			e.AppendBlock(func() *html.Node { return r.BuildNode(el) })
		case screenplay.ElementDialogue:
			if len(el.Lines) == 0 {
				continue
			}
			name := el.Lines[0]
			e.AppendBlock(func() *html.Node { return r.lineNode("character", name) })
			for _, ln := range el.Lines[1:] {
				if screenplay.IsParenthetical(ln) {
					e.AppendBlock(func() *html.Node { return r.lineNode("parenthetical", ln) })
				} else {
					e.AppendTextParagraph(ln, "dialogue")
				}
			}
		default:
			e.AppendTextParagraph(el.Content, "action")
		}
	}
	if len(doc.Elements) == 0 && doc.LineCount > 0 {
		e.AppendTextParagraph("", "action")
	}
}

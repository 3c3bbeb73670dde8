/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package paginate

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Extent is a measured block size. Margins are reported separately so the
// engine can budget the outer box, not just the content height.
type Extent struct {
	Height       float64
	MarginTop    float64
	MarginBottom float64
}

// Outer is the vertical space the block occupies on a page.
func (x Extent) Outer() float64 {
	return x.Height + x.MarginTop + x.MarginBottom
}

// Measurer reports the rendered extent of a node that has already been
// inserted into the page tree. Implementations must not detach the node.
type Measurer interface {
	Measure(n *html.Node) (Extent, error)
}

// NodeBuilder materializes one discrete block node on demand.
type NodeBuilder func() *html.Node

// ParagraphBuilder materializes a paragraph block of the given kind around
// the given text. The engine calls it with word prefixes during fitting, so
// it must be cheap and side-effect free.
type ParagraphBuilder func(kind, text string) *html.Node

// Page is one filled page of the output document.
type Page struct {
	node    *html.Node
	content *html.Node
	number  int
	used    float64
	blocks  int
}

// Number is the 1-based page number.
func (p *Page) Number() int { return p.number }

// BlockCount is how many blocks the page holds.
func (p *Page) BlockCount() int { return p.blocks }

// Node is the page's root element.
func (p *Page) Node() *html.Node { return p.node }

// Content is the element blocks are appended into.
func (p *Page) Content() *html.Node { return p.content }

// Engine appends blocks to pages in order, creating new pages as capacity
// runs out. One engine instance owns its page list exclusively; appends are
// synchronous and must not be interleaved from multiple goroutines.
type Engine struct {
	profile Profile
	measure Measurer
	para    ParagraphBuilder
	root    *html.Node
	pages   []*Page
}

// New builds an engine over a validated profile with an injected measurer
// and paragraph builder.
func New(profile Profile, m Measurer, para ParagraphBuilder) (*Engine, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("paginate: measurer must not be nil")
	}
	if para == nil {
		return nil, fmt.Errorf("paginate: paragraph builder must not be nil")
	}
	e := &Engine{profile: profile, measure: m, para: para}
	e.reset()
	return e, nil
}

func (e *Engine) reset() {
	root := elem(atom.Div, "screenplay-document")
	root.Attr = append(root.Attr, html.Attribute{Key: "dir", Val: "rtl"})
	e.root = root
	e.pages = nil
	e.newPage()
}

// Clear discards all pages and reinitializes with a single fresh page.
func (e *Engine) Clear() {
	e.reset()
}

// Profile returns the page geometry the engine was built with.
func (e *Engine) Profile() Profile { return e.profile }

// Pages returns the pages in append order. At least one page always exists.
func (e *Engine) Pages() []*Page { return e.pages }

// Document returns the root node holding every page and separator.
func (e *Engine) Document() *html.Node { return e.root }

// HTML renders the document tree to markup. Text nodes are escaped by the
// renderer, so raw input text can never inject markup.
func (e *Engine) HTML() (string, error) {
	var sb strings.Builder
	if err := html.Render(&sb, e.root); err != nil {
		return "", fmt.Errorf("paginate: render: %w", err)
	}
	return sb.String(), nil
}

func (e *Engine) newPage() *Page {
	if len(e.pages) > 0 {
		e.root.AppendChild(elem(atom.Div, "page-separator"))
	}
	number := len(e.pages) + 1
	page := &Page{
		node:    elem(atom.Div, "page"),
		content: elem(atom.Div, "page-content"),
		number:  number,
	}
	footer := elem(atom.Div, "page-footer")
	footer.AppendChild(&html.Node{Type: html.TextNode, Data: strconv.Itoa(number)})
	page.node.AppendChild(page.content)
	page.node.AppendChild(footer)
	e.root.AppendChild(page.node)
	e.pages = append(e.pages, page)
	return page
}

func (e *Engine) current() *Page {
	return e.pages[len(e.pages)-1]
}

// remaining is the page's unused vertical budget: content height minus the
// safety margin minus what placed blocks already consumed.
func (e *Engine) remaining(p *Page) float64 {
	return e.profile.ContentHeight() - e.profile.SafetyMargin - p.used
}

// AppendBlock materializes one discrete block on the current page. When its
// measured outer extent exceeds the remaining capacity and the page already
// holds at least one block, the node moves to a fresh page instead; a lone
// oversized block stays, so no page is ever left empty by the move rule.
// Measurement failures are ignored and the block keeps its position.
func (e *Engine) AppendBlock(build NodeBuilder) {
	if build == nil {
		return
	}
	n := build()
	if n == nil {
		return
	}
	page := e.current()
	page.content.AppendChild(n)
	ext, err := e.measure.Measure(n)
	if err != nil {
		page.blocks++
		return
	}
	outer := ext.Outer()
	if outer > e.remaining(page) && page.blocks > 0 {
		page.content.RemoveChild(n)
		page = e.newPage()
		page.content.AppendChild(n)
	}
	page.used += outer
	page.blocks++
}

// AppendTextParagraph splits text on whitespace and lays the words out as
// one or more paragraph blocks, each holding the largest word prefix that
// fits its page. Splits happen at word boundaries only, and the word
// sequence across pages reconstructs the input exactly. Empty text still
// emits one placeholder block so a blank line survives into the output.
func (e *Engine) AppendTextParagraph(text, kind string) {
	words := strings.Fields(text)
	if len(words) == 0 {
		e.AppendBlock(func() *html.Node { return e.para(kind, "") })
		return
	}
	for len(words) > 0 {
		page := e.current()
		if e.remaining(page) <= 0 && page.blocks > 0 {
			page = e.newPage()
		}
		k := e.maxFit(page, kind, words)
		if k == 0 {
			if page.blocks > 0 {
				page = e.newPage()
				k = e.maxFit(page, kind, words)
			}
			if k == 0 {
				// Even a single word overflows a fresh page; place it
				// anyway so the paragraph keeps making progress.
				k = 1
			}
		}
		chunk := strings.Join(words[:k], " ")
		e.AppendBlock(func() *html.Node { return e.para(kind, chunk) })
		words = words[k:]
	}
}

// maxFit binary-searches the largest word-count prefix whose trial block
// fits the page's remaining capacity. Zero means not even one word fits.
func (e *Engine) maxFit(page *Page, kind string, words []string) int {
	rem := e.remaining(page)
	lo, hi := 0, len(words)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if e.trialOuter(page, kind, words[:mid]) <= rem {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// trialOuter measures a candidate prefix by inserting it, reading its
// extent and removing it again. A failing measurement reads as zero so
// pagination degrades to keeping text together instead of aborting.
func (e *Engine) trialOuter(page *Page, kind string, words []string) float64 {
	n := e.para(kind, strings.Join(words, " "))
	if n == nil {
		return 0
	}
	page.content.AppendChild(n)
	ext, err := e.measure.Measure(n)
	page.content.RemoveChild(n)
	if err != nil {
		return 0
	}
	return ext.Outer()
}

func elem(a atom.Atom, class string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	if class != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
	}
	return n
}

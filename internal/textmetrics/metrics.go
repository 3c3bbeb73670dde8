/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textmetrics

// Deterministic text measurement behind small interfaces, so pagination
// never depends on a live rendering surface. A fixed-advance fallback face
// keeps results identical across machines and runs.

import (
	"fmt"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/sinsweatpants/ara-scriptease/internal/paginate"
)

// FontSpec describes a requested font.
type FontSpec struct {
	Family string // logical family name
	SizePt float64
	Weight int // 100..900
	Italic bool
}

// Metrics provides font metrics in pixels for the resolved face.
type Metrics struct {
	Ascent, Descent, LineGap float64
}

// Provider maps FontSpec to a concrete font.Face.
type Provider interface {
	Resolve(FontSpec) (font.Face, Metrics)
}

// BasicProvider resolves every spec to basicfont.Face7x13. The face answers
// unknown runes, Arabic included, with the replacement glyph's fixed 7px
// advance, which is what makes measurement deterministic.
type BasicProvider struct{}

func (BasicProvider) Resolve(spec FontSpec) (font.Face, Metrics) {
	f := basicfont.Face7x13
	m := f.Metrics()
	return f, Metrics{
		Ascent:  float64(m.Ascent.Round()),
		Descent: float64(m.Descent.Round()),
		LineGap: float64(m.Height.Round() - m.Ascent.Round() - m.Descent.Round()),
	}
}

// NodeMeasurer reports block extents for the pagination engine. Height is
// word-wrapped line count times the profile line height; margins come from
// the profile's per-kind table, keyed by the node's class.
type NodeMeasurer struct {
	profile paginate.Profile
	drawer  *font.Drawer
}

// NewNodeMeasurer builds a measurer over the profile's geometry. A nil
// provider falls back to BasicProvider.
func NewNodeMeasurer(profile paginate.Profile, p Provider) *NodeMeasurer {
	if p == nil {
		p = BasicProvider{}
	}
	face, _ := p.Resolve(FontSpec{SizePt: profile.FontSize})
	return &NodeMeasurer{
		profile: profile,
		drawer:  &font.Drawer{Face: face},
	}
}

// Measure implements paginate.Measurer. Block-level children measure
// independently and stack; inline content wraps against the profile's
// content width.
func (m *NodeMeasurer) Measure(n *html.Node) (paginate.Extent, error) {
	if n == nil {
		return paginate.Extent{}, fmt.Errorf("textmetrics: nil node")
	}
	lines := m.lineCount(n, m.profile.ContentWidth())
	mg := m.profile.Margin(nodeKind(n))
	return paginate.Extent{
		Height:       float64(lines) * m.profile.LineHeight,
		MarginTop:    mg.Top,
		MarginBottom: mg.Bottom,
	}, nil
}

func (m *NodeMeasurer) lineCount(n *html.Node, width float64) int {
	blocks := childBlocks(n)
	if len(blocks) == 0 {
		return m.wrapLines(nodeText(n), width)
	}
	total := 0
	for _, b := range blocks {
		total += m.lineCount(b, width)
	}
	return total
}

// wrapLines counts laid-out lines for text wrapped at word boundaries.
// Empty text still occupies one line. A word wider than the whole line
// gets a line of its own rather than looping.
func (m *NodeMeasurer) wrapLines(text string, width float64) int {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 1
	}
	if width <= 0 {
		return len(words)
	}
	space := m.advance(" ")
	lines := 1
	var cur float64
	for _, w := range words {
		adv := m.advance(w)
		if cur > 0 && cur+space+adv > width {
			lines++
			cur = adv
			continue
		}
		if cur > 0 {
			cur += space
		}
		cur += adv
	}
	return lines
}

func (m *NodeMeasurer) advance(s string) float64 {
	return float64(m.drawer.MeasureString(s) >> 6) // fixed.Int26_6 to px
}

func childBlocks(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.DataAtom == atom.Div || c.DataAtom == atom.P {
			out = append(out, c)
		}
	}
	return out
}

func nodeKind(n *html.Node) string {
	for _, a := range n.Attr {
		if a.Key == "class" {
			if f := strings.Fields(a.Val); len(f) > 0 {
				return f[0]
			}
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

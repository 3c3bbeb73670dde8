/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export writes paginated screenplays to files. The HTML exporter
// carries the full Arabic text; the PDF exporter is a layout proof that
// draws page geometry and block extents, since the built-in PDF fonts
// cannot shape Arabic script.
package export

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/net/html"

	"github.com/sinsweatpants/ara-scriptease/internal/paginate"
)

// Color is an opaque RGB stroke or fill color.
type Color struct {
	R, G, B uint8
}

// Stroke pairs a color with a line width in points.
type Stroke struct {
	Color Color
	Width float64
}

// PDFOptions controls layout proof export behavior.
// Units are points (pt) unless otherwise noted.
//
// Coordinates:
// - Page origin is top-left.
// - Profile lengths are CSS pixels at 96 dpi and scale to points by 72/96.
//
// Guides:
// - Page border drawn at the media box
// - Content box drawn inside the page margins
// - Safety line drawn where pagination stops placing blocks
type PDFOptions struct {
	IncludeGuides bool
	GuideColor    Color
	BlockStroke   Stroke
	Pages         []int // if empty, export all pages
}

// ptPerPx converts profile lengths (96 dpi pixels) to PDF points (72 dpi).
const ptPerPx = 72.0 / 96.0

// WriteLayoutPDF exports the engine's pages to a multi-page PDF proof at
// outPath. Each block on a page becomes a labeled rectangle at its measured
// extent, re-measured through m, so the proof shows exactly the geometry
// pagination worked with. Helvetica keeps text vector without embedding;
// labels stay ASCII for that reason.
func WriteLayoutPDF(e *paginate.Engine, m paginate.Measurer, title, outPath string, opt PDFOptions) error {
	if e == nil {
		return fmt.Errorf("engine is nil")
	}
	if m == nil {
		return fmt.Errorf("measurer is nil")
	}
	profile := e.Profile()

	guideCol := opt.GuideColor
	if guideCol == (Color{}) {
		guideCol = Color{R: 255, G: 0, B: 0}
	}
	blockStroke := opt.BlockStroke
	if blockStroke.Width == 0 {
		blockStroke = Stroke{Color: Color{R: 60, G: 60, B: 60}, Width: 0.6}
	}

	mediaW := profile.PageWidth * ptPerPx
	mediaH := profile.PageHeight * ptPerPx

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: mediaW, Ht: mediaH},
		// Orientation follows from the size
		OrientationStr: "",
	})
	pdf.SetTitle(title, true)
	pdf.SetAuthor("Ara Scriptease", false)
	pdf.SetFont("Helvetica", "", 12)

	pages := pageIndexes(len(e.Pages()), opt.Pages)
	for _, pidx := range pages {
		if pidx < 0 || pidx >= len(e.Pages()) {
			continue
		}
		page := e.Pages()[pidx]
		pdf.AddPageFormat("", gofpdf.SizeType{Wd: mediaW, Ht: mediaH})

		if opt.IncludeGuides {
			setDrawColor(pdf, guideCol)
			pdf.SetLineWidth(0.2)
			// Page border = media box
			pdf.Rect(0, 0, mediaW, mediaH, "D")
			// Content box inside the page margins
			pdf.Rect(
				profile.MarginLeft*ptPerPx,
				profile.MarginTop*ptPerPx,
				profile.ContentWidth()*ptPerPx,
				profile.ContentHeight()*ptPerPx,
				"D",
			)
			// Safety line: pagination stops placing blocks below it
			ySafe := (profile.MarginTop + profile.ContentHeight() - profile.SafetyMargin) * ptPerPx
			pdf.Line(profile.MarginLeft*ptPerPx, ySafe, (profile.MarginLeft+profile.ContentWidth())*ptPerPx, ySafe)
		}

		setDrawColor(pdf, blockStroke.Color)
		pdf.SetLineWidth(blockStroke.Width)
		cursor := profile.MarginTop
		for child := page.Content().FirstChild; child != nil; child = child.NextSibling {
			if child.Type != html.ElementNode {
				continue
			}
			ext, err := m.Measure(child)
			if err != nil {
				ext = paginate.Extent{Height: profile.LineHeight}
			}
			cursor += ext.MarginTop
			x := profile.MarginLeft * ptPerPx
			y := cursor * ptPerPx
			w := profile.ContentWidth() * ptPerPx
			h := ext.Height * ptPerPx
			pdf.Rect(x, y, w, h, "D")

			lines := int(math.Round(ext.Height / profile.LineHeight))
			if lines < 1 {
				lines = 1
			}
			pdf.SetFont("Helvetica", "", 8)
			pdf.Text(x+4, y+9, fmt.Sprintf("%s (%d)", nodeClass(child), lines))

			cursor += ext.Height + ext.MarginBottom
		}

		// Page number centered in the bottom margin
		num := strconv.Itoa(page.Number())
		pdf.SetFont("Helvetica", "", 10)
		nw := pdf.GetStringWidth(num)
		pdf.Text((mediaW-nw)/2, (profile.PageHeight-profile.MarginBottom/2)*ptPerPx, num)
	}

	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func pageIndexes(total int, specific []int) []int {
	if len(specific) == 0 {
		out := make([]int, total)
		for i := range out {
			out[i] = i
		}
		return out
	}
	return specific
}

func setDrawColor(pdf *gofpdf.Fpdf, c Color) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func nodeClass(n *html.Node) string {
	for _, a := range n.Attr {
		if a.Key == "class" {
			return a.Val
		}
	}
	return ""
}

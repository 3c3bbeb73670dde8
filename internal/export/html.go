/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/sinsweatpants/ara-scriptease/internal/paginate"
)

// WriteHTML exports the engine's paginated document as a standalone HTML
// file at outPath. The page chrome (sheet size, margins, footer position)
// comes from the engine's profile so the file prints at true page size;
// block styling already sits inline on the nodes.
func WriteHTML(e *paginate.Engine, title, outPath string) error {
	if e == nil {
		return fmt.Errorf("engine is nil")
	}
	fragment, err := e.HTML()
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString(`<html dir="rtl" lang="ar">` + "\n<head>\n")
	sb.WriteString(`<meta charset="utf-8">` + "\n")
	sb.WriteString("<title>" + html.EscapeString(title) + "</title>\n")
	sb.WriteString("<style>\n")
	sb.WriteString(pageCSS(e.Profile()))
	sb.WriteString("</style>\n</head>\n<body>\n")
	sb.WriteString(fragment)
	sb.WriteString("\n</body>\n</html>\n")

	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := os.WriteFile(outPath, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	return nil
}

func pageCSS(p paginate.Profile) string {
	var sb strings.Builder
	sb.WriteString("body { background: #e8e8e8; margin: 0; padding: 24px 0; font-family: 'Amiri', 'Traditional Arabic', 'Noto Naskh Arabic', serif; }\n")
	sb.WriteString(".page { width: " + px(p.PageWidth) + "; height: " + px(p.PageHeight) +
		"; margin: 0 auto; background: #fff; box-shadow: 0 1px 4px rgba(0,0,0,0.3); position: relative; box-sizing: border-box; padding: " +
		px(p.MarginTop) + " " + px(p.MarginRight) + " " + px(p.MarginBottom) + " " + px(p.MarginLeft) + "; }\n")
	sb.WriteString(".page-content { height: " + px(p.ContentHeight()) + "; overflow: hidden; font-size: " +
		px(p.FontSize) + "; line-height: " + px(p.LineHeight) + "; }\n")
	sb.WriteString(".page-footer { position: absolute; bottom: " + px(p.MarginBottom/2) +
		"; left: 0; right: 0; text-align: center; font-size: 12px; color: #666; }\n")
	sb.WriteString(".page-separator { height: 24px; }\n")
	sb.WriteString("@media print { body { background: #fff; padding: 0; } .page { box-shadow: none; margin: 0; } .page-separator { display: none; } }\n")
	return sb.String()
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

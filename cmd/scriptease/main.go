/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sinsweatpants/ara-scriptease/internal/catalog"
	"github.com/sinsweatpants/ara-scriptease/internal/config"
	"github.com/sinsweatpants/ara-scriptease/internal/crash"
	"github.com/sinsweatpants/ara-scriptease/internal/export"
	"github.com/sinsweatpants/ara-scriptease/internal/htmlrender"
	applog "github.com/sinsweatpants/ara-scriptease/internal/log"
	"github.com/sinsweatpants/ara-scriptease/internal/paginate"
	"github.com/sinsweatpants/ara-scriptease/internal/screenplay"
	"github.com/sinsweatpants/ara-scriptease/internal/stylepack"
	"github.com/sinsweatpants/ara-scriptease/internal/telemetry"
	"github.com/sinsweatpants/ara-scriptease/internal/textmetrics"
	"github.com/sinsweatpants/ara-scriptease/internal/version"
)

// crashInput carries the text being processed so a panic report can include
// an input snapshot. The struct is armed in place as soon as input is read;
// the pointer itself is fixed at startup because recover only fires when
// crash.Recover is the deferred function.
var crashInput = &crash.Input{}

func usage() {
	fmt.Println("Ara Scriptease - Arabic screenplay classifier and paginator")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  scriptease version|-v|--version                     Show version")
	fmt.Println("  scriptease classify [-rich] [-o out] <file|->       Classify to JSON (flat elements; -rich for bucketed result)")
	fmt.Println("  scriptease render [-style sheet] [-o out] <file|->  Render classified elements to HTML")
	fmt.Println("  scriptease paginate [-profile name] [-style sheet] [-o out] <file|->")
	fmt.Println("                                                      Paginate and emit the HTML page document")
	fmt.Println("  scriptease export [-profile name] [-style sheet] [-format html|pdf] [-guides] [-o out] <file|->")
	fmt.Println("                                                      Export paginated output to a file")
	fmt.Println("  scriptease stats <file|->                           Per-type element counts and speakers")
	fmt.Println("  scriptease catalog save <file|-> <title>            Store a classified screenplay")
	fmt.Println("  scriptease catalog list                             List stored screenplays")
	fmt.Println("  scriptease catalog show <title>                     Show one stored screenplay")
	fmt.Println("  scriptease catalog delete <title>                   Remove a stored screenplay")
	fmt.Println("  scriptease catalog search <query>                   Full-text search over stored elements")
	fmt.Println("  scriptease catalog reindex                          Re-run classification over stored texts")
	fmt.Println("  scriptease styles export <zip>                      Bundle the styles directory into a pack")
	fmt.Println("  scriptease styles install <zip>                     Install a style pack (existing files kept)")
	fmt.Println()
	fmt.Println("  <file|->: a UTF-8 text file path, or - for stdin")
	fmt.Println("  -style:   a stylesheet file path, or the name of a sheet in the styles directory")
}

func main() {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	defer crash.Recover(crashInput)

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) < 2 {
		usage()
		return
	}

	var err error
	switch args[1] {
	case "version", "--version", "-v":
		fmt.Println("Ara Scriptease - Arabic screenplay classifier and paginator")
		fmt.Println(version.String())
		return
	case "classify":
		err = runClassify(args[2:])
	case "render":
		err = runRender(args[2:])
	case "paginate":
		err = runPaginate(args[2:])
	case "export":
		err = runExport(args[2:])
	case "stats":
		err = runStats(args[2:])
	case "catalog":
		err = runCatalog(args[2:])
	case "styles":
		err = runStyles(args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		l.Error("command failed", slog.String("cmd", args[1]), slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	flushTelemetry()
}

// readSource loads the screenplay text from a file or stdin ("-") and arms
// the crash input snapshot.
func readSource(path string) (string, error) {
	if path == "" {
		usage()
		os.Exit(2)
	}
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	text := string(data)
	crashInput.Path = path
	crashInput.Text = text
	return text, nil
}

func writeOut(out string, data []byte) error {
	if out == "" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure out dir: %w", err)
		}
	}
	return os.WriteFile(out, data, 0o644)
}

func flushTelemetry() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	telemetry.Flush(ctx)
}

func runClassify(args []string) error {
	fs := flag.NewFlagSet("classify", flag.ExitOnError)
	rich := fs.Bool("rich", false, "emit the bucketed per-type result instead of the flat element list")
	out := fs.String("o", "", "output file (default stdout)")
	_ = fs.Parse(args)
	text, err := readSource(fs.Arg(0))
	if err != nil {
		return err
	}
	doc := screenplay.Classify(text)
	var payload any = doc.Elements
	if *rich {
		payload = doc.Result
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if err := writeOut(*out, data); err != nil {
		return err
	}
	telemetry.Event("classify", map[string]any{"elements": len(doc.Elements)})
	return nil
}

func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	style := fs.String("style", "", "stylesheet: file path or name in the styles directory")
	out := fs.String("o", "", "output file (default stdout)")
	_ = fs.Parse(args)
	text, err := readSource(fs.Arg(0))
	if err != nil {
		return err
	}
	ss, err := resolveStyles(*style)
	if err != nil {
		return err
	}
	doc := screenplay.Classify(text)
	markup, err := htmlrender.NewRenderer(ss).Render(doc)
	if err != nil {
		return err
	}
	if err := writeOut(*out, []byte(markup)); err != nil {
		return err
	}
	telemetry.Event("render", map[string]any{"elements": len(doc.Elements)})
	return nil
}

func runPaginate(args []string) error {
	fs := flag.NewFlagSet("paginate", flag.ExitOnError)
	profileName := fs.String("profile", "", "page profile: builtin name or profile file path")
	style := fs.String("style", "", "stylesheet: file path or name in the styles directory")
	out := fs.String("o", "", "output file (default stdout)")
	_ = fs.Parse(args)
	text, err := readSource(fs.Arg(0))
	if err != nil {
		return err
	}
	engine, _, err := paginateText(text, *profileName, *style)
	if err != nil {
		return err
	}
	markup, err := engine.HTML()
	if err != nil {
		return err
	}
	if err := writeOut(*out, []byte(markup)); err != nil {
		return err
	}
	telemetry.Event("paginate", map[string]any{"pages": len(engine.Pages())})
	return nil
}

func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	profileName := fs.String("profile", "", "page profile: builtin name or profile file path")
	style := fs.String("style", "", "stylesheet: file path or name in the styles directory")
	format := fs.String("format", "html", "output format: html or pdf")
	guides := fs.Bool("guides", false, "draw page geometry guides (pdf only)")
	out := fs.String("o", "", "output file (default derived from the input name)")
	_ = fs.Parse(args)
	path := fs.Arg(0)
	text, err := readSource(path)
	if err != nil {
		return err
	}
	engine, measurer, err := paginateText(text, *profileName, *style)
	if err != nil {
		return err
	}
	title := deriveTitle(path)
	outPath := *out
	if outPath == "" {
		outPath = deriveOut(path, *format)
	}
	switch *format {
	case "html":
		err = export.WriteHTML(engine, title, outPath)
	case "pdf":
		err = export.WriteLayoutPDF(engine, measurer, title, outPath, export.PDFOptions{IncludeGuides: *guides})
	default:
		return fmt.Errorf("unknown format %q (want html or pdf)", *format)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Exported %d page(s) to %s\n", len(engine.Pages()), outPath)
	telemetry.Event("export", map[string]any{"format": *format, "pages": len(engine.Pages())})
	return nil
}

func runStats(args []string) error {
	text, err := readSource(firstArg(args))
	if err != nil {
		return err
	}
	doc := screenplay.Classify(text)
	counts := map[screenplay.ElementType]int{}
	for _, el := range doc.Elements {
		counts[el.Type]++
	}
	fmt.Printf("Lines:      %d\n", doc.LineCount)
	fmt.Printf("Elements:   %d\n", len(doc.Elements))
	for _, kind := range []screenplay.ElementType{
		screenplay.ElementBasmala,
		screenplay.ElementSceneHeader,
		screenplay.ElementAction,
		screenplay.ElementDialogue,
		screenplay.ElementTransition,
	} {
		fmt.Printf("  %-13s %d\n", string(kind)+":", counts[kind])
	}
	if len(doc.Result.Characters) > 0 {
		fmt.Printf("Characters: %s\n", strings.Join(doc.Result.Characters, ", "))
	}
	return nil
}

func runCatalog(args []string) error {
	if len(args) < 1 {
		usage()
		os.Exit(2)
	}
	sub := args[0]
	rest := args[1:]

	// Validate arguments before touching the database
	switch sub {
	case "save":
		if len(rest) < 2 {
			fmt.Println("catalog save requires <file|-> and <title>")
			os.Exit(2)
		}
	case "show", "delete", "search":
		if len(rest) < 1 {
			fmt.Printf("catalog %s requires an argument\n", sub)
			os.Exit(2)
		}
	case "list", "reindex":
	default:
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	dbPath, err := config.CatalogPath(cfg)
	if err != nil {
		return err
	}
	c, err := catalog.Open(dbPath)
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch sub {
	case "save":
		text, err := readSource(rest[0])
		if err != nil {
			return err
		}
		title := strings.Join(rest[1:], " ")
		id, err := c.Save(ctx, title, text)
		if err != nil {
			return err
		}
		fmt.Printf("Saved %q (id %d) to %s\n", title, id, dbPath)
		telemetry.Event("catalog_save", map[string]any{"id": id})
	case "list":
		sums, err := c.List(ctx)
		if err != nil {
			return err
		}
		if len(sums) == 0 {
			fmt.Println("Catalog is empty.")
			return nil
		}
		for _, s := range sums {
			fmt.Printf("%4d  %s  (lines %d, elements %d, characters %d, updated %s)\n",
				s.ID, s.Title, s.LineCount, s.Elements, s.Characters, s.UpdatedAt.Format("2006-01-02 15:04"))
		}
	case "show":
		title := strings.Join(rest, " ")
		st, err := c.GetByTitle(ctx, title)
		if err != nil {
			return err
		}
		counts, err := c.KindCounts(ctx, st.ID)
		if err != nil {
			return err
		}
		chars, err := c.CharacterNames(ctx, st.ID)
		if err != nil {
			return err
		}
		fmt.Printf("%s (id %d)\n", st.Title, st.ID)
		fmt.Printf("Lines: %d, created %s, updated %s\n",
			st.LineCount, st.CreatedAt.Format("2006-01-02 15:04"), st.UpdatedAt.Format("2006-01-02 15:04"))
		for _, kind := range []string{"basmala", "scene-header", "action", "dialogue", "transition"} {
			if counts[kind] > 0 {
				fmt.Printf("  %-13s %d\n", kind+":", counts[kind])
			}
		}
		if len(chars) > 0 {
			fmt.Printf("Characters: %s\n", strings.Join(chars, ", "))
		}
	case "delete":
		title := strings.Join(rest, " ")
		st, err := c.GetByTitle(ctx, title)
		if err != nil {
			return err
		}
		if err := c.Delete(ctx, st.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted %q (id %d)\n", st.Title, st.ID)
	case "search":
		query := strings.Join(rest, " ")
		hits, err := c.Search(ctx, catalog.SearchQuery{Text: query})
		if err != nil {
			return err
		}
		if len(hits) == 0 {
			fmt.Println("No matches.")
			return nil
		}
		for _, h := range hits {
			fmt.Printf("%s #%d [%s] %s\n", h.Title, h.Seq, h.Kind, h.Snippet)
		}
	case "reindex":
		n, err := c.Reindex(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Reindexed %d screenplay(s).\n", n)
	}
	return nil
}

// paginateText classifies text and lays it out under the resolved profile.
// The measurer is returned alongside so exporters can re-measure blocks.
func paginateText(text, profileName, styleName string) (*paginate.Engine, paginate.Measurer, error) {
	cfg, err := config.Load()
	if err != nil {
		applog.WithComponent("cli").Warn("config load failed, using defaults", slog.Any("err", err))
		cfg = config.Defaults()
	}
	profile, err := resolveProfile(cfg, profileName)
	if err != nil {
		return nil, nil, err
	}
	ss, err := resolveStyles(styleName)
	if err != nil {
		return nil, nil, err
	}
	renderer := htmlrender.NewRenderer(ss)
	measurer := textmetrics.NewNodeMeasurer(profile, fontProvider(cfg))
	engine, err := paginate.New(profile, measurer, renderer.ParagraphBuilder())
	if err != nil {
		return nil, nil, err
	}
	renderer.PaginateDocument(engine, screenplay.Classify(text))
	return engine, measurer, nil
}

// fontProvider loads the configured font file for measurement. A missing or
// unreadable file logs a warning and falls back to the basic face.
func fontProvider(cfg config.AppConfig) textmetrics.Provider {
	if cfg.Layout.FontFile == "" {
		return nil
	}
	lib := textmetrics.NewFontLibrary()
	if err := lib.LoadTTF("", 400, false, cfg.Layout.FontFile); err != nil {
		applog.WithComponent("cli").Warn("font load failed, using basic metrics",
			slog.String("file", cfg.Layout.FontFile), slog.Any("err", err))
		return nil
	}
	return textmetrics.OTProvider{Lib: lib}
}

// resolveStyles loads element style overrides. An empty name keeps the
// builtin presets; a path loads that file; a bare name loads
// <styles-dir>/<name>.yaml.
func resolveStyles(name string) (*htmlrender.StyleSheet, error) {
	if name == "" {
		return nil, nil
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, ".") {
		return htmlrender.LoadStyleSheet(name)
	}
	dir, err := config.StylesDir()
	if err != nil {
		return nil, err
	}
	return htmlrender.LoadStyleSheet(filepath.Join(dir, name+".yaml"))
}

func runStyles(args []string) error {
	if len(args) < 2 {
		usage()
		os.Exit(2)
	}
	dir, err := config.StylesDir()
	if err != nil {
		return err
	}
	switch args[0] {
	case "export":
		if err := stylepack.Export(dir, args[1]); err != nil {
			return err
		}
		fmt.Printf("Exported style pack to %s\n", args[1])
	case "install":
		n, err := stylepack.Install(dir, args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Installed %d style file(s) into %s\n", n, dir)
	default:
		usage()
		os.Exit(2)
	}
	return nil
}

// resolveProfile picks the page profile: the explicit flag wins over the
// configured default, builtin names win over file paths, and the config's
// font size and line height overrides apply on top.
func resolveProfile(cfg config.AppConfig, name string) (paginate.Profile, error) {
	if name == "" {
		name = cfg.Layout.Profile
	}
	var profile paginate.Profile
	if p, ok := paginate.BuiltinProfile(name); ok {
		profile = p
	} else if strings.ContainsAny(name, `/\`) || strings.Contains(name, ".") {
		p, err := paginate.LoadProfile(name)
		if err != nil {
			return paginate.Profile{}, err
		}
		profile = p
	} else {
		return paginate.Profile{}, fmt.Errorf("unknown profile %q (builtin: %s)",
			name, strings.Join(paginate.BuiltinProfileNames(), ", "))
	}
	if cfg.Layout.FontSize > 0 {
		profile.FontSize = cfg.Layout.FontSize
	}
	if cfg.Layout.LineHeight > 0 {
		profile.LineHeight = cfg.Layout.LineHeight
	}
	return profile, nil
}

func deriveTitle(path string) string {
	if path == "-" {
		return "screenplay"
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func deriveOut(path, format string) string {
	return deriveTitle(path) + "." + format
}

func firstArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

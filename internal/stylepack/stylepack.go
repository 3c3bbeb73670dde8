/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */

// Package stylepack bundles element style sheets into shareable .zip packs.
// A pack mirrors the styles directory that holds the user's stylesheet files
// (YAML or JSON kind-to-CSS maps) and carries a small manifest at the archive
// root for quick human inspection.
package stylepack

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	applog "github.com/sinsweatpants/ara-scriptease/internal/log"
)

// ManifestName is the archive-root manifest entry every pack carries.
const ManifestName = "stylepack.manifest.txt"

// Export zips the contents of stylesDir into a single .zip file at
// destZipPath. The produced archive preserves the directory structure under a
// styles/ prefix and adds the manifest at the root. If the styles directory
// does not exist it is created, and the archive then holds only the manifest.
func Export(stylesDir string, destZipPath string) error {
	l := applog.WithOperation(applog.WithComponent("stylepack"), "export").With(slog.String("dir", stylesDir))
	if strings.TrimSpace(stylesDir) == "" {
		return errors.New("stylesDir is required")
	}
	if strings.TrimSpace(destZipPath) == "" {
		return errors.New("destZipPath is required")
	}
	if _, err := os.Stat(stylesDir); os.IsNotExist(err) {
		if err := os.MkdirAll(stylesDir, 0o755); err != nil {
			return fmt.Errorf("ensure styles dir: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(destZipPath), 0o755); err != nil {
		return fmt.Errorf("ensure zip dir: %w", err)
	}
	// On Windows, remove destination if present before create
	_ = os.Remove(destZipPath)

	zf, err := os.Create(destZipPath)
	if err != nil {
		return fmt.Errorf("create zip: %w", err)
	}
	defer func() { _ = zf.Close() }()
	zw := zip.NewWriter(zf)
	defer func() { _ = zw.Close() }()

	manifest := fmt.Sprintf("Ara Scriptease Style Pack\nCreated: %s\nSource: %s\n\nContents mirror the styles directory.\n",
		time.Now().Format(time.RFC3339), stylesDir)
	w, err := zw.Create(ManifestName)
	if err != nil {
		return fmt.Errorf("add manifest: %w", err)
	}
	if _, err := w.Write([]byte(manifest)); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	added := 0
	err = filepath.Walk(stylesDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(stylesDir, path)
		if err != nil {
			return err
		}
		// Forward slashes inside the zip keep packs portable across platforms.
		zipName := "styles/" + filepath.ToSlash(rel)
		fw, err := zw.Create(zipName)
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		if _, err := io.Copy(fw, f); err != nil {
			return err
		}
		added++
		return nil
	})
	if err != nil {
		l.Error("zip build failed", slog.Any("err", err))
		return fmt.Errorf("build zip: %w", err)
	}
	l.Info("style pack exported", slog.Int("files", added), slog.String("zip", destZipPath))
	return nil
}

// Install extracts the given .zip pack into stylesDir. Entries under a
// styles/ prefix lose the prefix; anything else is placed as-is under the
// directory. Existing files are never overwritten; they are skipped, as are
// entries whose path would escape stylesDir. Returns the count of files
// installed (skipped files are not counted).
func Install(stylesDir string, packZipPath string) (int, error) {
	l := applog.WithOperation(applog.WithComponent("stylepack"), "install").With(slog.String("dir", stylesDir))
	if strings.TrimSpace(stylesDir) == "" {
		return 0, errors.New("stylesDir is required")
	}
	if strings.TrimSpace(packZipPath) == "" {
		return 0, errors.New("packZipPath is required")
	}
	if err := os.MkdirAll(stylesDir, 0o755); err != nil {
		return 0, fmt.Errorf("ensure styles dir: %w", err)
	}
	absDir, err := filepath.Abs(stylesDir)
	if err != nil {
		return 0, fmt.Errorf("resolve styles dir: %w", err)
	}

	r, err := zip.OpenReader(packZipPath)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return 0, fmt.Errorf("open pack: %w", err)
	}
	defer func() { _ = r.Close() }()

	installed := 0
	for _, f := range r.File {
		name := strings.TrimPrefix(filepath.ToSlash(f.Name), "styles/")
		if name == ManifestName {
			continue
		}
		targetPath := filepath.Join(absDir, filepath.FromSlash(name))
		// Joining cleans the path, so entries with .. segments either land
		// inside the directory or stay detectable here.
		if rel, err := filepath.Rel(absDir, targetPath); err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			l.Warn("skip entry escaping styles dir", slog.String("entry", f.Name))
			continue
		}
		if _, err := os.Stat(targetPath); err == nil {
			l.Warn("skip existing file", slog.String("path", targetPath))
			continue
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(targetPath, 0o755); err != nil {
				return installed, err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
			return installed, err
		}
		rc, err := f.Open()
		if err != nil {
			return installed, err
		}
		out, err := os.OpenFile(targetPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			_ = rc.Close()
			return installed, err
		}
		if _, err := io.Copy(out, rc); err != nil {
			_ = out.Close()
			_ = rc.Close()
			return installed, err
		}
		_ = out.Close()
		_ = rc.Close()
		installed++
	}
	l.Info("style pack installed", slog.Int("files", installed))
	return installed, nil
}

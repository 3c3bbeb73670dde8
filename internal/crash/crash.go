/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns panics into crash reports instead of bare stack dumps.
package crash

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	applog "github.com/sinsweatpants/ara-scriptease/internal/log"
	"github.com/sinsweatpants/ara-scriptease/internal/telemetry"
	"github.com/sinsweatpants/ara-scriptease/internal/version"
)

// exitFn is used to allow testing of Recover without terminating the test process.
var exitFn = os.Exit

// Input describes the screenplay work in flight when a panic hits, so the
// report can point at the offending source and the raw text is not lost.
type Input struct {
	Path string // source file path; "-" for stdin
	Text string // raw text being processed
}

// Recover captures a panic, logs an error with stacktrace, writes an error
// report file, and snapshots the in-flight input text next to the report.
//
// Usage: defer crash.Recover(in)
//
// Recover must be the deferred function itself; wrapping it in a closure
// keeps recover from seeing the panic. The Input fields may be filled in
// after the defer is armed.
func Recover(in *Input) {
	if r := recover(); r != nil {
		l := applog.WithComponent("crash")
		stack := debug.Stack()
		l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

		reportPath, _ := writeReport(in, r, stack)
		if in != nil && strings.TrimSpace(in.Text) != "" {
			if path, err := writeInputSnapshot(in, reportPath); err != nil {
				l.Error("input snapshot failed", slog.Any("err", err))
			} else {
				l.Info("input snapshot written", slog.String("path", path))
			}
		}

		if _, err := fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath); err != nil {
			l.Error("failed to write crash message to stderr", slog.Any("err", err))
		}
		if _, err := fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH); err != nil {
			l.Error("failed to write version info to stderr", slog.Any("err", err))
		}
		// Exit with a non-zero code to indicate failure in CLI context.
		exitFn(2)
	}
}

// reportDir picks where to write the report: next to the input file when one
// was given, the system temp dir otherwise (stdin or no input).
func reportDir(in *Input) string {
	if in != nil && in.Path != "" && in.Path != "-" {
		dir := filepath.Dir(in.Path)
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			return dir
		}
	}
	return os.TempDir()
}

func writeReport(in *Input, panicVal any, stack []byte) (string, error) {
	dir := reportDir(in)
	stamp := time.Now().Format("20060102-150405")
	fname := fmt.Sprintf("crash-%s.log", stamp)
	path := filepath.Join(dir, fname)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return path, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			applog.WithComponent("crash").Error("failed to close crash report file", slog.Any("err", err), slog.String("path", path))
		}
	}()

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "Ara Scriptease Crash Report\n")
	_, _ = fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	_, _ = fmt.Fprintf(&buf, "Version: %s\n", version.String())
	_, _ = fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if in != nil {
		_, _ = fmt.Fprintf(&buf, "Input: %s\n", in.Path)
		_, _ = fmt.Fprintf(&buf, "InputLines: %d\n", 1+strings.Count(in.Text, "\n"))
	}
	_, _ = fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	_, _ = fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))

	// write to file
	if _, err := f.Write(buf.Bytes()); err != nil {
		return path, err
	}
	_ = f.Sync()

	// optionally upload anonymized crash report (opt-in via env)
	telemetry.UploadCrash(buf.Bytes())
	return path, nil
}

// writeInputSnapshot stores the raw input text beside the crash report so a
// reproduction case survives the process exit.
func writeInputSnapshot(in *Input, reportPath string) (string, error) {
	base := strings.TrimSuffix(reportPath, ".log")
	path := base + "-input.txt"
	if err := os.WriteFile(path, []byte(in.Text), 0o644); err != nil {
		return path, err
	}
	return path, nil
}

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package telemetry

import (
	"context"
	"testing"
	"time"
)

// An unreachable endpoint must never surface into the CLI: send failures are
// swallowed (logged only in debug) and Flush still returns promptly.
func TestClient_UnreachableEndpointIsSilent(t *testing.T) {
	cfg := Config{
		OptIn:        true,
		EventsURL:    "http://127.0.0.1:1/events",
		CrashURL:     "http://127.0.0.1:1/crash",
		Timeout:      50 * time.Millisecond,
		DebugLogging: true,
	}
	c := New(cfg)
	defer c.Close()

	c.Event("export", map[string]any{"format": "html", "pages": 2})
	c.Event("catalog_save", map[string]any{"elements": 12})

	start := time.Now()
	c.Flush(context.Background())
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("Flush took %v, want a bounded wait", elapsed)
	}

	c.UploadCrash([]byte("panic: renderer"))
	time.Sleep(50 * time.Millisecond)
}

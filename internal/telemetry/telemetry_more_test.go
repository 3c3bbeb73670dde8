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
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

// Opt-in is the gate: a client without it must stay silent no matter what the
// CLI reports, and even an opted-in client drops unnamed events.
func TestClient_NeverSendsWithoutConsent(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cases := []struct {
		name string
		cfg  Config
		fire func(c *Client)
	}{
		{
			name: "opted out drops operation events",
			cfg:  Config{OptIn: false, EventsURL: srv.URL + "/events", Timeout: time.Second},
			fire: func(c *Client) {
				c.Event("paginate", map[string]any{"pages": 3})
				c.Event("export", map[string]any{"format": "pdf"})
			},
		},
		{
			name: "opted out drops crash reports",
			cfg:  Config{OptIn: false, CrashURL: srv.URL + "/crash", Timeout: time.Second},
			fire: func(c *Client) { c.UploadCrash([]byte("panic: boom")) },
		},
		{
			name: "empty event name is ignored",
			cfg:  Config{OptIn: true, EventsURL: srv.URL + "/events", Timeout: time.Second},
			fire: func(c *Client) { c.Event("", map[string]any{"elements": 1}) },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := New(tc.cfg)
			defer c.Close()
			if !tc.cfg.OptIn && c.Enabled() {
				t.Fatalf("client enabled without opt-in")
			}
			tc.fire(c)
			c.Flush(context.Background())
			time.Sleep(50 * time.Millisecond)
			if n := atomic.LoadInt32(&hits); n != 0 {
				t.Fatalf("server got %d requests, want none", n)
			}
		})
	}
}

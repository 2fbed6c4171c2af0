/*
 * MIT License
 *
 * Copyright (c) 2026 Nguyen Thanh Phuong
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */
package commands

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/phuonguno98/unotop/internal/config"
	"github.com/phuonguno98/unotop/internal/view"
	"github.com/phuonguno98/unotop/pkg/metrics"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level     string
		wantDebug bool
		wantWarn  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"warn", false, true},
		{"error", false, false},
		{"bogus", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(tt.level, &buf, false)
			ctx := context.Background()
			if got := logger.Enabled(ctx, slog.LevelDebug); got != tt.wantDebug {
				t.Errorf("Debug enabled = %v, want %v", got, tt.wantDebug)
			}
			if got := logger.Enabled(ctx, slog.LevelWarn); got != tt.wantWarn {
				t.Errorf("Warn enabled = %v, want %v", got, tt.wantWarn)
			}
		})
	}
}

func TestNewLogger_RunID(t *testing.T) {
	var buf bytes.Buffer
	newLogger("info", &buf, true).Info("hello")

	out := buf.String()
	if !strings.Contains(out, `"run_id":"`) {
		t.Errorf("JSON log line missing run_id: %s", out)
	}
	if !strings.Contains(out, `"msg":"hello"`) {
		t.Errorf("JSON log line missing message: %s", out)
	}
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.HasPrefix(buf.String(), "unotop ") {
		t.Errorf("version output = %q", buf.String())
	}
}

func TestNewPipeline(t *testing.T) {
	cfg := config.Default()
	logger := newLogger("error", &bytes.Buffer{}, false)

	mgr, mon, err := newPipeline(cfg, logger)
	if err != nil {
		t.Fatalf("newPipeline() error = %v", err)
	}
	if mgr == nil || mon == nil {
		t.Fatal("newPipeline() returned nil components")
	}

	cfg.Delivery = "broadcast"
	if _, _, err := newPipeline(cfg, logger); err == nil {
		t.Error("newPipeline() expected error for invalid delivery policy")
	}
}

func TestApplySort(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    view.SortSpec
		wantErr bool
	}{
		{"Empty", "", view.SortSpec{}, false},
		{"Field only", "memory", view.SortSpec{Field: view.FieldMemory, Direction: view.Descending}, false},
		{"Field and direction", "pid:asc", view.SortSpec{Field: view.FieldPID, Direction: view.Ascending}, false},
		{"Unknown field", "disk", view.SortSpec{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mon, err := newPipeline(config.Default(), newLogger("error", &bytes.Buffer{}, false))
			if err != nil {
				t.Fatalf("newPipeline() error = %v", err)
			}

			err = applySort(mon, tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("applySort(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got := mon.SortSpec(); got != tt.want {
				t.Errorf("SortSpec() after applySort(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestWriteProcessCSV(t *testing.T) {
	var buf bytes.Buffer
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := []metrics.ProcessRecord{{PID: 7, Name: "sshd", CPUUsage: 0.5, Memory: 3}}

	if err := writeProcessCSV(&buf, ts, time.UTC, rows); err != nil {
		t.Fatalf("writeProcessCSV() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected header and one row, got %d lines", len(lines))
	}
	if lines[1] != "2026-01-02 03:04:05,7,sshd,0.50,3,0,0" {
		t.Errorf("Unexpected row: %q", lines[1])
	}
}

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
package render

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/phuonguno98/unotop/pkg/metrics"
)

// csvHeader is the header row of the process CSV output.
var csvHeader = []string{"Timestamp", "PID", "Name", "CPU Usage (%)", "Memory (MiB)", "Read (bytes)", "Written (bytes)"}

// ProcessCSVWriter writes process rows as CSV with buffering.
type ProcessCSVWriter struct {
	csvWriter     *csv.Writer
	bufWriter     *bufio.Writer
	location      *time.Location // Timezone location for timestamps
	headerWritten bool
	recordCount   int
}

// NewProcessCSVWriter creates a CSV writer on w. A nil location means Local.
func NewProcessCSVWriter(w io.Writer, loc *time.Location) *ProcessCSVWriter {
	if loc == nil {
		loc = time.Local
	}

	// Create buffered writer
	bufWriter := bufio.NewWriterSize(w, 8192) // 8KB buffer

	return &ProcessCSVWriter{
		csvWriter: csv.NewWriter(bufWriter),
		bufWriter: bufWriter,
		location:  loc,
	}
}

// WriteRows writes rows taken at ts, emitting the header before the first row.
func (e *ProcessCSVWriter) WriteRows(ts time.Time, rows []metrics.ProcessRecord) error {
	if !e.headerWritten {
		if err := e.csvWriter.Write(csvHeader); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		e.headerWritten = true
	}

	stamp := ts.In(e.location).Format("2006-01-02 15:04:05")
	for _, p := range rows {
		if err := e.csvWriter.Write(buildRow(stamp, p)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
		e.recordCount++
	}

	return nil
}

// buildRow builds a CSV row from a process record.
func buildRow(stamp string, p metrics.ProcessRecord) []string {
	return []string{
		stamp,
		strconv.FormatUint(uint64(p.PID), 10),
		p.Name,
		fmt.Sprintf("%.2f", p.CPUUsage),
		strconv.FormatUint(p.Memory, 10),
		strconv.FormatUint(p.ReadBytes, 10),
		strconv.FormatUint(p.WrittenBytes, 10),
	}
}

// Records returns the number of rows written so far.
func (e *ProcessCSVWriter) Records() int {
	return e.recordCount
}

// Flush flushes the buffered data to the underlying writer.
func (e *ProcessCSVWriter) Flush() error {
	e.csvWriter.Flush()
	if err := e.csvWriter.Error(); err != nil {
		return fmt.Errorf("CSV writer error: %w", err)
	}

	if err := e.bufWriter.Flush(); err != nil {
		return fmt.Errorf("buffer writer error: %w", err)
	}

	return nil
}

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
	"fmt"
	"log/slog"

	"github.com/phuonguno98/unotop/internal/collector"
	"github.com/phuonguno98/unotop/internal/config"
	"github.com/phuonguno98/unotop/internal/mailbox"
	"github.com/phuonguno98/unotop/internal/monitor"
	"github.com/phuonguno98/unotop/internal/provider"
	"github.com/phuonguno98/unotop/pkg/metrics"
)

// newPipeline wires provider, collectors, mailboxes and monitor for cfg.
func newPipeline(cfg *config.Config, logger *slog.Logger) (*collector.Manager, *monitor.Monitor, error) {
	policy, err := cfg.DeliveryPolicy()
	if err != nil {
		return nil, nil, err
	}

	sys, err := provider.NewSystem(cfg.ProcessCacheSize)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create system provider: %w", err)
	}

	processBox, err := mailbox.New[*metrics.ProcessSnapshot](policy)
	if err != nil {
		return nil, nil, err
	}
	performanceBox, err := mailbox.New[*metrics.PerformanceSnapshot](policy)
	if err != nil {
		return nil, nil, err
	}

	mgr := collector.NewManager(cfg, sys, processBox, performanceBox, logger)
	mon := monitor.New(processBox, performanceBox, logger)

	return mgr, mon, nil
}

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

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/phuonguno98/unotop/internal/mailbox"
)

// Config represents application configuration.
type Config struct {
	ProcessInterval     time.Duration // Pause between process table samples
	PerformanceInterval time.Duration // Pause between performance samples
	Delivery            string        // Snapshot delivery policy: latest or queue
	CPUHistory          int           // Usage samples kept per CPU core
	ProcessCacheSize    int           // Cached process handles

	// Filters
	IncludeDisks    []string // Mount paths or devices to monitor (empty = all)
	ExcludeDisks    []string // Mount paths or devices to exclude
	IncludeNetworks []string // Network interfaces to monitor (empty = all)
	ExcludeNetworks []string // Network interfaces to exclude

	// Logging
	LogLevel string // Log level: debug, info, warn, error
	LogFile  string // Log file path (empty = stdout)

	// Timezone
	Timezone string // Timezone location (e.g., "Asia/Ho_Chi_Minh", "Local")
}

// Default configuration values.
const (
	DefaultInterval         = 1 * time.Second
	DefaultDelivery         = string(mailbox.PolicyLatest)
	DefaultCPUHistory       = 60
	DefaultProcessCacheSize = 4096
	DefaultLogLevel         = "info"
	DefaultTimezone         = "Local"

	MinInterval = 100 * time.Millisecond
	MaxInterval = 1 * time.Hour
)

// Default returns a configuration populated with default values.
func Default() *Config {
	return &Config{
		ProcessInterval:     DefaultInterval,
		PerformanceInterval: DefaultInterval,
		Delivery:            DefaultDelivery,
		CPUHistory:          DefaultCPUHistory,
		ProcessCacheSize:    DefaultProcessCacheSize,
		LogLevel:            DefaultLogLevel,
		Timezone:            DefaultTimezone,
	}
}

// parseCommaSeparated parses a comma-separated string into a slice of trimmed strings.
func parseCommaSeparated(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// DeliveryPolicy returns the parsed delivery policy.
func (c *Config) DeliveryPolicy() (mailbox.Policy, error) {
	return mailbox.ParsePolicy(c.Delivery)
}

// Location returns the configured timezone, defaulting to Local.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validateInterval("process interval", c.ProcessInterval); err != nil {
		return err
	}

	if err := validateInterval("performance interval", c.PerformanceInterval); err != nil {
		return err
	}

	if _, err := c.DeliveryPolicy(); err != nil {
		return err
	}

	if c.CPUHistory < 1 {
		return errors.New("cpu history must be at least 1")
	}

	if c.ProcessCacheSize < 1 {
		return errors.New("process cache size must be at least 1")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	// Validate Timezone
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid timezone: %s (%w)", c.Timezone, err)
	}

	return nil
}

func validateInterval(name string, d time.Duration) error {
	if d < MinInterval {
		return fmt.Errorf("%s must be at least %v", name, MinInterval)
	}
	if d > MaxInterval {
		return fmt.Errorf("%s must not exceed %v", name, MaxInterval)
	}
	return nil
}

// String returns a human-readable representation of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("Config{ProcessInterval=%v, PerformanceInterval=%v, Delivery=%s, CPUHistory=%d, Timezone=%s}",
		c.ProcessInterval, c.PerformanceInterval, c.Delivery, c.CPUHistory, c.Timezone)
}

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
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding configuration keys.
// The key "process-interval" is read from UNOTOP_PROCESS_INTERVAL.
const EnvPrefix = "UNOTOP"

// Configuration keys shared by flags, environment and config files.
const (
	KeyProcessInterval     = "process-interval"
	KeyPerformanceInterval = "performance-interval"
	KeyDelivery            = "delivery"
	KeyCPUHistory          = "cpu-history"
	KeyProcessCacheSize    = "process-cache-size"
	KeyIncludeDisks        = "include-disks"
	KeyExcludeDisks        = "exclude-disks"
	KeyIncludeNetworks     = "include-networks"
	KeyExcludeNetworks     = "exclude-networks"
	KeyLogLevel            = "log-level"
	KeyLogFile             = "log-file"
	KeyTimezone            = "timezone"
)

// NewViper returns a viper instance with defaults and environment binding applied.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	d := Default()
	v.SetDefault(KeyProcessInterval, d.ProcessInterval)
	v.SetDefault(KeyPerformanceInterval, d.PerformanceInterval)
	v.SetDefault(KeyDelivery, d.Delivery)
	v.SetDefault(KeyCPUHistory, d.CPUHistory)
	v.SetDefault(KeyProcessCacheSize, d.ProcessCacheSize)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyTimezone, d.Timezone)

	return v
}

// Load builds and validates a Config from v.
// When configFile is set it is read first; flags and environment still take precedence.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		ProcessInterval:     v.GetDuration(KeyProcessInterval),
		PerformanceInterval: v.GetDuration(KeyPerformanceInterval),
		Delivery:            v.GetString(KeyDelivery),
		CPUHistory:          v.GetInt(KeyCPUHistory),
		ProcessCacheSize:    v.GetInt(KeyProcessCacheSize),
		IncludeDisks:        stringList(v, KeyIncludeDisks),
		ExcludeDisks:        stringList(v, KeyExcludeDisks),
		IncludeNetworks:     stringList(v, KeyIncludeNetworks),
		ExcludeNetworks:     stringList(v, KeyExcludeNetworks),
		LogLevel:            v.GetString(KeyLogLevel),
		LogFile:             v.GetString(KeyLogFile),
		Timezone:            v.GetString(KeyTimezone),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// stringList accepts either a comma-separated string (flags, env) or a list (config file).
func stringList(v *viper.Viper, key string) []string {
	switch val := v.Get(key).(type) {
	case nil:
		return nil
	case string:
		return parseCommaSeparated(val)
	default:
		return v.GetStringSlice(key)
	}
}

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
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/phuonguno98/unotop/internal/config"
	"github.com/phuonguno98/unotop/pkg/version"
)

var (
	// v holds flag, environment and config file values
	v *viper.Viper = config.NewViper()

	cfgFile string
)

const (
	osWindows = "windows"
	osLinux   = "linux"
	osDarwin  = "darwin"
)

// Log file rotation settings.
const (
	logMaxSizeMB  = 10
	logMaxBackups = 3
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "unotop",
	Short: "UnoTop - Terminal task manager",
	Long: `UnoTop is a lightweight, cross-platform task manager for the terminal
written in Go. It samples the process table and CPU, memory, swap, disk and
network counters at a fixed cadence and shows the latest sample, with sorting
and filtering of the process list.

Use 'unotop top' to open the interactive view.`,
	SilenceUsage: true,
	// No RunE field, so it prints help by default
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	d := config.Default()
	flags := rootCmd.PersistentFlags()

	flags.StringVar(&cfgFile, "config", "", "Config file (YAML, TOML or JSON)")

	// Sampling
	flags.Duration(config.KeyProcessInterval, d.ProcessInterval,
		"Pause between process samples (e.g., 500ms, 2s)")
	flags.Duration(config.KeyPerformanceInterval, d.PerformanceInterval,
		"Pause between CPU/memory/disk/network samples")
	flags.String(config.KeyDelivery, d.Delivery,
		"Snapshot delivery policy (latest, queue)")
	flags.Int(config.KeyCPUHistory, d.CPUHistory,
		"Usage samples kept per CPU core (1 = latest only)")
	flags.Int(config.KeyProcessCacheSize, d.ProcessCacheSize,
		"Number of cached process handles")

	// Filter flags
	flags.String(config.KeyIncludeDisks, "",
		"Comma-separated list of mount paths or disk devices to monitor (empty = all)")
	flags.String(config.KeyExcludeDisks, "",
		"Comma-separated list of mount paths or disk devices to exclude")
	flags.String(config.KeyIncludeNetworks, "",
		"Comma-separated list of network interfaces to monitor (empty = all)")
	flags.String(config.KeyExcludeNetworks, "",
		"Comma-separated list of network interfaces to exclude")

	// Logging
	flags.String(config.KeyLogLevel, d.LogLevel,
		"Log level (debug, info, warn, error)")
	flags.String(config.KeyLogFile, "",
		"Log file path (empty = stdout)")
	flags.String(config.KeyTimezone, d.Timezone,
		"Timezone for timestamps (e.g., 'Asia/Ho_Chi_Minh', 'Local')")

	cobra.CheckErr(v.BindPFlags(flags))
}

// loadConfig resolves the configuration from flags, UNOTOP_* variables and the config file.
func loadConfig() (*config.Config, error) {
	return config.Load(v, cfgFile)
}

// InitLogger initializes and returns a slog.Logger based on the provided settings.
// It is shared by all commands to ensure consistent logging format.
func InitLogger(levelStr, fileStr string) *slog.Logger {
	var w io.Writer = os.Stdout
	if fileStr != "" {
		w = &lumberjack.Logger{
			Filename:   fileStr,
			MaxSize:    logMaxSizeMB, // megabytes
			MaxBackups: logMaxBackups,
		}
	}
	return newLogger(levelStr, w, fileStr != "")
}

// newLogger builds a text logger, or a JSON logger when json is set, tagged with a run id.
func newLogger(levelStr string, w io.Writer, json bool) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With("run_id", uuid.New().String())
}

// logStartup logs build and platform information.
func logStartup(logger *slog.Logger, cfg *config.Config) {
	logger.Info("Starting UnoTop",
		"version", version.Info(),
		"os", runtime.GOOS,
		"arch", runtime.GOARCH,
	)
	logger.Info("Configuration loaded", "config", cfg.String())
	checkPlatformCapabilities(logger)
}

// checkPlatformCapabilities logs platform-specific capability warnings.
func checkPlatformCapabilities(logger *slog.Logger) {
	switch runtime.GOOS {
	case osWindows:
		logger.Warn("Running on Windows: disk media kind is reported as Unknown")
	case osDarwin:
		logger.Info("Running on macOS: disk media kind is reported as Unknown")
		logger.Info("Running on macOS: process I/O counters may require sudo")
	case osLinux:
		logger.Info("Running on Linux: All metrics available")
	default:
		logger.Warn("Running on unsupported platform, some metrics may not work", "os", runtime.GOOS)
	}
}

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
	"os"

	"github.com/spf13/cobra"

	"github.com/phuonguno98/unotop/internal/collector"
	"github.com/phuonguno98/unotop/internal/provider"
	"github.com/phuonguno98/unotop/internal/render"
)

var listDevicesCmd = &cobra.Command{
	Use:   "list-devices",
	Short: "List mounted disks and network interfaces",
	Long: `Take one performance sample and list the mounted disks and network
interfaces it sees, with CPU, memory and swap usage.
This helps to configure include/exclude filters accurately.

Examples:
  # List all available devices
  unotop list-devices

  # Use the output to configure filters
  unotop top --include-disks="/" --exclude-networks="lo"`,
	RunE: runListDevices,
}

func init() {
	rootCmd.AddCommand(listDevicesCmd)
}

func runListDevices(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel, os.Stderr, false)

	sys, err := provider.NewSystem(cfg.ProcessCacheSize)
	if err != nil {
		return fmt.Errorf("failed to create system provider: %w", err)
	}
	pc := collector.NewPerformanceCollector(sys, collector.PerformanceOptions{
		Interval:        cfg.PerformanceInterval,
		CPUHistory:      1,
		IncludeDisks:    cfg.IncludeDisks,
		ExcludeDisks:    cfg.ExcludeDisks,
		IncludeNetworks: cfg.IncludeNetworks,
		ExcludeNetworks: cfg.ExcludeNetworks,
	}, logger)
	snap := pc.Collect(cmd.Context())

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\n========================================")
	fmt.Fprintln(out, "   UnoTop - Available Devices")
	fmt.Fprintln(out, "========================================")
	fmt.Fprintln(out)
	fmt.Fprint(out, render.FormatCPUs(snap.CPUs))
	fmt.Fprint(out, render.FormatMemory(snap.Memory, snap.Swap))

	if len(snap.Disks) == 0 {
		fmt.Fprintln(out, "\nNo disk devices found.")
	} else {
		fmt.Fprint(out, render.FormatDisksTable(snap.Disks))
		fmt.Fprintln(out, "\nExample usage:")
		fmt.Fprintf(out, "  unotop top --include-disks=\"%s\"\n", snap.Disks[0].MountPath)
		if len(snap.Disks) > 1 {
			fmt.Fprintf(out, "  unotop top --exclude-disks=\"%s\"\n", snap.Disks[1].MountPath)
		}
	}

	if len(snap.Networks) == 0 {
		fmt.Fprintln(out, "\nNo network interfaces found.")
	} else {
		fmt.Fprint(out, render.FormatNetworksTable(snap.Networks))
		fmt.Fprintln(out, "\nExample usage:")
		fmt.Fprintf(out, "  unotop top --include-networks=\"%s\"\n", snap.Networks[0].Name)
		if len(snap.Networks) > 1 {
			fmt.Fprintf(out, "  unotop top --exclude-networks=\"%s\"\n", snap.Networks[1].Name)
		}
	}

	fmt.Fprintln(out, "\nNotes:")
	fmt.Fprintln(out, "  - Use comma to separate multiple devices: --exclude-disks=\"/boot,/snap\"")
	fmt.Fprintln(out, "  - Exclude filters take priority over include filters")
	fmt.Fprintln(out, "  - Empty include list means monitor all devices (except excluded)")
	fmt.Fprintln(out, "  - A '*' after the disk kind marks removable media")
	fmt.Fprintln(out)

	return nil
}

//go:build linux

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
package provider

import (
	"os"
	"path/filepath"
	"strings"
)

// sysBlockDir is the sysfs root for block devices.
var sysBlockDir = "/sys/block"

// mediaInfo reports the media kind and removable flag of a partition device
// using the parent block device attributes in sysfs.
func mediaInfo(device string) (kind string, removable bool) {
	base := blockDevice(device)
	if base == "" {
		return "Unknown", false
	}

	kind = "Unknown"
	if v, err := readAttr(filepath.Join(sysBlockDir, base, "queue", "rotational")); err == nil {
		switch v {
		case "0":
			kind = "SSD"
		case "1":
			kind = "HDD"
		}
	}

	if v, err := readAttr(filepath.Join(sysBlockDir, base, "removable")); err == nil {
		removable = v == "1"
	}

	return kind, removable
}

// blockDevice maps a partition device (/dev/sda1, /dev/nvme0n1p2) to its
// parent block device name (sda, nvme0n1).
func blockDevice(device string) string {
	name := strings.TrimPrefix(device, "/dev/")
	if name == "" || strings.Contains(name, "/") {
		return ""
	}

	// Whole-disk devices have their own entry
	if _, err := os.Stat(filepath.Join(sysBlockDir, name)); err == nil {
		return name
	}

	// Partitions are listed as /sys/block/<disk>/<partition>
	entries, err := os.ReadDir(sysBlockDir)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if _, err := os.Stat(filepath.Join(sysBlockDir, e.Name(), name)); err == nil {
			return e.Name()
		}
	}
	return ""
}

func readAttr(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

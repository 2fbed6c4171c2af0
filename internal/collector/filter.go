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
package collector

// normalizeDeviceName strips /dev/ prefix from device names for consistent comparison.
// This allows users to specify devices as shown in list-devices (/dev/sdd)
// or as bare names (sdd).
func normalizeDeviceName(name string) string {
	if len(name) >= 5 && name[:5] == "/dev/" {
		return name[5:]
	}
	return name
}

// deviceFilter applies include/exclude lists to disks or interfaces.
type deviceFilter struct {
	include []string // Names to monitor (empty = all)
	exclude []string // Names to skip
}

func newDeviceFilter(include, exclude []string) deviceFilter {
	return deviceFilter{include: include, exclude: exclude}
}

// shouldMonitor reports whether any of the given names passes the filter.
// Exclusion takes priority over inclusion.
func (f deviceFilter) shouldMonitor(names ...string) bool {
	for _, excluded := range f.exclude {
		for _, name := range names {
			if matchName(excluded, name) {
				return false
			}
		}
	}

	// If include list is empty, monitor all (except excluded)
	if len(f.include) == 0 {
		return true
	}

	for _, included := range f.include {
		for _, name := range names {
			if matchName(included, name) {
				return true
			}
		}
	}

	return false
}

func matchName(pattern, name string) bool {
	if name == "" {
		return false
	}
	return pattern == name || normalizeDeviceName(pattern) == normalizeDeviceName(name)
}

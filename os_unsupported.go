// SPDX-License-Identifier: Unlicense OR MIT

//go:build !windows && !linux

package casement

func newOSWindow(win *Window, cnf *config) (driver, error) {
	return nil, ErrUnsupported
}

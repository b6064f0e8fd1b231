//go:build linux

package main

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// rawTerminal turns off line buffering and local echo on f so every key
// press reaches the simulated UART at once. Signals stay enabled.
// Non-terminals are left alone.
func rawTerminal(f *os.File) (restore func(), err error) {
	fd := int(f.Fd())
	old, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return func() {}, nil
	}

	raw := *old
	raw.Lflag &^= unix.ICANON | unix.ECHO
	raw.Iflag &^= unix.ICRNL
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, unix.TCSETS, &raw); err != nil {
		return nil, fmt.Errorf("failed to set terminal mode: %w", err)
	}

	return func() {
		unix.IoctlSetTermios(fd, unix.TCSETS, old)
	}, nil
}

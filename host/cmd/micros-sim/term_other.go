//go:build !linux

package main

import "os"

// rawTerminal is a no-op where termios handling is not wired up; input
// then arrives a line at a time.
func rawTerminal(f *os.File) (restore func(), err error) {
	return func() {}, nil
}

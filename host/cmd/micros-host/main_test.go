package main

import (
	"flag"
	"strconv"
	"testing"

	"micros/core"
)

func TestBaudDefaultMatchesFirmware(t *testing.T) {
	f := flag.Lookup("baud")
	if f == nil {
		t.Fatal("baud flag not registered")
	}
	if f.DefValue != strconv.Itoa(core.SerialBaud) {
		t.Errorf("Expected default baud %d, got %s", core.SerialBaud, f.DefValue)
	}
}

package serial

import (
	"io"

	"micros/core"
)

// Port represents a serial port interface
// Implemented by NativePort (github.com/tarm/serial)
type Port interface {
	io.ReadWriteCloser

	// Flush flushes any buffered data
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate (the firmware runs its USART at 57600)
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns the configuration matching the firmware
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        core.SerialBaud,
		ReadTimeout: 1000, // one reply is 30 bytes, well under a second
	}
}

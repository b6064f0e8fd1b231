package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"

	"micros/core"
	"micros/host/monitor"
	"micros/host/serial"
)

var (
	device  = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud    = flag.Int("baud", core.SerialBaud, "Baud rate")
	timeout = flag.Duration("timeout", time.Second, "Reply timeout")
)

func main() {
	flag.Parse()

	fmt.Println("micros host - elapsed time probe")
	fmt.Println("================================")
	fmt.Println()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud
	cfg.ReadTimeout = int(timeout.Milliseconds())

	fmt.Printf("Opening %s at %d baud...\n", cfg.Device, cfg.Baud)
	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	// The Uno resets when the port opens; give the bootloader time to hand over
	time.Sleep(2 * time.Second)
	if err := port.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to flush port: %v\n", err)
		os.Exit(1)
	}

	m := monitor.New(port)

	fmt.Println("Enter commands (type 'help' for available commands, 'quit' to exit):")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		args, err := shlex.Split(scanner.Text())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "quit", "exit", "q":
			fmt.Println("Goodbye!")
			return

		case "help", "?":
			printHelp()

		case "send":
			data := []byte(strings.Join(args[1:], " "))
			if len(data) == 0 {
				fmt.Println("Usage: send <text>")
				continue
			}
			if err := sendAll(m, data); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}

		case "byte":
			if len(args) != 2 {
				fmt.Println("Usage: byte <value>")
				continue
			}
			v, err := strconv.ParseUint(args[1], 0, 8)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: invalid byte %q: %v\n", args[1], err)
				continue
			}
			if err := sendAll(m, []byte{byte(v)}); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}

		case "burst":
			if err := sendBurst(m, args[1:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}

		case "reset":
			if err := port.Flush(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			m.Reset()

		default:
			fmt.Printf("Unknown command: %s (type 'help' for available commands)\n", args[0])
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
}

func sendAll(m *monitor.Monitor, data []byte) error {
	for _, b := range data {
		s, err := m.Send(b)
		if err != nil {
			return err
		}
		fmt.Println(s)
	}
	return nil
}

// sendBurst sends n copies of a byte and prints the spread of the deltas
func sendBurst(m *monitor.Monitor, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("usage: burst <count> [char]")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return fmt.Errorf("invalid count %q", args[0])
	}
	c := byte('.')
	if len(args) == 2 && len(args[1]) > 0 {
		c = args[1][0]
	}

	m.Reset()
	samples, err := m.SendAll([]byte(strings.Repeat(string(c), n)))
	if err != nil {
		return err
	}

	var lo, hi, sum uint64
	count := 0
	for _, s := range samples {
		if !s.HasDelta {
			continue
		}
		d := uint64(s.Delta)
		if count == 0 || d < lo {
			lo = d
		}
		if d > hi {
			hi = d
		}
		sum += d
		count++
	}
	if count == 0 {
		fmt.Printf("1 reply at %d us\n", samples[0].Micros)
		return nil
	}
	fmt.Printf("%d replies, round trip min=%d us avg=%d us max=%d us\n",
		len(samples), lo, sum/uint64(count), hi)
	return nil
}

func printHelp() {
	fmt.Println("\nAvailable commands:")
	fmt.Println("  help              - Show this help message")
	fmt.Println("  send <text>       - Send text one byte at a time, print each reply")
	fmt.Println("  byte <value>      - Send one raw byte (decimal, 0x.., 0o..)")
	fmt.Println("  burst <n> [char]  - Send n bytes back to back, print round-trip stats")
	fmt.Println("  reset             - Drop pending input and forget the last reading")
	fmt.Println("  quit/exit/q       - Exit the program")
	fmt.Println()
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"micros/core"
	"micros/host/sim"
)

var (
	preset     = flag.String("preset", "1ms", "Timer interval ("+strings.Join(presetNames(), ", ")+")")
	resolution = flag.Duration("resolution", time.Millisecond, "How often the simulated timer catches up with wall time")
	debug      = flag.Bool("debug", false, "Print firmware debug output to stderr")
)

func main() {
	flag.Parse()

	cfg, ok := core.Presets[*preset]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown preset %q (want one of %s)\n", *preset, strings.Join(presetNames(), ", "))
		os.Exit(2)
	}

	if *debug {
		core.SetDebugWriter(func(s string) { fmt.Fprintln(os.Stderr, s) })
		core.SetDebugEnabled(true)
	}

	restore, err := rawTerminal(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer restore()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "micros simulator: %d us per match, press keys to probe, Ctrl-C to quit\r\n",
		cfg.Increment())

	board := sim.NewBoard(os.Stdin, os.Stdout)
	fw := core.Setup(board, cfg)
	fw.Echo.Idle = func() { time.Sleep(50 * time.Microsecond) }

	go board.Timer0.Run(ctx, *resolution)

	done := make(chan error, 1)
	go func() { done <- fw.Echo.Serve() }()

	select {
	case <-ctx.Done():
	case err := <-done:
		if !errors.Is(err, io.EOF) {
			restore()
			fmt.Fprintf(os.Stderr, "Error: serial: %v\n", err)
			os.Exit(1)
		}
	}
	fmt.Fprintf(os.Stderr, "stopped after %d compare matches, %d us\r\n",
		board.Timer0.Matches(), fw.Clock.Micros())
}

func presetNames() []string {
	names := make([]string, 0, len(core.Presets))
	for name := range core.Presets {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return core.Presets[names[i]].Increment() < core.Presets[names[j]].Increment()
	})
	return names
}

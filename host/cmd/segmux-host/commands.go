package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"segmux/segment"
)

// displayLink is the part of link.Link the prompt uses
type displayLink interface {
	SetNumber(n int) error
	SetSegments(b segment.Buffer) error
	Clear() error
	Countdown(ctx context.Context, from int, step time.Duration) error
}

var errUsage = errors.New("bad arguments")

// execute runs one prompt line and reports whether the user asked to quit
func execute(ctx context.Context, l displayLink, line string, out io.Writer) (bool, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false, nil
	}

	switch parts[0] {
	case "quit", "exit", "q":
		return true, nil

	case "help", "?":
		printHelp(out)
		return false, nil

	case "set":
		if len(parts) != 2 {
			return false, fmt.Errorf("%w: set N", errUsage)
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			return false, fmt.Errorf("%w: %v", errUsage, err)
		}
		return false, l.SetNumber(n)

	case "raw":
		if len(parts) != 1+segment.Digits {
			return false, fmt.Errorf("%w: raw a b c d", errUsage)
		}
		var b segment.Buffer
		for i, s := range parts[1:] {
			v, err := strconv.ParseUint(s, 0, 8)
			if err != nil {
				return false, fmt.Errorf("%w: %v", errUsage, err)
			}
			b[i] = segment.Pattern(v)
		}
		return false, l.SetSegments(b)

	case "clear":
		return false, l.Clear()

	case "count":
		if len(parts) != 2 {
			return false, fmt.Errorf("%w: count N", errUsage)
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			return false, fmt.Errorf("%w: %v", errUsage, err)
		}
		return false, l.Countdown(ctx, n, time.Second)

	default:
		return false, fmt.Errorf("unknown command %q (type 'help' for available commands)", parts[0])
	}
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "\nAvailable commands:")
	fmt.Fprintln(out, "  set N          - Show N (0-9999)")
	fmt.Fprintln(out, "  raw a b c d    - Show raw segment patterns, e.g. raw 0x30 0x6d 0 0")
	fmt.Fprintln(out, "  clear          - Blank the display")
	fmt.Fprintln(out, "  count N        - Count down from N, one step per second")
	fmt.Fprintln(out, "  help           - Show this help message")
	fmt.Fprintln(out, "  quit/exit/q    - Exit the program")
	fmt.Fprintln(out)
}

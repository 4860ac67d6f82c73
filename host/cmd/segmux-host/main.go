package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"segmux/config"
	"segmux/core"
	"segmux/display"
	"segmux/host/link"
	"segmux/host/rpigpio"
	"segmux/host/serial"
	"segmux/host/ticker"
)

var (
	configPath = flag.String("config", "", "JSON config file (defaults apply when empty)")
	device     = flag.String("device", "", "Serial device path, overrides the config")
	baud       = flag.Int("baud", 0, "Baud rate (ignored for USB CDC), overrides the config")
	logFile    = flag.String("log", "", "Rotated log file, overrides the config")
	rpi        = flag.Bool("rpi", false, "Drive a display wired to this Raspberry Pi instead of the serial link")
	count      = flag.Int("count", 0, "Count down from N once per second, then exit")
	verbose    = flag.Bool("verbose", false, "Log every command and the timing ring")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	logger := setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *rpi {
		err = runLocal(ctx, cfg, logger)
	} else {
		err = runSerial(ctx, cfg, logger)
	}
	if err != nil {
		logger.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if *device != "" {
		cfg.Device = *device
	}
	if *baud != 0 {
		cfg.Baud = *baud
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
	}
	return cfg, cfg.Validate()
}

// setupLogging sends the host log and the core debug sink to stderr and,
// when configured, to a size-rotated file
func setupLogging(cfg *config.Config) *log.Logger {
	var out io.Writer = os.Stderr
	if cfg.LogFile != "" {
		out = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogMaxSizeMB,
			MaxBackups: 3,
		})
	}
	logger := log.New(out, "segmux ", log.LstdFlags)

	core.SetDebugWriter(func(s string) { logger.Print(s) })
	core.SetDebugEnabled(*verbose)
	core.SetTimingEnabled(*verbose)
	return logger
}

// runLocal multiplexes the display from this process
func runLocal(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	gpio, err := rpigpio.Open()
	if err != nil {
		return err
	}
	defer gpio.Close()

	d, err := display.NewWithDrivers(gpio, ticker.New(nil), cfg.Pins(), cfg.RefreshPeriodMs)
	if err != nil {
		return err
	}
	defer func() {
		d.Close()
		if n := d.Controller().WriteErrors(); n > 0 {
			logger.Printf("%d pin writes failed", n)
		}
		if core.IsDebugEnabled() {
			core.DumpTimingRing()
		}
	}()
	logger.Printf("Driving display on BCM pins %v / %v every %dms", cfg.Segments, cfg.Digits, cfg.RefreshPeriodMs)

	from := *count
	if from == 0 {
		from = 10
	}
	for n := from; n > 0; n-- {
		d.SetNumber(n)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Second):
		}
	}
	return nil
}

// runSerial sends commands to the firmware, either a countdown or
// whatever is typed at the prompt
func runSerial(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	var opts []link.Option
	if *verbose {
		opts = append(opts, link.WithLogger(logger))
	}

	logger.Printf("Connecting to %s...", cfg.Device)
	l, err := link.Open(&serial.Config{
		Device:      cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: time.Duration(cfg.ReadTimeoutMs) * time.Millisecond,
	}, opts...)
	if err != nil {
		return err
	}
	defer l.Close()

	if *count > 0 {
		return l.Countdown(ctx, *count, time.Second)
	}

	fmt.Println("Enter commands (type 'help' for available commands, 'quit' to exit):")
	return repl(ctx, l, os.Stdin, os.Stdout)
}

func repl(ctx context.Context, l displayLink, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		quit, err := execute(ctx, l, scanner.Text(), out)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
	return scanner.Err()
}

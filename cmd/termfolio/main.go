// Copyright © 2025 Termfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/termfolio/main.go
// Summary: Terminal portfolio entry point.
// Usage: Run `termfolio` inside a terminal. Keys: 1-9 open a page, Esc goes
// back, P pauses the background, Q quits.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/termfolio/termfolio/config"
	"github.com/termfolio/termfolio/internal/app"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("termfolio", flag.ContinueOnError)
	logPath := fs.String("log", "", "Append logs to this file (default: discard)")
	tint := fs.String("tint", "", "Override the render tint, e.g. #a855f7")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("stdout is not a terminal")
	}

	// The terminal is the display; logs must not go to it.
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	if *tint != "" {
		cfg := config.Clone(config.System())
		cfg.RegisterDefaults("render", config.Section{})
		cfg.Section("render")["tint"] = *tint
		config.Set(cfg)
	}

	a, err := app.New()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.Run(ctx)
}

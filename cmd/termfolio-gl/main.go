// Copyright © 2025 Termfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/termfolio-gl/main.go
// Summary: Windowed entry point rendering the background in an OS window.
// Usage: Click zooms toward the pointer, Esc zooms back, P pauses, Q quits.

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/termfolio/termfolio/config"
	"github.com/termfolio/termfolio/internal/winhost"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("termfolio-gl", flag.ContinueOnError)
	tint := fs.String("tint", "", "Override the render tint, e.g. #a855f7")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	pcfg := config.System().RenderConfig()
	if *tint != "" {
		pcfg.Tint = *tint
	}
	// The windowed host has a real pointer; mouse reaction earns its keep.
	pcfg.MouseReact = true

	host, err := winhost.New(pcfg)
	if err != nil {
		return err
	}
	return host.Run()
}

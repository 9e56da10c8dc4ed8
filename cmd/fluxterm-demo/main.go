// Copyright 2026 The Fluxterm Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command fluxterm-demo exercises the input processing pipeline
// against a live terminal or a recorded byte fixture.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fluxterm/fluxterm/config"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "fluxterm-demo",
		Short: "Exercise the fluxterm input pipeline against a terminal or a fixture",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "fluxterm.toml", "Path to a TOML configuration file")

	rootCmd.AddCommand(
		runCmd(),
		bindingsCmd(),
		replayCmd(),
		tablesCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func requireTTY() error {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return fmt.Errorf("stdin is not a terminal")
	}
	return nil
}

func withRawTerminal(fd int, fn func() error) error {
	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	defer term.Restore(fd, state)
	return fn()
}

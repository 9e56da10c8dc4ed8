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

package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/creack/pty"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/fluxterm/fluxterm"
	"github.com/fluxterm/fluxterm/dispatch"
	"github.com/fluxterm/fluxterm/pipeline"
)

func replayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <fixture>",
		Short: "Drive the pipeline from a recorded byte fixture through a pseudo-terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fixture, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading fixture: %w", err)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			logger := newLogger()
			sessionID := uuid.New()

			d := dispatch.New(logger)
			d.RegisterGlobalKey(dispatch.Keypress, func(ev *fluxterm.KeyEvent) {
				logger.Info("replay keypress", "session", sessionID.String(), "name", ev.Key.Name)
			})

			core := pipeline.New(pipeline.Options{
				FramerTimeout:   cfg.FramerTimeout(),
				CoalesceTimeout: cfg.CoalesceTimeout(),
				Kitty:           cfg.Input.Kitty,
				Dispatcher:      d,
				Logger:          logger,
			})
			defer core.Destroy()

			ptyFile, ttyFile, err := pty.Open()
			if err != nil {
				return fmt.Errorf("opening pty: %w", err)
			}
			defer ptyFile.Close()
			defer ttyFile.Close()

			echoCmd := exec.Command("cat")
			echoCmd.Stdin = ttyFile
			echoCmd.Stdout = ttyFile
			if err := echoCmd.Start(); err != nil {
				return fmt.Errorf("starting replay echo process: %w", err)
			}

			if _, err := ptyFile.Write(fixture); err != nil {
				return fmt.Errorf("writing fixture to pty: %w", err)
			}

			buf := make([]byte, 4096)
			n, err := ptyFile.Read(buf)
			if err != nil && err != io.EOF {
				return fmt.Errorf("reading pty echo: %w", err)
			}
			core.Write(buf[:n])
			core.Flush()

			_ = echoCmd.Process.Kill()
			return nil
		},
	}
}

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

	"github.com/spf13/cobra"

	"github.com/fluxterm/fluxterm"
	"github.com/fluxterm/fluxterm/dispatch"
	"github.com/fluxterm/fluxterm/pipeline"
)

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Wire the pipeline to stdin and log every emitted event",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireTTY(); err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			logger := newLogger()
			d := dispatch.New(logger)
			quit := false
			d.RegisterGlobalKey(dispatch.Keypress, func(ev *fluxterm.KeyEvent) {
				logger.Info("keypress", "name", ev.Key.Name, "ctrl", ev.Key.Ctrl, "meta", ev.Key.Meta)
				if ev.Key.Ctrl && ev.Key.Name == "d" {
					quit = true
				}
			})
			d.RegisterGlobalKey(dispatch.KeyRepeat, func(ev *fluxterm.KeyEvent) {
				logger.Info("keyrepeat", "name", ev.Key.Name)
			})
			d.RegisterGlobalKey(dispatch.KeyRelease, func(ev *fluxterm.KeyEvent) {
				logger.Info("keyrelease", "name", ev.Key.Name)
			})
			d.RegisterGlobalPaste(func(ev *fluxterm.PasteEvent) {
				logger.Info("paste", "len", len(ev.Text))
			})

			core := pipeline.New(pipeline.Options{
				FramerTimeout:   cfg.FramerTimeout(),
				CoalesceTimeout: cfg.CoalesceTimeout(),
				Kitty:           cfg.Input.Kitty,
				Dispatcher:      d,
				Logger:          logger,
				OnMouse: func(ev fluxterm.MouseEvent) {
					logger.Info("mouse", "type", ev.Type.String(), "x", ev.X, "y", ev.Y)
				},
			})
			defer core.Destroy()

			fd := int(os.Stdin.Fd())
			return withRawTerminal(fd, func() error {
				buf := make([]byte, 1024)
				for {
					n, err := os.Stdin.Read(buf)
					if n > 0 {
						core.Write(buf[:n])
						if quit {
							return nil
						}
					}
					if err != nil {
						if err == io.EOF {
							return nil
						}
						return fmt.Errorf("reading stdin: %w", err)
					}
				}
			})
		},
	}
}

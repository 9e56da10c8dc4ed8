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
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fluxterm/fluxterm/table"
)

func tablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables <markdown-file>",
		Short: "Detect and render every Markdown table in a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			lines := strings.Split(string(data), "\n")
			spans := table.FindTables(lines)
			if len(spans) == 0 {
				fmt.Println("no tables found")
				return nil
			}

			for i, span := range spans {
				tbl := table.Parse(lines[span[0]:span[1]])
				if i > 0 {
					fmt.Println()
				}
				fmt.Println(table.Render(tbl, cfg.TableStyle(), cfg.Table.CellPadding))
			}
			return nil
		},
	}
}

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
	"sort"

	"github.com/spf13/cobra"

	"github.com/fluxterm/fluxterm"
	"github.com/fluxterm/fluxterm/keybind"
)

func bindingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bindings",
		Short: "Print the built keybinding map for the loaded config",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			custom, err := cfg.KeyBindings()
			if err != nil {
				return fmt.Errorf("parsing configured bindings: %w", err)
			}

			merged := keybind.Merge(defaultBindings(), custom)
			m := keybind.BuildMap(merged, defaultAliases())

			keys := make([]string, 0, len(m))
			for k := range m {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			for _, k := range keys {
				b := m[k]
				fmt.Printf("%-40s %s\n", k, b.Action)
			}
			return nil
		},
	}
}

func defaultBindings() []fluxterm.KeyBinding {
	return []fluxterm.KeyBinding{
		{Name: "tab", Action: "focus-next"},
		{Name: "tab", Shift: true, Action: "focus-prev"},
		{Name: "escape", Action: "cancel"},
		{Name: "q", Ctrl: true, Action: "quit"},
	}
}

func defaultAliases() []keybind.Alias {
	return []keybind.Alias{{From: "enter", To: "return"}}
}

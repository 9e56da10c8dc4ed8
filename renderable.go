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

package fluxterm

// Renderable is the external collaborator the focus walker traverses.
// Rendering, layout, and styling live entirely on the host side;
// fluxterm only ever calls these six methods.
type Renderable interface {
	Parent() Renderable
	Children() []Renderable
	Focusable() bool
	Visible() bool
	Focus()
	Blur()
}

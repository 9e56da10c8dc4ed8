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

// Package fluxterm provides the terminal input processing and focus
// dispatch core of an interactive terminal UI library. It turns a raw
// byte stream arriving from a terminal device into a well-typed
// sequence of semantic input events (key presses, key releases, paste
// payloads, mouse actions) and routes those events through a two-tier
// listener pipeline to a tree of focusable visual elements.
//
// Rendering, layout, text styling, and stdin acquisition are explicitly
// out of scope; this package treats the renderable tree as an opaque
// collaborator and the byte stream as something the host already owns.
package fluxterm

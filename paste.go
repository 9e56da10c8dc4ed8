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

import "regexp"

// ansiSequence strips CSI, OSC, and single-char ESC sequences from a
// bracketed-paste payload before it is handed to listeners. The
// dispatcher's processPaste contract requires the buffer be free of
// ANSI noise a careless terminal (or a malicious paste) might smuggle
// in between the 200~/201~ markers.
var ansiSequence = regexp.MustCompile("\x1b(?:\\[[0-9;?]*[\x40-\x7e]|\\][^\x07\x1b]*(?:\x07|\x1b\\\\)|[\x20-\x2f]*[\x30-\x7e])")

// PasteEvent wraps an already-accumulated paste buffer for delivery
// through the dispatcher.
type PasteEvent struct {
	mutableEvent
	Text string
}

// NewPasteEvent strips ANSI escape sequences from text and wraps the
// result in a PasteEvent with both flags clear.
func NewPasteEvent(text string) *PasteEvent {
	return &PasteEvent{Text: ansiSequence.ReplaceAllString(text, "")}
}

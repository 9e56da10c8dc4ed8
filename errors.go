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

import "errors"

var (
	// ErrUnknownBinding indicates an option parser was asked to build a
	// KeyBinding from an unrecognised modifier or an empty key name. This is a
	// programmer error: it always surfaces as an explicit error rather
	// than being silently dropped.
	ErrUnknownBinding = errors.New("fluxterm: unknown key-binding value")

	// ErrDestroyed indicates an operation was attempted on a component
	// after destroy() had already torn down its timers and buffers.
	ErrDestroyed = errors.New("fluxterm: component already destroyed")
)

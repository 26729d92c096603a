// Copyright 2025 Nguyen Nhat Nguyen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package workflow

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownStatus is returned when a process reports a status outside
	// the known set.
	ErrUnknownStatus = errors.New("unknown process status")

	// ErrInvalidVersion is returned when a process reports a version below 1.
	ErrInvalidVersion = errors.New("process version must be at least 1")

	// ErrMissingName is returned when a process has no name.
	ErrMissingName = errors.New("process name is required")
)

// DuplicateProcessError is returned when two records share both a name and
// a version, which leaves the step's state at that version ambiguous.
type DuplicateProcessError struct {
	Name    string
	Version int
}

func (e *DuplicateProcessError) Error() string {
	return fmt.Sprintf("duplicate process %q at version %d", e.Name, e.Version)
}

// InvalidProcessError locates a rejected record within its document.
type InvalidProcessError struct {
	Index int
	Name  string
	Cause error
}

func (e *InvalidProcessError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("process #%d: %v", e.Index, e.Cause)
	}
	return fmt.Sprintf("process #%d (%s): %v", e.Index, e.Name, e.Cause)
}

func (e *InvalidProcessError) Unwrap() error {
	return e.Cause
}

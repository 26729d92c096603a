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
	"fmt"
	"strings"
)

// Status is the state a process reports at one version.
type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusCompleted  Status = "completed"
	StatusSkipped    Status = "skipped"
	StatusError      Status = "error"
	StatusProcessing Status = "processing"
	StatusRetrying   Status = "retrying"
)

var knownStatuses = map[Status]struct{}{
	StatusWaiting:    {},
	StatusCompleted:  {},
	StatusSkipped:    {},
	StatusError:      {},
	StatusProcessing: {},
	StatusRetrying:   {},
}

// ParseStatus converts a wire status into a Status. Matching ignores case
// and surrounding whitespace.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := knownStatuses[s]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
	}
	return s, nil
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	_, ok := knownStatuses[s]
	return ok
}

// Done reports whether the status lets the workflow move past the step.
func (s Status) Done() bool {
	return s == StatusCompleted || s == StatusSkipped
}

func (s Status) String() string { return string(s) }

// Process is one reported execution of one named step at one version.
type Process struct {
	Name    string
	Version int
	Status  Status

	// Lifecycle names the milestone reached when the step completes, if any.
	Lifecycle    string
	ErrorMessage string

	LaneID   string
	Attempts int
}

// Done reports whether the process is completed or skipped.
func (p Process) Done() bool { return p.Status.Done() }

// HasLifecycle reports whether the process marks a lifecycle milestone.
func (p Process) HasLifecycle() bool { return p.Lifecycle != "" }

func (p Process) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrMissingName
	}
	if p.Version < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidVersion, p.Version)
	}
	if !p.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, string(p.Status))
	}
	return nil
}

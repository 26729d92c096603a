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

package jobs

import (
	"fmt"
	"strconv"
	"time"
)

// Handle refers to one background job on the server.
type Handle struct {
	JobID string
}

func (h Handle) String() string { return h.JobID }

// OutcomeKind tells how a wait ended.
type OutcomeKind int

const (
	// Completed means the server reported the job complete.
	Completed OutcomeKind = iota + 1
	// TimedOut means the job was still unfinished when the timeout elapsed.
	TimedOut
)

func (k OutcomeKind) String() string {
	switch k {
	case Completed:
		return "completed"
	case TimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of a wait.
type Outcome struct {
	Kind OutcomeKind
	// Errors holds the job's reported errors, or the timeout message.
	Errors []any
	// Attempts counts the status checks made.
	Attempts int
}

// Succeeded reports whether the job finished without errors.
func (o Outcome) Succeeded() bool {
	return o.Kind == Completed && len(o.Errors) == 0
}

func completedOutcome(errs []any, attempts int) Outcome {
	return Outcome{Kind: Completed, Errors: errs, Attempts: attempts}
}

func timedOutOutcome(timeout time.Duration, attempts int) Outcome {
	return Outcome{
		Kind:     TimedOut,
		Errors:   []any{fmt.Sprintf("Not complete after %s seconds", formatSeconds(timeout))},
		Attempts: attempts,
	}
}

// formatSeconds renders 12s as "12" and 1500ms as "1.5".
func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}

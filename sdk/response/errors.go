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

package response

import "errors"

// Error is a classified failure. Message is what operators see and is kept
// stable across releases.
type Error struct {
	Kind     Kind
	Status   int
	Message  string
	ObjectID string
	Cause    error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind.Sentinel()
}

// KindOf returns the kind of the first *Error in err's chain. ok is false
// when there is none.
func KindOf(err error) (kind Kind, ok bool) {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind, true
	}
	return KindUnexpected, false
}

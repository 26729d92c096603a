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

// Package response turns transport outcomes from the object repository into
// typed errors with stable, operator-facing messages.
//
// Every failure is an *Error whose Kind maps to a sentinel, so callers can
// branch with errors.Is:
//
//	if errors.Is(err, response.ErrNotFound) {
//		// the object does not exist
//	}
//
// Messages have the form "{reason}: {status} ({body})", optionally followed
// by " for {object identifier}". A blank body is replaced by
// DefaultBodyPlaceholder.
package response

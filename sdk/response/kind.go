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

// Kind classifies a failed call.
type Kind int

const (
	KindUnexpected Kind = iota
	KindBadRequest
	KindUnauthorized
	KindNotFound
	KindConflict
	KindUnprocessableContent
	KindConnectionFailure
	KindMalformed
)

var (
	ErrUnexpected           = errors.New("unexpected response")
	ErrBadRequest           = errors.New("bad request")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrNotFound             = errors.New("not found")
	ErrConflict             = errors.New("conflict")
	ErrUnprocessableContent = errors.New("unprocessable content")
	ErrConnectionFailure    = errors.New("connection failed")
	ErrMalformed            = errors.New("malformed response")
)

var kindSentinels = map[Kind]error{
	KindUnexpected:           ErrUnexpected,
	KindBadRequest:           ErrBadRequest,
	KindUnauthorized:         ErrUnauthorized,
	KindNotFound:             ErrNotFound,
	KindConflict:             ErrConflict,
	KindUnprocessableContent: ErrUnprocessableContent,
	KindConnectionFailure:    ErrConnectionFailure,
	KindMalformed:            ErrMalformed,
}

// Sentinel returns the error value errors.Is matches for k.
func (k Kind) Sentinel() error {
	if err, ok := kindSentinels[k]; ok {
		return err
	}
	return ErrUnexpected
}

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "BadRequest"
	case KindUnauthorized:
		return "Unauthorized"
	case KindNotFound:
		return "NotFound"
	case KindConflict:
		return "Conflict"
	case KindUnprocessableContent:
		return "UnprocessableContent"
	case KindConnectionFailure:
		return "ConnectionFailure"
	case KindMalformed:
		return "Malformed"
	default:
		return "Unexpected"
	}
}

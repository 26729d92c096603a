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

package api

// Job status values reported by the background job endpoint.
const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusComplete   = "complete"
)

// NATS subjects
const (
	// RequestSubjectPrefix is prepended to the HTTP method when a request is
	// published, e.g. "dsc.request.GET".
	RequestSubjectPrefix = "dsc.request"
)

// NATS headers carrying the request/reply envelope
const (
	MethodHeader    = "Dsc-Method"
	PathHeader      = "Dsc-Path"
	ObjectIDHeader  = "Dsc-Object-Id"
	RequestIDHeader = "Dsc-Request-Id"
	StatusHeader    = "Dsc-Status"
	ReasonHeader    = "Dsc-Reason"

	ContentTypeHeader = "Content-Type"
	LocationHeader    = "Location"
)

// Content types understood by serde.ForContentType
const (
	ContentTypeJSON    = "application/json"
	ContentTypeXML     = "application/xml"
	ContentTypeMsgpack = "application/msgpack"
)

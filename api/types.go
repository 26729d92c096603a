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

import (
	"encoding/xml"
	"strings"
)

type (
	// Request is one call the client asks an Invoker to perform against the
	// object repository.
	Request struct {
		Method   string            `json:"method"            msgpack:"method"`
		Path     string            `json:"path"              msgpack:"path"`
		ObjectID string            `json:"object_id,omitempty" msgpack:"object_id,omitempty"`
		Header   map[string]string `json:"header,omitempty"  msgpack:"header,omitempty"`
		Body     []byte            `json:"body,omitempty"    msgpack:"body,omitempty"`
	}

	// Reply is the transport-level outcome of a Request. A zero Status means
	// the remote side never produced an HTTP status.
	Reply struct {
		Status int               `json:"status"           msgpack:"status"`
		Reason string            `json:"reason,omitempty" msgpack:"reason,omitempty"`
		Header map[string]string `json:"header,omitempty" msgpack:"header,omitempty"`
		Body   []byte            `json:"body,omitempty"   msgpack:"body,omitempty"`
	}
)

// Success reports whether the reply carries a 2xx status.
func (r *Reply) Success() bool {
	return r != nil && r.Status >= 200 && r.Status < 300
}

// HeaderValue looks a header up case-insensitively.
func (r *Reply) HeaderValue(name string) string {
	if r == nil {
		return ""
	}
	if v, ok := r.Header[name]; ok {
		return v
	}
	for k, v := range r.Header {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

type (
	// JobStatus is the body returned when checking a background job.
	JobStatus struct {
		Status string    `json:"status" msgpack:"status"`
		Output JobOutput `json:"output" msgpack:"output"`
	}

	JobOutput struct {
		Errors []any `json:"errors,omitempty" msgpack:"errors,omitempty"`
	}

	// JobCreated is the body some endpoints return instead of a Location
	// header when they enqueue background work.
	JobCreated struct {
		JobID string `json:"jobId" msgpack:"jobId"`
	}
)

// IsComplete reports whether the server finished the job. Any other status
// means the job is still queued or running.
func (s JobStatus) IsComplete() bool { return s.Status == JobStatusComplete }

type (
	// WorkflowPayload is a workflow document as the server encodes it, before
	// validation.
	WorkflowPayload struct {
		XMLName   xml.Name         `json:"-"            msgpack:"-"            xml:"workflow"`
		ObjectID  string           `json:"objectId"     msgpack:"objectId"     xml:"objectId,attr"`
		Name      string           `json:"workflowName" msgpack:"workflowName" xml:"id,attr"`
		Processes []ProcessPayload `json:"processes"    msgpack:"processes"    xml:"process"`
	}

	// ProcessPayload is one flat process record within a WorkflowPayload.
	ProcessPayload struct {
		Name         string `json:"name"                   msgpack:"name"                   xml:"name,attr"`
		Version      int    `json:"version"                msgpack:"version"                xml:"version,attr"`
		Status       string `json:"status"                 msgpack:"status"                 xml:"status,attr"`
		Lifecycle    string `json:"lifecycle,omitempty"    msgpack:"lifecycle,omitempty"    xml:"lifecycle,attr,omitempty"`
		ErrorMessage string `json:"errorMessage,omitempty" msgpack:"errorMessage,omitempty" xml:"errorMessage,attr,omitempty"`
		LaneID       string `json:"laneId,omitempty"       msgpack:"laneId,omitempty"       xml:"laneId,attr,omitempty"`
		Attempts     int    `json:"attempts,omitempty"     msgpack:"attempts,omitempty"     xml:"attempts,attr,omitempty"`
	}
)

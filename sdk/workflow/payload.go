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

	"github.com/sul-dlss/dor-services-client-sub000/api"
)

// FromPayload builds a Document from the flat records the server sends.
// Identity fields missing from the payload fall back to objectID and name.
func FromPayload(objectID, name string, payload api.WorkflowPayload) (*Document, error) {
	if payload.ObjectID != "" {
		objectID = payload.ObjectID
	}
	if payload.Name != "" {
		name = payload.Name
	}

	processes := make([]Process, 0, len(payload.Processes))
	for i, raw := range payload.Processes {
		status, err := ParseStatus(raw.Status)
		if err != nil {
			return nil, &InvalidProcessError{Index: i, Name: raw.Name, Cause: err}
		}
		processes = append(processes, Process{
			Name:         raw.Name,
			Version:      raw.Version,
			Status:       status,
			Lifecycle:    raw.Lifecycle,
			ErrorMessage: raw.ErrorMessage,
			LaneID:       raw.LaneID,
			Attempts:     raw.Attempts,
		})
	}

	doc, err := NewDocument(objectID, name, processes)
	if err != nil {
		return nil, fmt.Errorf("workflow %s for %s: %w", name, objectID, err)
	}
	return doc, nil
}

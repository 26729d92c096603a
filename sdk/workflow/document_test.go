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

package workflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sul-dlss/dor-services-client-sub000/sdk/workflow"
)

func proc(name string, version int, status workflow.Status) workflow.Process {
	return workflow.Process{Name: name, Version: version, Status: status}
}

func mustDocument(t *testing.T, processes ...workflow.Process) *workflow.Document {
	t.Helper()
	doc, err := workflow.NewDocument("druid:bc123df4567", "accessionWF", processes)
	require.NoError(t, err)
	return doc
}

func TestDocument_Empty(t *testing.T) {
	doc := mustDocument(t)

	assert.True(t, doc.Empty())
	assert.True(t, doc.Complete())
	assert.Empty(t, doc.IncompleteProcesses())
	assert.Zero(t, doc.ErrorCount())

	_, ok := doc.LatestVersion()
	assert.False(t, ok)

	for v := 0; v <= 5; v++ {
		assert.False(t, doc.ActiveFor(v), "ActiveFor(%d)", v)
		assert.True(t, doc.CompleteFor(v), "CompleteFor(%d)", v)
	}

	_, found := doc.ProcessForMostRecentVersion("start-accession")
	assert.False(t, found)
}

func TestDocument_RetriedStepFailsAtLatestVersion(t *testing.T) {
	doc := mustDocument(t,
		proc("A", 1, workflow.StatusCompleted),
		proc("A", 2, workflow.StatusError),
		proc("B", 1, workflow.StatusCompleted),
	)

	latest, ok := doc.LatestVersion()
	require.True(t, ok)
	assert.Equal(t, 2, latest)

	assert.False(t, doc.CompleteFor(2))
	assert.False(t, doc.Complete())
	assert.True(t, doc.CompleteFor(1))
	assert.Equal(t, []workflow.Process{proc("A", 2, workflow.StatusError)}, doc.IncompleteProcessesFor(2))
	assert.Equal(t, doc.IncompleteProcessesFor(2), doc.IncompleteProcesses())
	assert.Equal(t, 1, doc.ErrorCount())
	assert.False(t, doc.Empty())
}

func TestDocument_AllDoneAtLatestVersion(t *testing.T) {
	doc := mustDocument(t,
		proc("X", 1, workflow.StatusCompleted),
		proc("X", 2, workflow.StatusCompleted),
		proc("Y", 2, workflow.StatusCompleted),
	)

	assert.True(t, doc.Complete())
	assert.Zero(t, doc.ErrorCount())
	assert.Empty(t, doc.IncompleteProcesses())
}

func TestDocument_SkippedCountsAsDone(t *testing.T) {
	doc := mustDocument(t,
		proc("start-accession", 1, workflow.StatusCompleted),
		proc("sdr-ingest", 1, workflow.StatusSkipped),
	)

	assert.True(t, doc.Complete())
}

func TestDocument_VacuousVersionIsComplete(t *testing.T) {
	doc := mustDocument(t,
		proc("A", 1, workflow.StatusWaiting),
	)

	assert.False(t, doc.ActiveFor(7))
	assert.True(t, doc.CompleteFor(7))
	assert.Empty(t, doc.IncompleteProcessesFor(7))
}

func TestDocument_IncompleteProcessesKeepDocumentOrder(t *testing.T) {
	doc := mustDocument(t,
		proc("shelve", 3, workflow.StatusWaiting),
		proc("start", 3, workflow.StatusCompleted),
		proc("publish", 3, workflow.StatusProcessing),
		proc("old", 2, workflow.StatusError),
		proc("reset", 3, workflow.StatusRetrying),
	)

	got := doc.IncompleteProcesses()
	names := make([]string, 0, len(got))
	for _, p := range got {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"shelve", "publish", "reset"}, names)
}

func TestDocument_ErrorCountIgnoresEarlierVersions(t *testing.T) {
	doc := mustDocument(t,
		proc("A", 1, workflow.StatusError),
		proc("B", 1, workflow.StatusError),
		proc("B", 2, workflow.StatusError),
		proc("C", 2, workflow.StatusError),
		proc("D", 2, workflow.StatusCompleted),
	)

	// A errored only at version 1; B and C error at the latest version.
	assert.Equal(t, 2, doc.ErrorCount())
}

func TestDocument_ProcessForMostRecentVersion(t *testing.T) {
	doc := mustDocument(t,
		proc("A", 2, workflow.StatusCompleted),
		proc("A", 3, workflow.StatusError),
		proc("A", 1, workflow.StatusWaiting),
		proc("B", 1, workflow.StatusCompleted),
		proc("C", 3, workflow.StatusWaiting),
	)

	tests := []struct {
		name        string
		wantVersion int
		wantStatus  workflow.Status
	}{
		{"A", 3, workflow.StatusError},
		{"B", 1, workflow.StatusCompleted},
		{"C", 3, workflow.StatusWaiting},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := doc.ProcessForMostRecentVersion(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.wantVersion, got.Version)
			assert.Equal(t, tt.wantStatus, got.Status)
		})
	}

	_, ok := doc.ProcessForMostRecentVersion("missing")
	assert.False(t, ok)
}

func TestDocument_ActiveFor(t *testing.T) {
	doc := mustDocument(t,
		proc("A", 1, workflow.StatusCompleted),
		proc("A", 3, workflow.StatusCompleted),
	)

	assert.True(t, doc.ActiveFor(1))
	assert.False(t, doc.ActiveFor(2))
	assert.True(t, doc.ActiveFor(3))
}

func TestNewDocument_Rejects(t *testing.T) {
	tests := []struct {
		name      string
		processes []workflow.Process
		wantErr   error
	}{
		{
			name:      "version zero",
			processes: []workflow.Process{proc("A", 0, workflow.StatusCompleted)},
			wantErr:   workflow.ErrInvalidVersion,
		},
		{
			name:      "unknown status",
			processes: []workflow.Process{proc("A", 1, workflow.Status("started"))},
			wantErr:   workflow.ErrUnknownStatus,
		},
		{
			name:      "missing name",
			processes: []workflow.Process{proc(" ", 1, workflow.StatusCompleted)},
			wantErr:   workflow.ErrMissingName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := workflow.NewDocument("druid:bc123df4567", "accessionWF", tt.processes)
			require.ErrorIs(t, err, tt.wantErr)

			var invalid *workflow.InvalidProcessError
			require.ErrorAs(t, err, &invalid)
			assert.Zero(t, invalid.Index)
		})
	}
}

func TestNewDocument_RejectsDuplicateNameAndVersion(t *testing.T) {
	_, err := workflow.NewDocument("druid:bc123df4567", "accessionWF", []workflow.Process{
		proc("A", 1, workflow.StatusCompleted),
		proc("B", 1, workflow.StatusCompleted),
		proc("A", 1, workflow.StatusError),
	})

	var dup *workflow.DuplicateProcessError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "A", dup.Name)
	assert.Equal(t, 1, dup.Version)

	var invalid *workflow.InvalidProcessError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 2, invalid.Index)
}

func TestNewDocument_CopiesInput(t *testing.T) {
	input := []workflow.Process{proc("A", 1, workflow.StatusWaiting)}
	doc := mustDocument(t, input...)

	input[0].Status = workflow.StatusCompleted
	assert.False(t, doc.Complete())

	out := doc.Processes()
	out[0].Status = workflow.StatusCompleted
	assert.False(t, doc.Complete())
}

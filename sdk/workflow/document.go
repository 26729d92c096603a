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

// Document is the execution state of one workflow instance of one object,
// across every version the workflow has run at.
type Document struct {
	objectID  string
	name      string
	processes []Process

	latest    int
	hasLatest bool
}

type processKey struct {
	name    string
	version int
}

// NewDocument validates processes and wraps them in a Document. The slice is
// copied; later changes to it do not affect the Document.
func NewDocument(objectID, name string, processes []Process) (*Document, error) {
	doc := &Document{
		objectID:  objectID,
		name:      name,
		processes: make([]Process, len(processes)),
	}
	copy(doc.processes, processes)

	seen := make(map[processKey]struct{}, len(processes))
	for i, p := range doc.processes {
		if err := p.validate(); err != nil {
			return nil, &InvalidProcessError{Index: i, Name: p.Name, Cause: err}
		}
		key := processKey{name: p.Name, version: p.Version}
		if _, dup := seen[key]; dup {
			return nil, &InvalidProcessError{
				Index: i,
				Name:  p.Name,
				Cause: &DuplicateProcessError{Name: p.Name, Version: p.Version},
			}
		}
		seen[key] = struct{}{}

		if !doc.hasLatest || p.Version > doc.latest {
			doc.latest = p.Version
			doc.hasLatest = true
		}
	}
	return doc, nil
}

// ObjectID returns the identifier of the object the workflow ran against.
func (d *Document) ObjectID() string { return d.objectID }

// Name returns the workflow name, e.g. "accessionWF".
func (d *Document) Name() string { return d.name }

// Processes returns a copy of every record in document order.
func (d *Document) Processes() []Process {
	out := make([]Process, len(d.processes))
	copy(out, d.processes)
	return out
}

// Empty reports whether the document has no records.
func (d *Document) Empty() bool { return len(d.processes) == 0 }

// LatestVersion returns the highest version any record reports. ok is false
// when the document is empty.
func (d *Document) LatestVersion() (version int, ok bool) {
	return d.latest, d.hasLatest
}

// ActiveFor reports whether any step ran at version.
func (d *Document) ActiveFor(version int) bool {
	for _, p := range d.processes {
		if p.Version == version {
			return true
		}
	}
	return false
}

// CompleteFor reports whether every step at version is completed or
// skipped. A version with no records is complete.
func (d *Document) CompleteFor(version int) bool {
	for _, p := range d.processes {
		if p.Version == version && !p.Done() {
			return false
		}
	}
	return true
}

// Complete is CompleteFor the latest version. An empty document is complete.
func (d *Document) Complete() bool {
	if !d.hasLatest {
		return true
	}
	return d.CompleteFor(d.latest)
}

// IncompleteProcessesFor returns the records at version that are neither
// completed nor skipped, in document order.
func (d *Document) IncompleteProcessesFor(version int) []Process {
	var out []Process
	for _, p := range d.processes {
		if p.Version == version && !p.Done() {
			out = append(out, p)
		}
	}
	return out
}

// IncompleteProcesses is IncompleteProcessesFor the latest version.
func (d *Document) IncompleteProcesses() []Process {
	if !d.hasLatest {
		return nil
	}
	return d.IncompleteProcessesFor(d.latest)
}

// ProcessForMostRecentVersion returns the record for name with the highest
// version. ok is false when name never appears.
func (d *Document) ProcessForMostRecentVersion(name string) (process Process, ok bool) {
	for _, p := range d.processes {
		if p.Name != name {
			continue
		}
		// >= keeps the last record seen on a tie; NewDocument rejects ties.
		if !ok || p.Version >= process.Version {
			process, ok = p, true
		}
	}
	return process, ok
}

// ErrorCount counts the steps of the latest version whose most recent
// record is in error. Steps that failed at an earlier version and did not
// run at the latest one are not counted.
func (d *Document) ErrorCount() int {
	if !d.hasLatest {
		return 0
	}

	names := make(map[string]struct{})
	count := 0
	for _, p := range d.processes {
		if p.Version != d.latest {
			continue
		}
		if _, done := names[p.Name]; done {
			continue
		}
		names[p.Name] = struct{}{}

		if recent, ok := d.ProcessForMostRecentVersion(p.Name); ok && recent.Status == StatusError {
			count++
		}
	}
	return count
}

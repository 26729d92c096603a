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

// Package workflow models the progress the object repository reports for
// one workflow of one object.
//
// A workflow is re-run every time a new version of an object is opened, so
// the server reports one process record per step per version the step ran
// at. A Document answers the questions callers ask about that history:
//
//	doc, err := client.Workflow(ctx, "druid:bc123df4567", "accessionWF")
//	if err != nil {
//		return err
//	}
//	if !doc.Complete() {
//		for _, p := range doc.IncompleteProcesses() {
//			log.Printf("%s is %s", p.Name, p.Status)
//		}
//	}
//
// # Versions
//
// Completeness and error counts are evaluated against the latest version
// that has any records. A version with no records at all is complete, since
// no step at that version failed to finish.
//
// # Lookups by name
//
// ProcessForMostRecentVersion returns the record with the highest version
// for a step, regardless of whether that is the latest version of the
// workflow as a whole.
//
// Documents are immutable after construction and safe for concurrent reads.
package workflow

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

// Package jobs waits for server-side background jobs to finish.
//
// Long-running operations such as publishing or accessioning an object are
// executed off the request path. The server answers with a job handle,
// which a Poller checks with exponential backoff until the job completes or
// the configured timeout elapses:
//
//	poller := jobs.NewPoller(checker, jobs.DefaultConfig())
//	outcome, err := poller.Wait(ctx, handle)
//	if err != nil {
//		return err // the status check itself failed
//	}
//	if !outcome.Succeeded() {
//		log.Printf("job %s failed: %v", handle.JobID, outcome.Errors)
//	}
//
// A timeout is a normal outcome, not an error. Errors returned by the
// Checker are passed through unchanged and never retried.
package jobs

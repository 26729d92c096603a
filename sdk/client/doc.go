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

// Package client talks to dor-services-app.
//
// A Client fetches workflow documents, starts background jobs and waits for
// them to finish. Every call goes through an Invoker, which carries a
// request to the server and returns its reply; NATSInvoker does so over NATS
// request/reply.
//
//	nc, err := nats.Connect("nats://localhost:4222")
//	if err != nil {
//		log.Fatal(err)
//	}
//	inv, err := client.NewNATSInvoker(nc)
//	if err != nil {
//		log.Fatal(err)
//	}
//	c, err := client.NewClient(&client.Options{Invoker: inv})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	doc, err := c.Workflow(ctx, "druid:bc123df4567", "accessionWF")
//	if errors.Is(err, response.ErrNotFound) {
//		// no such workflow
//	}
//
// # Errors
//
// Failures are *response.Error values. A reply without an HTTP status, or a
// transport error, is KindConnectionFailure; a 2xx body that cannot be
// decoded is KindMalformed; other statuses follow the response.Classifier
// table.
//
// # Background jobs
//
// StartJob returns a jobs.Handle and WaitForJob polls it with exponential
// backoff until it completes or the configured timeout passes. A timeout is
// reported in the jobs.Outcome, not as an error.
package client

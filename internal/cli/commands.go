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

package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/sul-dlss/dor-services-client-sub000/api/serde"
	"github.com/sul-dlss/dor-services-client-sub000/sdk/client"
	"github.com/sul-dlss/dor-services-client-sub000/sdk/jobs"
	"github.com/sul-dlss/dor-services-client-sub000/sdk/workflow"
)

// Usage lists the commands understood by Dispatch.
const Usage = `commands:
  workflow <objectId> <name>...    show workflow state
  start [-wait] <objectId> <action> start a background job
  status <jobId>                    check a background job once
  wait <jobId>                      wait for a background job
  catalog <catkey>                  print a catalog MARCXML record`

var (
	ErrUsage     = errors.New("invalid usage")
	ErrJobFailed = errors.New("job did not succeed")
)

type (
	workflowView struct {
		ObjectID            string        `json:"objectId"`
		Name                string        `json:"workflowName"`
		LatestVersion       int           `json:"latestVersion,omitempty"`
		Complete            bool          `json:"complete"`
		ErrorCount          int           `json:"errorCount"`
		IncompleteProcesses []processView `json:"incompleteProcesses,omitempty"`
	}

	processView struct {
		Name         string `json:"name"`
		Version      int    `json:"version"`
		Status       string `json:"status"`
		ErrorMessage string `json:"errorMessage,omitempty"`
	}

	outcomeView struct {
		JobID    string `json:"jobId"`
		Outcome  string `json:"outcome"`
		Attempts int    `json:"attempts,omitempty"`
		Errors   []any  `json:"errors,omitempty"`
	}
)

// Dispatch runs the command named by args[0] against c.
func Dispatch(ctx context.Context, c client.Client, args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no command\n%s", ErrUsage, Usage)
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "workflow":
		return runWorkflow(ctx, c, rest, out)
	case "start":
		return runStart(ctx, c, rest, out)
	case "status":
		if len(rest) != 1 {
			return fmt.Errorf("%w: status <jobId>", ErrUsage)
		}
		status, err := c.JobStatus(ctx, rest[0])
		if err != nil {
			return err
		}
		return write(out, status)
	case "wait":
		if len(rest) != 1 {
			return fmt.Errorf("%w: wait <jobId>", ErrUsage)
		}
		return runWait(ctx, c, jobs.Handle{JobID: rest[0]}, out)
	case "catalog":
		if len(rest) != 1 {
			return fmt.Errorf("%w: catalog <catkey>", ErrUsage)
		}
		body, err := c.CatalogRecord(ctx, rest[0])
		if err != nil {
			return err
		}
		_, err = out.Write(body)
		return err
	default:
		return fmt.Errorf("%w: unknown command %q\n%s", ErrUsage, cmd, Usage)
	}
}

func runWorkflow(ctx context.Context, c client.Client, args []string, out io.Writer) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: workflow <objectId> <name>...", ErrUsage)
	}
	docs, err := c.Workflows(ctx, args[0], args[1:]...)
	if err != nil {
		return err
	}
	views := make([]workflowView, 0, len(docs))
	for _, doc := range docs {
		views = append(views, viewOf(doc))
	}
	if len(views) == 1 {
		return write(out, views[0])
	}
	return write(out, views)
}

func runStart(ctx context.Context, c client.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("start", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	wait := fs.Bool("wait", false, "wait for the job to finish")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("%w: start [-wait] <objectId> <action>", ErrUsage)
	}

	h, err := c.StartJob(ctx, fs.Arg(0), fs.Arg(1))
	if err != nil {
		return err
	}
	if !*wait {
		return write(out, outcomeView{JobID: h.JobID, Outcome: "started"})
	}
	return runWait(ctx, c, h, out)
}

func runWait(ctx context.Context, c client.Client, h jobs.Handle, out io.Writer) error {
	o, err := c.WaitForJob(ctx, h)
	if err != nil {
		return err
	}
	if err := write(out, outcomeView{
		JobID:    h.JobID,
		Outcome:  o.Kind.String(),
		Attempts: o.Attempts,
		Errors:   o.Errors,
	}); err != nil {
		return err
	}
	if !o.Succeeded() {
		return fmt.Errorf("%w: job %s %s", ErrJobFailed, h.JobID, o.Kind)
	}
	return nil
}

func viewOf(doc *workflow.Document) workflowView {
	v := workflowView{
		ObjectID:   doc.ObjectID(),
		Name:       doc.Name(),
		Complete:   doc.Complete(),
		ErrorCount: doc.ErrorCount(),
	}
	v.LatestVersion, _ = doc.LatestVersion()
	for _, p := range doc.IncompleteProcesses() {
		v.IncompleteProcesses = append(v.IncompleteProcesses, processView{
			Name:         p.Name,
			Version:      p.Version,
			Status:       string(p.Status),
			ErrorMessage: p.ErrorMessage,
		})
	}
	return v
}

func write(out io.Writer, v any) error {
	data, err := (&serde.JsonSerde{}).SerializeBinary(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s\n", data)
	return err
}

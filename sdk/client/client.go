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

package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/sul-dlss/dor-services-client-sub000/api"
	"github.com/sul-dlss/dor-services-client-sub000/api/serde"
	"github.com/sul-dlss/dor-services-client-sub000/sdk/jobs"
	"github.com/sul-dlss/dor-services-client-sub000/sdk/response"
	"github.com/sul-dlss/dor-services-client-sub000/sdk/workflow"
)

var _ Client = (*clientImpl)(nil)

var errMissingJobID = errors.New("no job id in Location header or body")

type (
	// Client is the interface for talking to dor-services-app.
	Client interface {
		// Workflow fetches one workflow document of an object.
		Workflow(ctx context.Context, objectID, name string) (*workflow.Document, error)
		// Workflows fetches several workflows of an object concurrently. The
		// result follows the order of names.
		Workflows(ctx context.Context, objectID string, names ...string) ([]*workflow.Document, error)
		// StartJob triggers a long-running action on an object.
		StartJob(ctx context.Context, objectID, action string) (jobs.Handle, error)
		// JobStatus checks a background job once.
		JobStatus(ctx context.Context, jobID string) (api.JobStatus, error)
		// WaitForJob polls a background job until it completes or times out.
		WaitForJob(ctx context.Context, h jobs.Handle) (jobs.Outcome, error)
		// CatalogRecord fetches the MARCXML record for a catalog key.
		CatalogRecord(ctx context.Context, catkey string) ([]byte, error)
	}

	// Options contains configuration for creating a new Client.
	Options struct {
		Invoker Invoker
		Logger  *slog.Logger
		// Poll configures WaitForJob; zero fields use the jobs defaults.
		Poll  jobs.Config
		Clock jobs.Clock
		// MaxConcurrency caps Workflows fan-out; zero means unbounded.
		MaxConcurrency int
	}
)

type clientImpl struct {
	invoker     Invoker
	logger      *slog.Logger
	classifier  *response.Classifier
	catalog     *response.Classifier
	poller      *jobs.Poller
	concurrency int
}

// NewClient creates a Client. Options must carry an Invoker.
func NewClient(options *Options) (Client, error) {
	if options == nil || options.Invoker == nil {
		return nil, errors.New("client options must include an invoker")
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &clientImpl{
		invoker:     options.Invoker,
		logger:      logger,
		classifier:  response.NewClassifier(response.WithJSONAPIErrors()),
		catalog:     response.NewCatalogClassifier(),
		concurrency: options.MaxConcurrency,
	}
	pollOpts := []jobs.PollerOption{jobs.WithLogger(logger)}
	if options.Clock != nil {
		pollOpts = append(pollOpts, jobs.WithClock(options.Clock))
	}
	c.poller = jobs.NewPoller(jobs.CheckerFunc(c.JobStatus), options.Poll, pollOpts...)
	return c, nil
}

// Workflow implements Client.
func (c *clientImpl) Workflow(ctx context.Context, objectID, name string) (*workflow.Document, error) {
	req := &api.Request{
		Method:   http.MethodGet,
		Path:     api.WorkflowPath(objectID, name),
		ObjectID: objectID,
		Header:   map[string]string{"Accept": api.ContentTypeXML},
	}
	reply, err := c.do(ctx, c.classifier, req)
	if err != nil {
		return nil, err
	}

	var payload api.WorkflowPayload
	if err := c.decode(reply, objectID, &payload); err != nil {
		return nil, err
	}
	doc, err := workflow.FromPayload(objectID, name, payload)
	if err != nil {
		return nil, c.classifier.Malformed(outcome(reply, objectID), err)
	}
	return doc, nil
}

// Workflows implements Client.
func (c *clientImpl) Workflows(ctx context.Context, objectID string, names ...string) ([]*workflow.Document, error) {
	docs := make([]*workflow.Document, len(names))
	g, gctx := errgroup.WithContext(ctx)
	if c.concurrency > 0 {
		g.SetLimit(c.concurrency)
	}
	for i, name := range names {
		g.Go(func() error {
			doc, err := c.Workflow(gctx, objectID, name)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// StartJob implements Client.
func (c *clientImpl) StartJob(ctx context.Context, objectID, action string) (jobs.Handle, error) {
	req := &api.Request{
		Method:   http.MethodPost,
		Path:     api.ObjectActionPath(objectID, action),
		ObjectID: objectID,
		Header:   map[string]string{"Accept": api.ContentTypeJSON},
	}
	reply, err := c.do(ctx, c.classifier, req)
	if err != nil {
		return jobs.Handle{}, err
	}

	if id := jobIDFromLocation(reply.HeaderValue(api.LocationHeader)); id != "" {
		return jobs.Handle{JobID: id}, nil
	}
	var created api.JobCreated
	if len(reply.Body) > 0 {
		if err := c.decode(reply, objectID, &created); err != nil {
			return jobs.Handle{}, err
		}
	}
	if created.JobID == "" {
		return jobs.Handle{}, c.classifier.Malformed(outcome(reply, objectID), errMissingJobID)
	}
	c.logger.Debug("job started", "object_id", objectID, "action", action, "job_id", created.JobID)
	return jobs.Handle{JobID: created.JobID}, nil
}

// JobStatus implements Client and serves as the poller's Checker.
func (c *clientImpl) JobStatus(ctx context.Context, jobID string) (api.JobStatus, error) {
	req := &api.Request{
		Method: http.MethodGet,
		Path:   api.JobResultPath(jobID),
		Header: map[string]string{"Accept": api.ContentTypeJSON},
	}
	reply, err := c.do(ctx, c.classifier, req)
	if err != nil {
		return api.JobStatus{}, err
	}
	var status api.JobStatus
	if err := c.decode(reply, "", &status); err != nil {
		return api.JobStatus{}, err
	}
	return status, nil
}

// WaitForJob implements Client.
func (c *clientImpl) WaitForJob(ctx context.Context, h jobs.Handle) (jobs.Outcome, error) {
	if h.JobID == "" {
		return jobs.Outcome{}, errors.New("wait for job: empty job id")
	}
	return c.poller.Wait(ctx, h)
}

// CatalogRecord implements Client.
func (c *clientImpl) CatalogRecord(ctx context.Context, catkey string) ([]byte, error) {
	req := &api.Request{
		Method:   http.MethodGet,
		Path:     api.CatalogPath(catkey),
		ObjectID: catkey,
		Header:   map[string]string{"Accept": api.ContentTypeXML},
	}
	reply, err := c.do(ctx, c.catalog, req)
	if err != nil {
		return nil, err
	}
	return reply.Body, nil
}

// do invokes req and turns every failure into a *response.Error.
func (c *clientImpl) do(ctx context.Context, classifier *response.Classifier, req *api.Request) (*api.Reply, error) {
	reply, err := c.invoker.Invoke(ctx, req)
	if err != nil {
		return nil, classifier.ConnectionFailure(err, req.ObjectID)
	}
	if reply == nil {
		return nil, classifier.ConnectionFailure(errors.New("empty reply"), req.ObjectID)
	}
	if rerr := classifier.Classify(outcome(reply, req.ObjectID)); rerr != nil {
		c.logger.Debug("request failed",
			"method", req.Method, "path", req.Path, "status", reply.Status, "kind", rerr.Kind)
		return nil, rerr
	}
	return reply, nil
}

func (c *clientImpl) decode(reply *api.Reply, objectID string, v any) error {
	codec := serde.ForContentType(reply.HeaderValue(api.ContentTypeHeader))
	if err := codec.DeserializeBinary(reply.Body, v); err != nil {
		return c.classifier.Malformed(outcome(reply, objectID), fmt.Errorf("decode %T: %w", v, err))
	}
	return nil
}

func outcome(reply *api.Reply, objectID string) response.Outcome {
	return response.Outcome{
		Status:   reply.Status,
		Reason:   reply.Reason,
		Body:     string(reply.Body),
		ObjectID: objectID,
	}
}

// jobIDFromLocation takes the last path segment of a Location header such
// as "/v1/background_job_results/123".
func jobIDFromLocation(location string) string {
	location = strings.TrimSpace(location)
	if location == "" {
		return ""
	}
	if i := strings.IndexAny(location, "?#"); i >= 0 {
		location = location[:i]
	}
	id := path.Base(strings.TrimRight(location, "/"))
	if id == "." || id == "/" {
		return ""
	}
	return id
}

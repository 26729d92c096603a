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

package client_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sul-dlss/dor-services-client-sub000/api"
	"github.com/sul-dlss/dor-services-client-sub000/sdk/client"
	"github.com/sul-dlss/dor-services-client-sub000/sdk/jobs"
	"github.com/sul-dlss/dor-services-client-sub000/sdk/response"
	"github.com/sul-dlss/dor-services-client-sub000/sdk/workflow"
)

const druid = "druid:bc123df4567"

const accessionXML = `<workflow objectId="druid:bc123df4567" id="accessionWF">
  <process name="start-accession" version="1" status="completed" lifecycle="submitted"/>
  <process name="publish" version="1" status="completed" lifecycle="published"/>
  <process name="start-accession" version="2" status="completed"/>
  <process name="publish" version="2" status="error" errorMessage="boom"/>
</workflow>`

// routeInvoker answers by method and path and records each request.
type routeInvoker struct {
	mu       sync.Mutex
	routes   map[string][]*api.Reply
	err      error
	requests []*api.Request
}

func newRouteInvoker() *routeInvoker {
	return &routeInvoker{routes: map[string][]*api.Reply{}}
}

// on queues replies for a route; the last one repeats.
func (r *routeInvoker) on(method, path string, replies ...*api.Reply) {
	r.routes[method+" "+path] = replies
}

func (r *routeInvoker) Invoke(_ context.Context, req *api.Request) (*api.Reply, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
	if r.err != nil {
		return nil, r.err
	}
	key := req.Method + " " + req.Path
	replies, ok := r.routes[key]
	if !ok {
		return &api.Reply{Status: http.StatusNotFound, Reason: "Not Found"}, nil
	}
	reply := replies[0]
	if len(replies) > 1 {
		r.routes[key] = replies[1:]
	}
	return reply, nil
}

func xmlReply(body string) *api.Reply {
	return &api.Reply{
		Status: http.StatusOK,
		Header: map[string]string{api.ContentTypeHeader: api.ContentTypeXML},
		Body:   []byte(body),
	}
}

func jsonReply(status int, body string) *api.Reply {
	return &api.Reply{
		Status: status,
		Header: map[string]string{api.ContentTypeHeader: api.ContentTypeJSON},
		Body:   []byte(body),
	}
}

func newClient(t *testing.T, inv client.Invoker, opts ...func(*client.Options)) client.Client {
	t.Helper()
	o := &client.Options{Invoker: inv}
	for _, opt := range opts {
		opt(o)
	}
	c, err := client.NewClient(o)
	require.NoError(t, err)
	return c
}

func TestNewClient_RequiresInvoker(t *testing.T) {
	_, err := client.NewClient(nil)
	require.Error(t, err)
	_, err = client.NewClient(&client.Options{})
	require.Error(t, err)
}

func TestWorkflow(t *testing.T) {
	inv := newRouteInvoker()
	inv.on(http.MethodGet, api.WorkflowPath(druid, "accessionWF"), xmlReply(accessionXML))
	c := newClient(t, inv)

	doc, err := c.Workflow(context.Background(), druid, "accessionWF")
	require.NoError(t, err)

	assert.Equal(t, druid, doc.ObjectID())
	assert.Equal(t, "accessionWF", doc.Name())
	latest, ok := doc.LatestVersion()
	require.True(t, ok)
	assert.Equal(t, 2, latest)
	assert.False(t, doc.Complete())
	assert.True(t, doc.CompleteFor(1))
	assert.Equal(t, 1, doc.ErrorCount())

	incomplete := doc.IncompleteProcesses()
	require.Len(t, incomplete, 1)
	assert.Equal(t, "publish", incomplete[0].Name)
	assert.Equal(t, workflow.StatusError, incomplete[0].Status)

	require.Len(t, inv.requests, 1)
	assert.Equal(t, druid, inv.requests[0].ObjectID)
}

func TestWorkflow_NotFound(t *testing.T) {
	inv := newRouteInvoker()
	c := newClient(t, inv)

	_, err := c.Workflow(context.Background(), druid, "missingWF")
	require.Error(t, err)
	assert.ErrorIs(t, err, response.ErrNotFound)
	assert.Equal(t, "Not Found: 404 ("+response.DefaultBodyPlaceholder+") for druid:bc123df4567", err.Error())
}

func TestWorkflow_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not xml", body: "<workflow"},
		{name: "unknown status", body: `<workflow><process name="a" version="1" status="done"/></workflow>`},
		{name: "duplicate record", body: `<workflow>
			<process name="a" version="1" status="waiting"/>
			<process name="a" version="1" status="completed"/>
		</workflow>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := newRouteInvoker()
			inv.on(http.MethodGet, api.WorkflowPath(druid, "accessionWF"), xmlReply(tt.body))
			c := newClient(t, inv)

			_, err := c.Workflow(context.Background(), druid, "accessionWF")
			require.Error(t, err)
			assert.ErrorIs(t, err, response.ErrMalformed)
		})
	}
}

func TestWorkflow_ConnectionFailure(t *testing.T) {
	inv := newRouteInvoker()
	inv.err = errors.New("nats: no responders available for request")
	c := newClient(t, inv)

	_, err := c.Workflow(context.Background(), druid, "accessionWF")
	require.Error(t, err)
	assert.ErrorIs(t, err, response.ErrConnectionFailure)
	assert.ErrorIs(t, err, inv.err)
	assert.Contains(t, err.Error(), "for druid:bc123df4567")
}

func TestWorkflow_NoStatusIsConnectionFailure(t *testing.T) {
	inv := newRouteInvoker()
	inv.on(http.MethodGet, api.WorkflowPath(druid, "accessionWF"), &api.Reply{})
	c := newClient(t, inv)

	_, err := c.Workflow(context.Background(), druid, "accessionWF")
	assert.ErrorIs(t, err, response.ErrConnectionFailure)
}

func TestWorkflows(t *testing.T) {
	inv := newRouteInvoker()
	inv.on(http.MethodGet, api.WorkflowPath(druid, "accessionWF"), xmlReply(accessionXML))
	inv.on(http.MethodGet, api.WorkflowPath(druid, "versioningWF"),
		xmlReply(`<workflow objectId="druid:bc123df4567" id="versioningWF">
			<process name="open" version="1" status="completed"/>
		</workflow>`))
	c := newClient(t, inv, func(o *client.Options) { o.MaxConcurrency = 1 })

	docs, err := c.Workflows(context.Background(), druid, "versioningWF", "accessionWF")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "versioningWF", docs[0].Name())
	assert.True(t, docs[0].Complete())
	assert.Equal(t, "accessionWF", docs[1].Name())
}

func TestWorkflows_FirstErrorWins(t *testing.T) {
	inv := newRouteInvoker()
	inv.on(http.MethodGet, api.WorkflowPath(druid, "accessionWF"), xmlReply(accessionXML))
	c := newClient(t, inv)

	_, err := c.Workflows(context.Background(), druid, "accessionWF", "missingWF")
	assert.ErrorIs(t, err, response.ErrNotFound)
}

func TestStartJob(t *testing.T) {
	path := api.ObjectActionPath(druid, "publish")
	tests := []struct {
		name    string
		reply   *api.Reply
		wantID  string
		wantErr error
	}{
		{
			name: "location header",
			reply: &api.Reply{
				Status: http.StatusCreated,
				Header: map[string]string{"location": "https://dsa.example.edu/v1/background_job_results/123"},
			},
			wantID: "123",
		},
		{
			name:   "json body",
			reply:  jsonReply(http.StatusCreated, `{"jobId":"456"}`),
			wantID: "456",
		},
		{
			name:    "neither",
			reply:   &api.Reply{Status: http.StatusNoContent},
			wantErr: response.ErrMalformed,
		},
		{
			name:    "conflict",
			reply:   jsonReply(http.StatusConflict, `{"errors":[{"title":"Conflict","detail":"already publishing"}]}`),
			wantErr: response.ErrConflict,
		},
		{
			name:    "unprocessable",
			reply:   jsonReply(http.StatusUnprocessableEntity, `bad`),
			wantErr: response.ErrUnprocessableContent,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := newRouteInvoker()
			inv.on(http.MethodPost, path, tt.reply)
			c := newClient(t, inv)

			h, err := c.StartJob(context.Background(), druid, "publish")
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, h.JobID)
		})
	}
}

func TestStartJob_ConflictMessage(t *testing.T) {
	inv := newRouteInvoker()
	inv.on(http.MethodPost, api.ObjectActionPath(druid, "publish"), &api.Reply{
		Status: http.StatusConflict,
		Reason: "Conflict",
		Body:   []byte(`{"errors":[{"title":"Conflict","detail":"already publishing"}]}`),
	})
	c := newClient(t, inv)

	_, err := c.StartJob(context.Background(), druid, "publish")
	assert.EqualError(t, err, "Conflict: 409 (Conflict (already publishing)) for druid:bc123df4567")
}

func TestJobStatus(t *testing.T) {
	inv := newRouteInvoker()
	inv.on(http.MethodGet, api.JobResultPath("7"),
		jsonReply(http.StatusOK, `{"status":"complete","output":{"errors":[{"detail":"nope"}]}}`))
	c := newClient(t, inv)

	status, err := c.JobStatus(context.Background(), "7")
	require.NoError(t, err)
	assert.True(t, status.IsComplete())
	require.Len(t, status.Output.Errors, 1)
}

// stepClock advances only when slept on.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return nil
}

// WithDeadline never fires; the poller's own deadline check covers virtual time.
func (c *stepClock) WithDeadline(ctx context.Context, _ time.Time) (context.Context, context.CancelFunc) {
	return context.WithCancel(ctx)
}

func TestWaitForJob(t *testing.T) {
	inv := newRouteInvoker()
	inv.on(http.MethodGet, api.JobResultPath("7"),
		jsonReply(http.StatusOK, `{"status":"pending"}`),
		jsonReply(http.StatusOK, `{"status":"processing"}`),
		jsonReply(http.StatusOK, `{"status":"complete","output":{}}`),
	)
	c := newClient(t, inv, func(o *client.Options) { o.Clock = &stepClock{} })

	out, err := c.WaitForJob(context.Background(), jobs.Handle{JobID: "7"})
	require.NoError(t, err)
	assert.Equal(t, jobs.Completed, out.Kind)
	assert.True(t, out.Succeeded())
	assert.Equal(t, 3, out.Attempts)
}

func TestWaitForJob_TimesOut(t *testing.T) {
	inv := newRouteInvoker()
	inv.on(http.MethodGet, api.JobResultPath("7"), jsonReply(http.StatusOK, `{"status":"processing"}`))
	c := newClient(t, inv, func(o *client.Options) {
		o.Clock = &stepClock{}
		o.Poll = jobs.Config{InitialInterval: time.Second, Timeout: 12 * time.Second}
	})

	out, err := c.WaitForJob(context.Background(), jobs.Handle{JobID: "7"})
	require.NoError(t, err)
	assert.Equal(t, jobs.TimedOut, out.Kind)
	assert.Equal(t, []any{"Not complete after 12 seconds"}, out.Errors)
}

func TestWaitForJob_CheckErrorPropagates(t *testing.T) {
	inv := newRouteInvoker()
	inv.on(http.MethodGet, api.JobResultPath("7"), jsonReply(http.StatusUnauthorized, ""))
	c := newClient(t, inv, func(o *client.Options) { o.Clock = &stepClock{} })

	_, err := c.WaitForJob(context.Background(), jobs.Handle{JobID: "7"})
	assert.ErrorIs(t, err, response.ErrUnauthorized)
}

func TestWaitForJob_EmptyHandle(t *testing.T) {
	c := newClient(t, newRouteInvoker())
	_, err := c.WaitForJob(context.Background(), jobs.Handle{})
	require.Error(t, err)
}

func TestCatalogRecord(t *testing.T) {
	inv := newRouteInvoker()
	inv.on(http.MethodGet, api.CatalogPath("123"), xmlReply("<record/>"))
	inv.on(http.MethodGet, api.CatalogPath("999"), &api.Reply{
		Status: http.StatusInternalServerError,
		Body:   []byte("Record not found in catalog"),
	})
	c := newClient(t, inv)

	body, err := c.CatalogRecord(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, "<record/>", string(body))

	_, err = c.CatalogRecord(context.Background(), "999")
	assert.ErrorIs(t, err, response.ErrNotFound)
}

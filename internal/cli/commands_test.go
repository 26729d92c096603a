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
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sul-dlss/dor-services-client-sub000/api"
	"github.com/sul-dlss/dor-services-client-sub000/sdk/client"
	"github.com/sul-dlss/dor-services-client-sub000/sdk/jobs"
)

const druid = "druid:bc123df4567"

type instantClock struct{ now time.Time }

func (c *instantClock) Now() time.Time { return c.now }

func (c *instantClock) Sleep(_ context.Context, d time.Duration) error {
	c.now = c.now.Add(d)
	return nil
}

// WithDeadline never fires; the poller's own deadline check covers virtual time.
func (c *instantClock) WithDeadline(ctx context.Context, _ time.Time) (context.Context, context.CancelFunc) {
	return context.WithCancel(ctx)
}

func testClient(t *testing.T, replies map[string]*api.Reply) client.Client {
	t.Helper()
	inv := client.InvokerFunc(func(_ context.Context, req *api.Request) (*api.Reply, error) {
		if r, ok := replies[req.Method+" "+req.Path]; ok {
			return r, nil
		}
		return &api.Reply{Status: http.StatusNotFound}, nil
	})
	c, err := client.NewClient(&client.Options{
		Invoker: inv,
		Clock:   &instantClock{},
		Poll:    jobs.Config{Timeout: 10 * time.Second},
	})
	require.NoError(t, err)
	return c
}

func jsonReply(body string) *api.Reply {
	return &api.Reply{
		Status: http.StatusOK,
		Header: map[string]string{api.ContentTypeHeader: api.ContentTypeJSON},
		Body:   []byte(body),
	}
}

func TestDispatch_Usage(t *testing.T) {
	c := testClient(t, nil)
	for _, args := range [][]string{
		nil,
		{"bogus"},
		{"workflow", druid},
		{"status"},
		{"wait", "1", "2"},
		{"start", druid},
		{"catalog"},
	} {
		err := Dispatch(context.Background(), c, args, &bytes.Buffer{})
		assert.ErrorIs(t, err, ErrUsage, "%v", args)
	}
}

func TestDispatch_Workflow(t *testing.T) {
	c := testClient(t, map[string]*api.Reply{
		"GET " + api.WorkflowPath(druid, "accessionWF"): {
			Status: http.StatusOK,
			Header: map[string]string{api.ContentTypeHeader: api.ContentTypeXML},
			Body: []byte(`<workflow objectId="druid:bc123df4567" id="accessionWF">
				<process name="start-accession" version="1" status="completed"/>
				<process name="publish" version="1" status="error" errorMessage="boom"/>
			</workflow>`),
		},
	})

	var out bytes.Buffer
	require.NoError(t, Dispatch(context.Background(), c, []string{"workflow", druid, "accessionWF"}, &out))

	var got workflowView
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "accessionWF", got.Name)
	assert.Equal(t, 1, got.LatestVersion)
	assert.False(t, got.Complete)
	assert.Equal(t, 1, got.ErrorCount)
	require.Len(t, got.IncompleteProcesses, 1)
	assert.Equal(t, "boom", got.IncompleteProcesses[0].ErrorMessage)
}

func TestDispatch_StartAndWait(t *testing.T) {
	c := testClient(t, map[string]*api.Reply{
		"POST " + api.ObjectActionPath(druid, "publish"): {
			Status: http.StatusCreated,
			Header: map[string]string{api.LocationHeader: "/v1/background_job_results/77"},
		},
		"GET " + api.JobResultPath("77"): jsonReply(`{"status":"complete","output":{}}`),
	})

	var out bytes.Buffer
	require.NoError(t, Dispatch(context.Background(), c, []string{"start", "-wait", druid, "publish"}, &out))

	var got outcomeView
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "77", got.JobID)
	assert.Equal(t, "completed", got.Outcome)
	assert.Equal(t, 1, got.Attempts)
}

func TestDispatch_WaitReportsFailure(t *testing.T) {
	c := testClient(t, map[string]*api.Reply{
		"GET " + api.JobResultPath("8"): jsonReply(`{"status":"processing"}`),
	})

	var out bytes.Buffer
	err := Dispatch(context.Background(), c, []string{"wait", "8"}, &out)
	require.ErrorIs(t, err, ErrJobFailed)

	var got outcomeView
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "timed_out", got.Outcome)
	assert.Equal(t, []any{"Not complete after 10 seconds"}, got.Errors)
}

func TestDispatch_Catalog(t *testing.T) {
	c := testClient(t, map[string]*api.Reply{
		"GET " + api.CatalogPath("123"): {Status: http.StatusOK, Body: []byte("<record/>")},
	})

	var out bytes.Buffer
	require.NoError(t, Dispatch(context.Background(), c, []string{"catalog", "123"}, &out))
	assert.Equal(t, "<record/>", out.String())
}

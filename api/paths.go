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

package api

import (
	"fmt"
	"net/url"
)

// WorkflowPath returns the path of one workflow of one object.
func WorkflowPath(objectID, workflowName string) string {
	return fmt.Sprintf("/v1/objects/%s/workflows/%s", url.PathEscape(objectID), url.PathEscape(workflowName))
}

// ObjectActionPath returns the path that triggers a long-running action,
// such as "publish" or "accession", on one object.
func ObjectActionPath(objectID, action string) string {
	return fmt.Sprintf("/v1/objects/%s/%s", url.PathEscape(objectID), url.PathEscape(action))
}

// JobResultPath returns the path used to check a background job.
func JobResultPath(jobID string) string {
	return fmt.Sprintf("/v1/background_job_results/%s", url.PathEscape(jobID))
}

// CatalogPath returns the catalog lookup path for a catalog key.
func CatalogPath(catkey string) string {
	return "/v1/catalog/marcxml?catkey=" + url.QueryEscape(catkey)
}

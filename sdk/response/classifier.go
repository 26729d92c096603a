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

package response

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sul-dlss/dor-services-client-sub000/api/serde"
)

// DefaultBodyPlaceholder stands in for an empty response body in messages.
const DefaultBodyPlaceholder = "Response from dor-services-app did not contain a body. " +
	"Check the dor-services-app logs for backtraces."

// CatalogNotFoundMarker is what the catalog lookup endpoint writes into the
// body, under various statuses, when no record matches.
const CatalogNotFoundMarker = "Record not found"

// Outcome is the transport-level result handed to a Classifier. Status is 0
// when no HTTP status was received.
type Outcome struct {
	Status   int
	Reason   string
	Body     string
	ObjectID string
}

func (o Outcome) success() bool { return o.Status >= 200 && o.Status < 300 }

// Override reclassifies an outcome before the status table is consulted.
type Override struct {
	Name  string
	Match func(Outcome) bool
	Kind  Kind
}

// BodyContains matches outcomes whose body contains marker.
func BodyContains(marker string) func(Outcome) bool {
	return func(o Outcome) bool {
		return strings.Contains(o.Body, marker)
	}
}

var defaultTable = map[int]Kind{
	400: KindBadRequest,
	401: KindUnauthorized,
	404: KindNotFound,
	409: KindConflict,
	422: KindUnprocessableContent,
}

// Classifier maps non-success outcomes to errors. It holds no mutable state
// and is safe for concurrent use.
type Classifier struct {
	table       map[int]Kind
	overrides   []Override
	placeholder string
	jsonAPI     bool
}

type Option func(*Classifier)

// WithOverride appends an override. Overrides run in the order added and
// the first match wins.
func WithOverride(o Override) Option {
	return func(c *Classifier) {
		if o.Match != nil {
			c.overrides = append(c.overrides, o)
		}
	}
}

// WithPlaceholder replaces DefaultBodyPlaceholder.
func WithPlaceholder(placeholder string) Option {
	return func(c *Classifier) { c.placeholder = placeholder }
}

// WithJSONAPIErrors renders JSON:API error documents as
// "title (detail), ..." in place of the raw body.
func WithJSONAPIErrors() Option {
	return func(c *Classifier) { c.jsonAPI = true }
}

func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{
		table:       defaultTable,
		placeholder: DefaultBodyPlaceholder,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewCatalogClassifier returns a classifier that treats any failed catalog
// lookup whose body carries CatalogNotFoundMarker as NotFound.
func NewCatalogClassifier(opts ...Option) *Classifier {
	return NewClassifier(append([]Option{WithOverride(Override{
		Name:  "catalog-record-not-found",
		Match: BodyContains(CatalogNotFoundMarker),
		Kind:  KindNotFound,
	})}, opts...)...)
}

// Kind resolves the kind for a non-success outcome.
func (c *Classifier) Kind(o Outcome) Kind {
	for _, ov := range c.overrides {
		if ov.Match(o) {
			return ov.Kind
		}
	}
	if o.Status == 0 {
		return KindConnectionFailure
	}
	if k, ok := c.table[o.Status]; ok {
		return k
	}
	return KindUnexpected
}

// Classify returns nil for a 2xx outcome and a classified *Error otherwise.
func (c *Classifier) Classify(o Outcome) *Error {
	if o.success() {
		return nil
	}
	return &Error{
		Kind:     c.Kind(o),
		Status:   o.Status,
		Message:  c.Message(o),
		ObjectID: o.ObjectID,
	}
}

// Message formats the operator-facing text for o.
func (c *Classifier) Message(o Outcome) string {
	var b strings.Builder
	if reason := strings.TrimSpace(o.Reason); reason != "" {
		b.WriteString(reason)
		b.WriteString(": ")
	}
	b.WriteString(strconv.Itoa(o.Status))
	b.WriteString(" (")
	b.WriteString(c.body(o.Body))
	b.WriteString(")")
	b.WriteString(forObject(o.ObjectID))
	return b.String()
}

// ConnectionFailure wraps an error raised before any HTTP status was
// received.
func (c *Classifier) ConnectionFailure(err error, objectID string) *Error {
	return &Error{
		Kind:     KindConnectionFailure,
		Message:  fmt.Sprintf("unable to reach dor-services-app: %v%s", err, forObject(objectID)),
		ObjectID: objectID,
		Cause:    err,
	}
}

// Malformed wraps a decoding failure of an otherwise successful reply.
func (c *Classifier) Malformed(o Outcome, cause error) *Error {
	return &Error{
		Kind:     KindMalformed,
		Status:   o.Status,
		Message:  fmt.Sprintf("unable to parse response: %d (%v)%s", o.Status, cause, forObject(o.ObjectID)),
		ObjectID: o.ObjectID,
		Cause:    cause,
	}
}

func (c *Classifier) body(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return c.placeholder
	}
	if c.jsonAPI {
		if rendered, ok := renderJSONAPIErrors(raw); ok {
			return rendered
		}
	}
	return raw
}

func forObject(objectID string) string {
	if objectID == "" {
		return ""
	}
	return " for " + objectID
}

type jsonAPIDocument struct {
	Errors []struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

func renderJSONAPIErrors(raw string) (string, bool) {
	var doc jsonAPIDocument
	if err := (&serde.JsonSerde{}).DeserializeBinary([]byte(raw), &doc); err != nil || len(doc.Errors) == 0 {
		return "", false
	}
	parts := make([]string, 0, len(doc.Errors))
	for _, e := range doc.Errors {
		parts = append(parts, fmt.Sprintf("%s (%s)", e.Title, e.Detail))
	}
	return strings.Join(parts, ", "), true
}

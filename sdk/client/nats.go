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
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/nats-io/nats.go"

	"github.com/sul-dlss/dor-services-client-sub000/api"
)

var _ Invoker = (*NATSInvoker)(nil)

// DefaultRequestTimeout bounds a request whose context has no deadline.
const DefaultRequestTimeout = 30 * time.Second

// NATSInvoker sends requests over NATS request/reply. The HTTP method picks
// the subject and the rest of the request travels in headers; the responder
// answers with the status and reason in headers and the body as data.
type NATSInvoker struct {
	nc      *nats.Conn
	prefix  string
	timeout time.Duration
	logger  *slog.Logger
}

type NATSOption func(*NATSInvoker)

// WithSubjectPrefix replaces api.RequestSubjectPrefix.
func WithSubjectPrefix(prefix string) NATSOption {
	return func(i *NATSInvoker) {
		if prefix = strings.Trim(prefix, "."); prefix != "" {
			i.prefix = prefix
		}
	}
}

func WithRequestTimeout(d time.Duration) NATSOption {
	return func(i *NATSInvoker) {
		if d > 0 {
			i.timeout = d
		}
	}
}

func WithNATSLogger(l *slog.Logger) NATSOption {
	return func(i *NATSInvoker) {
		if l != nil {
			i.logger = l
		}
	}
}

func NewNATSInvoker(nc *nats.Conn, opts ...NATSOption) (*NATSInvoker, error) {
	if nc == nil {
		return nil, errors.New("NATS invoker requires an established connection")
	}
	i := &NATSInvoker{
		nc:      nc,
		prefix:  api.RequestSubjectPrefix,
		timeout: DefaultRequestTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// Subject returns the subject a request with the given method is sent on.
func (i *NATSInvoker) Subject(method string) string {
	return i.prefix + "." + strings.ToUpper(method)
}

// Invoke implements Invoker.
func (i *NATSInvoker) Invoke(ctx context.Context, req *api.Request) (*api.Reply, error) {
	msg, requestID, err := i.message(req)
	if err != nil {
		return nil, err
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	log := i.logger.With("request_id", requestID, "subject", msg.Subject, "path", req.Path)
	log.Debug("sending request")

	resp, err := i.nc.RequestMsgWithContext(ctx, msg)
	if err != nil {
		log.Debug("request failed", "error", err)
		return nil, fmt.Errorf("request %s %s: %w", req.Method, req.Path, err)
	}
	return replyFromMsg(resp), nil
}

func (i *NATSInvoker) message(req *api.Request) (*nats.Msg, string, error) {
	if req == nil || req.Method == "" || req.Path == "" {
		return nil, "", errors.New("request requires a method and a path")
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, "", fmt.Errorf("generate request id: %w", err)
	}

	msg := nats.NewMsg(i.Subject(req.Method))
	for k, v := range req.Header {
		msg.Header.Set(k, v)
	}
	msg.Header.Set(api.MethodHeader, strings.ToUpper(req.Method))
	msg.Header.Set(api.PathHeader, req.Path)
	msg.Header.Set(api.RequestIDHeader, id.String())
	if req.ObjectID != "" {
		msg.Header.Set(api.ObjectIDHeader, req.ObjectID)
	}
	msg.Data = req.Body
	return msg, id.String(), nil
}

// replyFromMsg reads the envelope back out of a response. A missing or
// unparsable status header leaves Status at zero.
func replyFromMsg(msg *nats.Msg) *api.Reply {
	reply := &api.Reply{
		Header: make(map[string]string, len(msg.Header)),
		Body:   msg.Data,
	}
	for k := range msg.Header {
		reply.Header[k] = msg.Header.Get(k)
	}
	if raw := msg.Header.Get(api.StatusHeader); raw != "" {
		if status, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			reply.Status = status
		}
	}
	reply.Reason = msg.Header.Get(api.ReasonHeader)
	return reply
}

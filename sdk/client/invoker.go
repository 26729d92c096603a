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

	"github.com/sul-dlss/dor-services-client-sub000/api"
)

// Invoker carries one request to the server. It returns a transport error
// only when no reply could be obtained; HTTP failures come back as a Reply
// with a non-2xx Status.
type Invoker interface {
	Invoke(ctx context.Context, req *api.Request) (*api.Reply, error)
}

// InvokerFunc adapts a function to Invoker.
type InvokerFunc func(ctx context.Context, req *api.Request) (*api.Reply, error)

func (f InvokerFunc) Invoke(ctx context.Context, req *api.Request) (*api.Reply, error) {
	return f(ctx, req)
}

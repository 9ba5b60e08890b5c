// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package trace

import (
	"context"
	"fmt"
	"github.com/orbs-network/scribe/log"
	"net/http"
	"regexp"
	"sync/atomic"
	"time"
)

type entryPointKeyType string

const entryPointKey entryPointKeyType = "ep"
const RequestId = "request-id"
const RequestIdHeader = "X-Request-Id"

var requestCounter uint64

// only ids that are safe to echo back and log are taken from clients
var clientRequestIdPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,64}$`)

type Context struct {
	created   time.Time
	name      string
	requestId string
}

func NewContext(parent context.Context, name string) context.Context {
	now := time.Now()
	return withTrace(parent, name, fmt.Sprintf("%s-%d-%d", name, now.UnixNano(), atomic.AddUint64(&requestCounter, 1)), now)
}

// NewFromRequest keeps the client supplied request id when it has a sane format
func NewFromRequest(parent context.Context, name string, r *http.Request) context.Context {
	if id := r.Header.Get(RequestIdHeader); clientRequestIdPattern.MatchString(id) {
		return withTrace(parent, name, id, time.Now())
	}
	return NewContext(parent, name)
}

func withTrace(parent context.Context, name string, requestId string, created time.Time) context.Context {
	return context.WithValue(parent, entryPointKey, &Context{
		name:      name,
		created:   created,
		requestId: requestId,
	})
}

func FromContext(ctx context.Context) (e *Context, ok bool) {
	e, ok = ctx.Value(entryPointKey).(*Context)
	return
}

func (c *Context) RequestId() string {
	return c.requestId
}

func (c *Context) Elapsed() time.Duration {
	return time.Since(c.created)
}

func (c *Context) WriteTraceToResponse(w http.ResponseWriter) {
	w.Header().Set(RequestIdHeader, c.requestId)
}

func LogFieldFrom(ctx context.Context) *log.Field {
	if trace, ok := FromContext(ctx); ok {
		return log.String(RequestId, trace.requestId)
	} else {
		return log.String(RequestId, "NO-CONTEXT")
	}
}

// Copyright 2025 Anapaya Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package flow

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"

	"github.com/sdnprobe/coloring/pkg/log"
	"github.com/sdnprobe/coloring/pkg/metrics"
	"github.com/sdnprobe/coloring/pkg/private/prom"
	"github.com/sdnprobe/coloring/pkg/private/serrors"
)

// Outcome is the result of sending one request.
type Outcome struct {
	Request Request
	Time    time.Time
	// Err is nil if the request was accepted.
	Err error
}

// Journal records the outcome of every request.
type Journal interface {
	Record(ctx context.Context, o Outcome) error
}

// Metrics are the metrics of the emitter. All fields are optional.
type Metrics struct {
	// Requests counts requests by action and result.
	Requests metrics.Counter
}

// Emitter sends one request per switch of a batch. Failed requests are not
// retried; they are logged, journaled and kept in the failure cache.
type Emitter struct {
	Sender   Sender
	Journal  Journal
	Failures *FailureCache
	Metrics  Metrics
}

// Emit sends the batch. Switches are processed in id order and switches
// without flows are skipped. The returned list contains one error per failed
// request.
func (e *Emitter) Emit(ctx context.Context, action RequestAction, batch Batch) serrors.List {
	if len(batch) == 0 {
		return nil
	}
	span, ctx := opentracing.StartSpanFromContext(ctx, "flow.emit")
	defer span.Finish()
	span.SetTag("action", string(action))
	logger := log.FromCtx(ctx)

	ids := make([]string, 0, len(batch))
	for id := range batch {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	var errs serrors.List
	for _, id := range ids {
		flows := batch[id]
		if len(flows) == 0 {
			continue
		}
		req := Request{SwitchID: id, Action: action, Flows: flows, Force: true}
		err := e.Sender.Send(ctx, req)
		o := Outcome{Request: req, Time: time.Now(), Err: err}
		if e.Journal != nil {
			if jErr := e.Journal.Record(ctx, o); jErr != nil {
				logger.Error("Failed to journal flow request", "switch", id, "err", jErr)
			}
		}
		metrics.CounterInc(metrics.CounterWith(e.Metrics.Requests,
			prom.LabelAction, string(action), prom.LabelResult, ErrorToResult(err)))
		if err != nil {
			body, _ := req.MarshalBody()
			logger.Error("Flow request failed", "switch", id, "action", action,
				"flows", string(body), "err", err)
			e.Failures.Add(o)
			errs = append(errs, serrors.Wrap("sending flow request", err,
				"switch", id, "action", action))
			continue
		}
		logger.Debug("Flow request sent", "switch", id, "action", action, "flows", len(flows))
	}
	if len(errs) > 0 {
		ext.Error.Set(span, true)
	}
	return errs
}

// ErrorToResult classifies a request error into a metric result label.
func ErrorToResult(err error) string {
	switch {
	case err == nil:
		return prom.Success
	case serrors.IsTimeout(err), errors.Is(err, context.DeadlineExceeded):
		return prom.ErrTimeout
	case errors.Is(err, ErrDelivery):
		return prom.ErrNetwork
	default:
		return prom.ErrNotClassified
	}
}

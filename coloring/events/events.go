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

// Package events maps inbound controller events to synchronizer operations
// and publishes the events the coloring service emits.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"maps"
	"slices"

	"github.com/opentracing/opentracing-go"

	"github.com/sdnprobe/coloring/coloring/flow"
	"github.com/sdnprobe/coloring/coloring/topology"
	"github.com/sdnprobe/coloring/pkg/log"
	"github.com/sdnprobe/coloring/pkg/metrics"
	"github.com/sdnprobe/coloring/pkg/private/prom"
	"github.com/sdnprobe/coloring/pkg/private/serrors"
)

// Names of the inbound events.
const (
	SwitchDisabled  = "topology.switch.disabled"
	LinkDisabled    = "topology.link.disabled"
	TopologyUpdated = "topology.updated"
	TableEnabled    = "multi_table.enable_table"
)

// TableEnabledAck is the name of the event published after a table offer
// was accepted.
const TableEnabledAck = "coloring.enable_table"

var (
	// ErrUnknownEvent indicates an event without handler.
	ErrUnknownEvent = serrors.New("unknown event")
	// ErrInvalidPayload indicates an event whose content cannot be decoded.
	ErrInvalidPayload = serrors.New("invalid event payload")
)

// Event is an event as exchanged with the controller.
type Event struct {
	Name    string          `json:"name"`
	Content json.RawMessage `json:"content"`
}

// Handler processes decoded events.
type Handler interface {
	HandleTopology(ctx context.Context, snap topology.Snapshot) flow.Batch
	HandleLinkDisabled(ctx context.Context, a, b string) error
	HandleSwitchDisabled(ctx context.Context, id string) error
	HandleTableEnabled(ctx context.Context, offer map[string]uint8) error
}

// HandlerFunc handles the content of one event.
type HandlerFunc func(ctx context.Context, content json.RawMessage) error

// Metrics are the dispatcher metrics. All fields are optional.
type Metrics struct {
	// Events counts dispatched events by event name and result.
	Events metrics.Counter
}

// Dispatcher dispatches events by name.
type Dispatcher struct {
	handlers map[string]HandlerFunc
	metrics  Metrics
}

type switchDisabledContent struct {
	DPID string `json:"dpid"`
}

type linkDisabledContent struct {
	Link *topology.Link `json:"link"`
}

type tableEnabledContent struct {
	Coloring map[string]uint8 `json:"coloring"`
}

// NewDispatcher creates a dispatcher with a handler for every inbound event.
func NewDispatcher(h Handler, m Metrics) *Dispatcher {
	return &Dispatcher{
		metrics: m,
		handlers: map[string]HandlerFunc{
			SwitchDisabled: func(ctx context.Context, raw json.RawMessage) error {
				var c switchDisabledContent
				if err := decode(raw, &c); err != nil {
					return err
				}
				if c.DPID == "" {
					return serrors.Join(ErrInvalidPayload, nil, "missing", "dpid")
				}
				return h.HandleSwitchDisabled(ctx, c.DPID)
			},
			LinkDisabled: func(ctx context.Context, raw json.RawMessage) error {
				var c linkDisabledContent
				if err := decode(raw, &c); err != nil {
					return err
				}
				if c.Link == nil || c.Link.A == "" || c.Link.B == "" {
					return serrors.Join(ErrInvalidPayload, nil, "missing", "link endpoints")
				}
				return h.HandleLinkDisabled(ctx, c.Link.A, c.Link.B)
			},
			TopologyUpdated: func(ctx context.Context, raw json.RawMessage) error {
				var doc topology.Document
				if err := decode(raw, &doc); err != nil {
					return err
				}
				h.HandleTopology(ctx, doc.Topology)
				return nil
			},
			TableEnabled: func(ctx context.Context, raw json.RawMessage) error {
				var c tableEnabledContent
				if err := decode(raw, &c); err != nil {
					return err
				}
				return h.HandleTableEnabled(ctx, c.Coloring)
			},
		},
	}
}

// Names returns the names of all handled events in order.
func (d *Dispatcher) Names() []string {
	return slices.Sorted(maps.Keys(d.handlers))
}

// Dispatch runs the handler registered for the event.
func (d *Dispatcher) Dispatch(ctx context.Context, e Event) error {
	handler, ok := d.handlers[e.Name]
	if !ok {
		d.count("unknown", prom.ErrInvalidReq)
		return serrors.Join(ErrUnknownEvent, nil, "name", e.Name)
	}
	span, ctx := opentracing.StartSpanFromContext(ctx, "events.dispatch")
	defer span.Finish()
	span.SetTag("event", e.Name)
	ctx, logger := log.WithLabels(ctx, "event", e.Name)
	logger.Debug("Dispatching event")

	err := handler(ctx, e.Content)
	switch {
	case err == nil:
		d.count(e.Name, prom.Success)
	case serrors.IsTimeout(err):
		d.count(e.Name, prom.ErrTimeout)
	case errors.Is(err, ErrInvalidPayload):
		d.count(e.Name, prom.ErrParse)
	default:
		d.count(e.Name, prom.ErrInternal)
	}
	if err != nil {
		return serrors.Wrap("handling event", err, "name", e.Name)
	}
	return nil
}

func (d *Dispatcher) count(name, result string) {
	metrics.CounterInc(metrics.CounterWith(d.metrics.Events,
		prom.LabelEvent, name, prom.LabelResult, result))
}

func decode(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return serrors.Join(ErrInvalidPayload, nil, "missing", "content")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return serrors.Join(ErrInvalidPayload, err)
	}
	return nil
}

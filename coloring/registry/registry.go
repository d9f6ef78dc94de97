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

// Package registry holds the authoritative state of every tracked switch:
// its color, its current neighbors and the flows installed for them.
//
// All access goes through Registry.Do, which runs a function while holding
// the registry lock. Several operations can be grouped in one critical
// section:
//
//	reg.Do(func(tx *registry.Tx) {
//		tx.Upsert(id, c)
//		tx.ClearNeighbors(id)
//	})
package registry

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/sdnprobe/coloring/coloring/color"
	"github.com/sdnprobe/coloring/coloring/flow"
	"github.com/sdnprobe/coloring/pkg/metrics"
	"github.com/sdnprobe/coloring/pkg/private/serrors"
)

var (
	// ErrNotFound indicates that a switch or flow is not tracked.
	ErrNotFound = serrors.New("not tracked")
	// ErrSelfEdge indicates an edge whose endpoints are the same switch.
	ErrSelfEdge = serrors.New("self edge")
	// ErrNotEmpty is matched by every *NotEmptyError.
	ErrNotEmpty = serrors.New("switch still has neighbors or flows")
)

// NotEmptyError is returned when a switch that still has neighbors or flows
// is removed. The switch is left untouched.
type NotEmptyError struct {
	ID        string
	Neighbors []string
	Flows     []string
}

func (e *NotEmptyError) Error() string {
	return fmt.Sprintf("switch still has neighbors or flows {id=%s; neighbors=[%s]; flows=[%s]}",
		e.ID, strings.Join(e.Neighbors, " "), strings.Join(e.Flows, " "))
}

// Is makes errors.Is(err, ErrNotEmpty) true.
func (e *NotEmptyError) Is(target error) bool {
	return target == ErrNotEmpty
}

// Switch is a snapshot of a tracked switch.
type Switch struct {
	ID    string
	Color uint64
	// Neighbors in id order.
	Neighbors []string
	// Flows installed on this switch, keyed by neighbor id.
	Flows map[string]flow.Descriptor
}

type record struct {
	color     uint64
	neighbors map[string]struct{}
	flows     map[string]flow.Descriptor
}

func (r *record) snapshot(id string) Switch {
	flows := make(map[string]flow.Descriptor, len(r.flows))
	for nb, d := range r.flows {
		flows[nb] = d.Clone()
	}
	return Switch{
		ID:        id,
		Color:     r.color,
		Neighbors: slices.Sorted(maps.Keys(r.neighbors)),
		Flows:     flows,
	}
}

// Metrics are the registry metrics. All fields are optional.
type Metrics struct {
	TrackedSwitches metrics.Gauge
	InstalledFlows  metrics.Gauge
}

// Registry is the switch registry. The zero value is not usable, use New.
type Registry struct {
	mtx      sync.Mutex
	switches map[string]*record
	metrics  Metrics
}

// New creates an empty registry.
func New(m Metrics) *Registry {
	return &Registry{
		switches: make(map[string]*record),
		metrics:  m,
	}
}

// Do runs fn while holding the registry lock. The Tx must not be used after
// fn returns. fn must not block on I/O.
func (r *Registry) Do(fn func(tx *Tx)) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	fn(&Tx{r: r})
	r.updateMetrics()
}

func (r *Registry) updateMetrics() {
	if r.metrics.TrackedSwitches == nil && r.metrics.InstalledFlows == nil {
		return
	}
	flows := 0
	for _, rec := range r.switches {
		flows += len(rec.flows)
	}
	metrics.GaugeSet(r.metrics.TrackedSwitches, float64(len(r.switches)))
	metrics.GaugeSet(r.metrics.InstalledFlows, float64(flows))
}

// Get returns a snapshot of the switch.
func (r *Registry) Get(id string) (Switch, bool) {
	var sw Switch
	var ok bool
	r.Do(func(tx *Tx) {
		sw, ok = tx.Get(id)
	})
	return sw, ok
}

// IDs returns the ids of all tracked switches in order.
func (r *Registry) IDs() []string {
	var ids []string
	r.Do(func(tx *Tx) {
		ids = tx.IDs()
	})
	return ids
}

// Colors returns the color of every tracked switch encoded for field.
func (r *Registry) Colors(field color.Field) map[string]color.Value {
	colors := make(map[string]color.Value)
	r.Do(func(tx *Tx) {
		for id, rec := range tx.r.switches {
			colors[id] = color.Encode(rec.color, field)
		}
	})
	return colors
}

// Tx gives access to the registry state inside Do.
type Tx struct {
	r *Registry
}

// Upsert tracks the switch with the given color. It returns true if the
// switch was not tracked before. The color of a tracked switch never
// changes.
func (tx *Tx) Upsert(id string, c uint64) bool {
	if _, ok := tx.r.switches[id]; ok {
		return false
	}
	tx.r.switches[id] = &record{
		color:     c,
		neighbors: make(map[string]struct{}),
		flows:     make(map[string]flow.Descriptor),
	}
	return true
}

// Tracked reports whether the switch is tracked.
func (tx *Tx) Tracked(id string) bool {
	_, ok := tx.r.switches[id]
	return ok
}

// ClearNeighbors empties the neighbor set of the switch. Flows are kept.
func (tx *Tx) ClearNeighbors(id string) error {
	rec, err := tx.lookup(id)
	if err != nil {
		return err
	}
	clear(rec.neighbors)
	return nil
}

// AddNeighborEdge makes a and b neighbors of each other. Both switches must
// be tracked, otherwise nothing changes.
func (tx *Tx) AddNeighborEdge(a, b string) error {
	if a == b {
		return serrors.Join(ErrSelfEdge, nil, "switch", a)
	}
	recA, err := tx.lookup(a)
	if err != nil {
		return err
	}
	recB, err := tx.lookup(b)
	if err != nil {
		return err
	}
	recA.neighbors[b] = struct{}{}
	recB.neighbors[a] = struct{}{}
	return nil
}

// RemoveNeighborEdge removes the edge between a and b in both directions.
// Untracked endpoints are ignored.
func (tx *Tx) RemoveNeighborEdge(a, b string) {
	if rec, ok := tx.r.switches[a]; ok {
		delete(rec.neighbors, b)
	}
	if rec, ok := tx.r.switches[b]; ok {
		delete(rec.neighbors, a)
	}
}

// Get returns a snapshot of the switch.
func (tx *Tx) Get(id string) (Switch, bool) {
	rec, ok := tx.r.switches[id]
	if !ok {
		return Switch{}, false
	}
	return rec.snapshot(id), true
}

// Color returns the color of the switch.
func (tx *Tx) Color(id string) (uint64, bool) {
	rec, ok := tx.r.switches[id]
	if !ok {
		return 0, false
	}
	return rec.color, true
}

// Remove stops tracking the switch. A switch that still has neighbors or
// flows is not removed and a *NotEmptyError is returned.
func (tx *Tx) Remove(id string) error {
	rec, err := tx.lookup(id)
	if err != nil {
		return err
	}
	if len(rec.neighbors) != 0 || len(rec.flows) != 0 {
		return &NotEmptyError{
			ID:        id,
			Neighbors: slices.Sorted(maps.Keys(rec.neighbors)),
			Flows:     slices.Sorted(maps.Keys(rec.flows)),
		}
	}
	delete(tx.r.switches, id)
	return nil
}

// HasFlow reports whether the switch has a flow for the neighbor.
func (tx *Tx) HasFlow(sw, neighbor string) bool {
	rec, ok := tx.r.switches[sw]
	if !ok {
		return false
	}
	_, ok = rec.flows[neighbor]
	return ok
}

// RecordFlow stores the flow installed on sw for neighbor, replacing any
// previous one.
func (tx *Tx) RecordFlow(sw, neighbor string, d flow.Descriptor) error {
	rec, err := tx.lookup(sw)
	if err != nil {
		return err
	}
	rec.flows[neighbor] = d.Clone()
	return nil
}

// DropFlow removes and returns the flow installed on sw for neighbor.
func (tx *Tx) DropFlow(sw, neighbor string) (flow.Descriptor, error) {
	rec, err := tx.lookup(sw)
	if err != nil {
		return flow.Descriptor{}, err
	}
	d, ok := rec.flows[neighbor]
	if !ok {
		return flow.Descriptor{}, serrors.Join(ErrNotFound, nil,
			"switch", sw, "neighbor", neighbor)
	}
	delete(rec.flows, neighbor)
	return d, nil
}

// UpdateFlows calls fn for every stored flow. fn may modify the descriptor
// in place, except for its Match.
func (tx *Tx) UpdateFlows(fn func(sw, neighbor string, d *flow.Descriptor)) {
	for id, rec := range tx.r.switches {
		for nb, d := range rec.flows {
			fn(id, nb, &d)
			rec.flows[nb] = d
		}
	}
}

// Range calls fn for every tracked switch in id order until fn returns
// false.
func (tx *Tx) Range(fn func(sw Switch) bool) {
	for _, id := range tx.IDs() {
		if !fn(tx.r.switches[id].snapshot(id)) {
			return
		}
	}
}

// IDs returns the ids of all tracked switches in order.
func (tx *Tx) IDs() []string {
	return slices.Sorted(maps.Keys(tx.r.switches))
}

// Len returns the number of tracked switches.
func (tx *Tx) Len() int {
	return len(tx.r.switches)
}

func (tx *Tx) lookup(id string) (*record, error) {
	rec, ok := tx.r.switches[id]
	if !ok {
		return nil, serrors.Join(ErrNotFound, nil, "switch", id)
	}
	return rec, nil
}

// Copyright 2020 Anapaya Systems
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

package metrics

import (
	"sort"
	"strings"
	"sync"
)

// family keeps one node per distinct label set. The zero label set is the
// root node.
type family struct {
	mtx   sync.Mutex
	nodes map[string]*node
}

func newFamily() *family {
	return &family{nodes: map[string]*node{}}
}

func (f *family) get(lvs labelValuesSlice) *node {
	key := labelKey(lvs)
	f.mtx.Lock()
	defer f.mtx.Unlock()
	n, ok := f.nodes[key]
	if !ok {
		n = &node{}
		f.nodes[key] = n
	}
	return n
}

// labelKey renders the label pairs in a canonical order so that With calls
// with the same labels in a different order hit the same node.
func labelKey(lvs labelValuesSlice) string {
	pairs := make([]string, 0, len(lvs)/2)
	for i := 0; i+1 < len(lvs); i += 2 {
		pairs = append(pairs, lvs[i]+"="+lvs[i+1])
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}

// node represents the shared implementation of gauges and counters.
type node struct {
	mtx sync.Mutex
	v   float64
}

func (b *node) add(delta float64, canBeNegative bool) {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	if !canBeNegative && delta < 0 {
		panic("counter increment value is < 0")
	}
	b.v += delta
}

func (b *node) set(v float64) {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	b.v = v
}

func (b *node) value() float64 {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.v
}

// TestCounter implements a counter for use in tests. Counters derived with
// With share state with their parent: the same label set always maps to the
// same value.
type TestCounter struct {
	fam *family
	lvs labelValuesSlice
}

// NewTestCounter creates a new counter for use in tests.
func NewTestCounter() *TestCounter {
	return &TestCounter{fam: newFamily()}
}

// With returns the counter for the given labels.
func (c *TestCounter) With(labelValues ...string) Counter {
	return &TestCounter{fam: c.fam, lvs: c.lvs.With(labelValues...)}
}

// Add increases the value of the counter. Negative deltas panic.
func (c *TestCounter) Add(delta float64) {
	c.fam.get(c.lvs).add(delta, false)
}

// CounterValue extracts the value out of a TestCounter. If the argument is not
// a *TestCounter, CounterValue will panic.
func CounterValue(c Counter) float64 {
	tc := c.(*TestCounter)
	return tc.fam.get(tc.lvs).value()
}

// TestGauge implements a gauge for use in tests.
type TestGauge struct {
	fam *family
	lvs labelValuesSlice
}

// NewTestGauge creates a new gauge for use in tests.
func NewTestGauge() *TestGauge {
	return &TestGauge{fam: newFamily()}
}

// With returns the gauge for the given labels.
func (g *TestGauge) With(labelValues ...string) Gauge {
	return &TestGauge{fam: g.fam, lvs: g.lvs.With(labelValues...)}
}

// Set sets the value of the gauge.
func (g *TestGauge) Set(v float64) {
	g.fam.get(g.lvs).set(v)
}

// Add changes the value of the gauge by delta.
func (g *TestGauge) Add(delta float64) {
	g.fam.get(g.lvs).add(delta, true)
}

// GaugeValue extracts the value out of a TestGauge. If the argument is not a
// *TestGauge, GaugeValue will panic.
func GaugeValue(g Gauge) float64 {
	tg := g.(*TestGauge)
	return tg.fam.get(tg.lvs).value()
}

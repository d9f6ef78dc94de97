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
	"github.com/prometheus/client_golang/prometheus"
)

// NewPromGauge wraps a prometheus gauge vector as a gauge.
// Returns nil, if gv is nil.
func NewPromGauge(gv *prometheus.GaugeVec) Gauge {
	if gv == nil {
		return nil
	}
	return &gauge{gv: gv}
}

// NewPromCounter wraps a prometheus counter vector as a counter.
// Returns nil if cv is nil.
func NewPromCounter(cv *prometheus.CounterVec) Counter {
	if cv == nil {
		return nil
	}
	return &counter{cv: cv}
}

// NewPromHistogram wraps a prometheus histogram vector as a histogram.
// Returns nil if hv is nil.
func NewPromHistogram(hv *prometheus.HistogramVec) Histogram {
	if hv == nil {
		return nil
	}
	return &histogram{hv: hv}
}

// labelValuesSlice holds alternating label names and values. With never
// mutates the receiver.
type labelValuesSlice []string

func (lvs labelValuesSlice) With(labelValues ...string) labelValuesSlice {
	if len(labelValues)%2 != 0 {
		labelValues = append(labelValues, "unknown")
	}
	result := make(labelValuesSlice, len(lvs), len(lvs)+len(labelValues))
	copy(result, lvs)
	return append(result, labelValues...)
}

func (lvs labelValuesSlice) labels() prometheus.Labels {
	labels := prometheus.Labels{}
	for i := 0; i+1 < len(lvs); i += 2 {
		labels[lvs[i]] = lvs[i+1]
	}
	return labels
}

type gauge struct {
	gv  *prometheus.GaugeVec
	lvs labelValuesSlice
}

func (g *gauge) With(labelValues ...string) Gauge {
	return &gauge{gv: g.gv, lvs: g.lvs.With(labelValues...)}
}

func (g *gauge) Set(value float64) {
	g.gv.With(g.lvs.labels()).Set(value)
}

func (g *gauge) Add(delta float64) {
	g.gv.With(g.lvs.labels()).Add(delta)
}

type counter struct {
	cv  *prometheus.CounterVec
	lvs labelValuesSlice
}

func (c *counter) With(labelValues ...string) Counter {
	return &counter{cv: c.cv, lvs: c.lvs.With(labelValues...)}
}

func (c *counter) Add(delta float64) {
	c.cv.With(c.lvs.labels()).Add(delta)
}

type histogram struct {
	hv  *prometheus.HistogramVec
	lvs labelValuesSlice
}

func (h *histogram) With(labelValues ...string) Histogram {
	return &histogram{hv: h.hv, lvs: h.lvs.With(labelValues...)}
}

func (h *histogram) Observe(value float64) {
	h.hv.With(h.lvs.labels()).Observe(value)
}

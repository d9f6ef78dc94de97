// Copyright 2018 Anapaya Systems
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

// Package prom contains some utility functions for dealing with prometheus
// metrics.
package prom

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace is the namespace of all coloring metrics.
const Namespace = "coloring"

// Common label names.
const (
	// LabelResult is the label for result classifications.
	LabelResult = "result"
	// LabelAction is the label for the flow request action (install|delete).
	LabelAction = "action"
	// LabelReason is the label for the reason of a rejection.
	LabelReason = "reason"
	// LabelEvent is the label for the name of an inbound or periodic event.
	LabelEvent = "event"
)

// Common result values.
const (
	// Success is no error.
	Success = "ok_success"
	// ErrInternal is an internal error.
	ErrInternal = "err_internal"
	// ErrInvalidReq is an invalid request.
	ErrInvalidReq = "err_invalid_request"
	// ErrNotClassified is an error that is not further classified.
	ErrNotClassified = "err_not_classified"
	// ErrParse failed to parse request.
	ErrParse = "err_parse"
	// ErrTimeout is a timeout error.
	ErrTimeout = "err_timeout"
	// ErrNetwork is used for errors when sending something over the network.
	ErrNetwork = "err_network"
	// ErrNotFound is used for errors where a resource is not found.
	ErrNotFound = "err_not_found"
)

// DefaultLatencyBuckets 10ms, 20ms, 40ms, ... 5.12s, 10.24s.
var DefaultLatencyBuckets = []float64{0.01, 0.02, 0.04, 0.08, 0.16, 0.32, 0.64,
	1.28, 2.56, 5.12, 10.24}

// SafeRegister registers c and returns the registered collector. If c was
// already registered the already registered collector is returned. In case of
// any other error this method panics (as MustRegister).
func SafeRegister(c prometheus.Collector) prometheus.Collector {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector
		}
		panic(err)
	}
	return c
}

// NewCounterVec creates a new prometheus counter vec in the coloring
// namespace that is registered with the default registry.
func NewCounterVec(subsystem, name, help string, labelNames []string) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		},
		labelNames,
	)
	return SafeRegister(c).(*prometheus.CounterVec)
}

// NewGaugeVec creates a new prometheus gauge vec in the coloring namespace
// that is registered with the default registry.
func NewGaugeVec(subsystem, name, help string, labelNames []string) *prometheus.GaugeVec {
	g := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		},
		labelNames,
	)
	return SafeRegister(g).(*prometheus.GaugeVec)
}

// NewHistogramVec creates a new prometheus histogram vec in the coloring
// namespace that is registered with the default registry.
func NewHistogramVec(subsystem, name, help string, labelNames []string,
	buckets []float64) *prometheus.HistogramVec {

	h := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		},
		labelNames,
	)
	return SafeRegister(h).(*prometheus.HistogramVec)
}

// ExportElementID exports the element ID as configured in the config file.
func ExportElementID(id string) {
	NewGaugeVec("", "elem_id", "The element ID from the config file",
		[]string{"cfg"}).WithLabelValues(id).Set(1)
}

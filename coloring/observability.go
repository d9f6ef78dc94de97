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

// Package coloring wires the components of the coloring service.
package coloring

import (
	"io"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/sdnprobe/coloring/coloring/events"
	"github.com/sdnprobe/coloring/coloring/flow"
	"github.com/sdnprobe/coloring/coloring/journal"
	"github.com/sdnprobe/coloring/coloring/registry"
	"github.com/sdnprobe/coloring/coloring/synchronizer"
	"github.com/sdnprobe/coloring/coloring/topology"
	"github.com/sdnprobe/coloring/pkg/metrics"
	"github.com/sdnprobe/coloring/pkg/private/prom"
	"github.com/sdnprobe/coloring/private/env"
	"github.com/sdnprobe/coloring/private/periodic"
	"github.com/sdnprobe/coloring/private/storage/cleaner"
)

// InitTracer initializes the global tracer.
func InitTracer(tracing env.Tracing, id string) (io.Closer, error) {
	tracer, trCloser, err := tracing.NewTracer(id)
	if err != nil {
		return nil, err
	}
	opentracing.SetGlobalTracer(tracer)
	return trCloser, nil
}

// Metrics defines the metrics exposed by the coloring service.
type Metrics struct {
	FlowRequestsTotal      *prometheus.CounterVec
	TrackedSwitches        *prometheus.GaugeVec
	InstalledFlows         *prometheus.GaugeVec
	RejectionsTotal        *prometheus.CounterVec
	TopologyUpdatesTotal   *prometheus.CounterVec
	TopologyFetchesTotal   *prometheus.CounterVec
	EventsTotal            *prometheus.CounterVec
	JournalQueriesTotal    *prometheus.CounterVec
	JournalCleanerRuns     *prometheus.CounterVec
	JournalCleanerErrors   *prometheus.CounterVec
	JournalCleanerDeleted  *prometheus.CounterVec
	PeriodicEventsTotal    *prometheus.CounterVec
	PeriodicPeriodSeconds  *prometheus.GaugeVec
	PeriodicRuntimeSeconds *prometheus.GaugeVec
	PeriodicStartTime      *prometheus.GaugeVec
}

// NewMetrics creates and registers the metrics of the service.
func NewMetrics() *Metrics {
	return &Metrics{
		FlowRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coloring_flow_requests_total",
				Help: "Total number of flow requests sent to the flow-programming service.",
			},
			[]string{prom.LabelAction, prom.LabelResult},
		),
		TrackedSwitches: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "coloring_tracked_switches",
				Help: "Number of switches in the registry.",
			},
			[]string{},
		),
		InstalledFlows: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "coloring_installed_flows",
				Help: "Number of coloring flows recorded as installed.",
			},
			[]string{},
		),
		RejectionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coloring_rejections_total",
				Help: "Total number of rejected updates and events.",
			},
			[]string{prom.LabelReason},
		),
		TopologyUpdatesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coloring_topology_updates_total",
				Help: "Total number of processed topology snapshots.",
			},
			[]string{prom.LabelResult},
		),
		TopologyFetchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coloring_topology_fetches_total",
				Help: "Total number of topology fetches.",
			},
			[]string{prom.LabelResult},
		),
		EventsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coloring_events_total",
				Help: "Total number of dispatched inbound events.",
			},
			[]string{prom.LabelEvent, prom.LabelResult},
		),
		JournalQueriesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coloring_journal_queries_total",
				Help: "Total queries to the journal database.",
			},
			[]string{"operation", prom.LabelResult},
		),
		JournalCleanerRuns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coloring_journal_cleaner_runs_total",
				Help: "Total number of successful journal cleaner runs.",
			},
			[]string{},
		),
		JournalCleanerErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coloring_journal_cleaner_errors_total",
				Help: "Total number of failed journal cleaner runs.",
			},
			[]string{},
		),
		JournalCleanerDeleted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coloring_journal_cleaner_deleted_total",
				Help: "Total number of journal entries deleted by the cleaner.",
			},
			[]string{},
		),
		PeriodicEventsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coloring_periodic_events_total",
				Help: "Total number of events of the periodic tasks.",
			},
			[]string{"task", prom.LabelEvent},
		),
		PeriodicPeriodSeconds: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "coloring_periodic_period_seconds",
				Help: "The period of the periodic tasks.",
			},
			[]string{"task"},
		),
		PeriodicRuntimeSeconds: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "coloring_periodic_runtime_seconds",
				Help: "The runtime of the last run of the periodic tasks.",
			},
			[]string{"task"},
		),
		PeriodicStartTime: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "coloring_periodic_start_time_seconds",
				Help: "The start time of the periodic tasks.",
			},
			[]string{"task"},
		),
	}
}

// Registry returns the registry metrics.
func (m *Metrics) Registry() registry.Metrics {
	return registry.Metrics{
		TrackedSwitches: metrics.NewPromGauge(m.TrackedSwitches),
		InstalledFlows:  metrics.NewPromGauge(m.InstalledFlows),
	}
}

// Emitter returns the flow emitter metrics.
func (m *Metrics) Emitter() flow.Metrics {
	return flow.Metrics{Requests: metrics.NewPromCounter(m.FlowRequestsTotal)}
}

// Synchronizer returns the synchronizer metrics.
func (m *Metrics) Synchronizer() synchronizer.Metrics {
	return synchronizer.Metrics{
		Rejections:      metrics.NewPromCounter(m.RejectionsTotal),
		TopologyUpdates: metrics.NewPromCounter(m.TopologyUpdatesTotal),
	}
}

// Poller returns the topology poller metrics.
func (m *Metrics) Poller() topology.PollerMetrics {
	return topology.PollerMetrics{Fetches: metrics.NewPromCounter(m.TopologyFetchesTotal)}
}

// Events returns the event dispatcher metrics.
func (m *Metrics) Events() events.Metrics {
	return events.Metrics{Events: metrics.NewPromCounter(m.EventsTotal)}
}

// Journal returns the journal metrics.
func (m *Metrics) Journal() journal.Metrics {
	return journal.Metrics{QueriesTotal: metrics.NewPromCounter(m.JournalQueriesTotal)}
}

// Cleaner returns the journal cleaner metrics.
func (m *Metrics) Cleaner() cleaner.Metrics {
	return cleaner.Metrics{
		RunsTotal:    metrics.NewPromCounter(m.JournalCleanerRuns),
		ErrorsTotal:  metrics.NewPromCounter(m.JournalCleanerErrors),
		DeletedTotal: metrics.NewPromCounter(m.JournalCleanerDeleted),
	}
}

// Periodic returns the metrics of the periodic task with the given name.
func (m *Metrics) Periodic(task string) *periodic.Metrics {
	taskEvents := metrics.NewPromCounter(m.PeriodicEventsTotal).With("task", task)
	return &periodic.Metrics{
		Events: func(event string) metrics.Counter {
			return taskEvents.With(prom.LabelEvent, event)
		},
		Period:    metrics.NewPromGauge(m.PeriodicPeriodSeconds).With("task", task),
		Runtime:   metrics.NewPromGauge(m.PeriodicRuntimeSeconds).With("task", task),
		StartTime: metrics.NewPromGauge(m.PeriodicStartTime).With("task", task),
	}
}

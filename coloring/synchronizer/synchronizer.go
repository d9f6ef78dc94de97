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

// Package synchronizer keeps the switch registry in line with the topology
// and turns the differences into flow requests.
//
// A topology snapshot is processed in two separate registry sections. The
// first reconciles switches and neighbors, the second computes the missing
// flows. Flow requests and notifications are always sent after the registry
// lock has been released. Failed requests are not rolled back: the registry
// tracks what was requested, not what is programmed.
package synchronizer

import (
	"context"
	"errors"
	"slices"

	"github.com/opentracing/opentracing-go"

	"github.com/sdnprobe/coloring/coloring/color"
	"github.com/sdnprobe/coloring/coloring/flow"
	"github.com/sdnprobe/coloring/coloring/registry"
	"github.com/sdnprobe/coloring/coloring/tablegroup"
	"github.com/sdnprobe/coloring/coloring/topology"
	"github.com/sdnprobe/coloring/pkg/log"
	"github.com/sdnprobe/coloring/pkg/metrics"
	"github.com/sdnprobe/coloring/pkg/private/prom"
	"github.com/sdnprobe/coloring/pkg/private/serrors"
)

// Rejection reasons reported through Metrics.Rejections.
const (
	ReasonMalformedID     = "malformed_id"
	ReasonNotTracked      = "not_tracked"
	ReasonNotEmpty        = "not_empty"
	ReasonGroupNotAllowed = "group_not_allowed"
)

// DefaultSupportedVersions are the OpenFlow versions flows are installed for
// when none are configured.
var DefaultSupportedVersions = []string{"0x04"}

// Emitter sends flow requests.
type Emitter interface {
	Emit(ctx context.Context, action flow.RequestAction, batch flow.Batch) serrors.List
}

// Notifier publishes the table-group map after an accepted table offer.
type Notifier interface {
	NotifyTableEnabled(ctx context.Context, groupTable map[string]uint8) error
}

// Metrics are the synchronizer metrics. All fields are optional.
type Metrics struct {
	// Rejections counts rejected events by reason.
	Rejections metrics.Counter
	// TopologyUpdates counts processed snapshots by result.
	TopologyUpdates metrics.Counter
}

// ColorInfo is the color of a switch as reported to the query surface.
type ColorInfo struct {
	ColorField color.Field `json:"color_field"`
	ColorValue color.Value `json:"color_value"`
}

// Synchronizer processes topology events. All fields except Notifier and
// Metrics must be set. Its methods are safe for concurrent use.
type Synchronizer struct {
	Registry *registry.Registry
	Tables   *tablegroup.Resolver
	Emitter  Emitter
	// Notifier is optional. Without it acks are only logged.
	Notifier Notifier
	// ColorField is the match field of the flows. Defaults to dl_src.
	ColorField color.Field
	// CookiePrefix is the top byte of the flow cookies.
	CookiePrefix uint8
	// SupportedVersions defaults to DefaultSupportedVersions.
	SupportedVersions []string
	Metrics           Metrics
}

// HandleTopology reconciles the registry with the snapshot and installs the
// flows that are missing. It returns the flows that were requested.
func (s *Synchronizer) HandleTopology(ctx context.Context, snap topology.Snapshot) flow.Batch {
	span, ctx := opentracing.StartSpanFromContext(ctx, "synchronizer.topology")
	defer span.Finish()
	logger := log.FromCtx(ctx)

	s.Registry.Do(func(tx *registry.Tx) {
		s.reconcile(ctx, tx, snap)
	})
	var batch flow.Batch
	s.Registry.Do(func(tx *registry.Tx) {
		batch = s.computeFlows(ctx, tx, snap)
	})
	span.SetTag("switches", len(batch))

	var errs serrors.List
	if len(batch) != 0 {
		errs = s.Emitter.Emit(ctx, flow.Install, batch)
	}
	result := prom.Success
	if len(errs) != 0 {
		result = prom.ErrNetwork
		logger.Error("Not all flows installed", "failed", len(errs), "requested", len(batch))
	}
	metrics.CounterInc(metrics.CounterWith(s.Metrics.TopologyUpdates, prom.LabelResult, result))
	return batch
}

func (s *Synchronizer) reconcile(ctx context.Context, tx *registry.Tx, snap topology.Snapshot) {
	logger := log.FromCtx(ctx)
	for _, id := range tx.IDs() {
		_ = tx.ClearNeighbors(id)
	}
	for _, sw := range snap.Switches {
		if !sw.Enabled || tx.Tracked(sw.ID) {
			continue
		}
		c, err := color.Derive(sw.ID)
		if err != nil {
			logger.Error("Ignoring switch with malformed id", "switch", sw.ID, "err", err)
			s.reject(ReasonMalformedID)
			continue
		}
		tx.Upsert(sw.ID, c)
		logger.Info("Tracking switch", "switch", sw.ID, "color", c)
	}
	for _, l := range snap.Links {
		if !l.Enabled || l.A == l.B {
			continue
		}
		if err := tx.AddNeighborEdge(l.A, l.B); err != nil {
			logger.Info("Ignoring link to untracked switch", "link", l.ID,
				"switch_a", l.A, "switch_b", l.B, "err", err)
		}
	}
}

func (s *Synchronizer) computeFlows(ctx context.Context, tx *registry.Tx,
	snap topology.Snapshot) flow.Batch {

	logger := log.FromCtx(ctx)
	table, _ := s.Tables.Lookup(flow.BaseGroup)
	field := s.colorField()
	index := snap.SwitchIndex()
	batch := make(flow.Batch)

	tx.Range(func(sw registry.Switch) bool {
		entry, ok := index[sw.ID]
		if !ok || !entry.Enabled || !entry.Up() || !s.supported(entry.OFPVersion) {
			return true
		}
		cookie, err := flow.Cookie(sw.ID, s.CookiePrefix)
		if err != nil {
			logger.Error("Cannot compute cookie", "switch", sw.ID, "err", err)
			return true
		}
		for _, nb := range sw.Neighbors {
			if _, ok := sw.Flows[nb]; ok {
				continue
			}
			nbColor, ok := tx.Color(nb)
			if !ok {
				continue
			}
			d := flow.NewDescriptor(field, color.Encode(nbColor, field), cookie,
				flow.BaseGroup, table)
			if err := tx.RecordFlow(sw.ID, nb, d); err != nil {
				logger.Error("Recording flow", "switch", sw.ID, "neighbor", nb, "err", err)
				continue
			}
			batch[sw.ID] = append(batch[sw.ID], d)
		}
		return true
	})
	return batch
}

// HandleLinkDisabled removes the flows the two endpoints hold for each other
// and the neighbor edge between them. Both endpoints must be tracked,
// otherwise nothing changes and an error is returned. Delivery failures of
// the delete requests are returned as well.
func (s *Synchronizer) HandleLinkDisabled(ctx context.Context, a, b string) error {
	if a == b {
		return nil
	}
	span, ctx := opentracing.StartSpanFromContext(ctx, "synchronizer.link_disabled")
	defer span.Finish()
	span.SetTag("switch_a", a)
	span.SetTag("switch_b", b)
	logger := log.FromCtx(ctx)

	var err error
	batch := make(flow.Batch)
	s.Registry.Do(func(tx *registry.Tx) {
		for _, id := range []string{a, b} {
			if !tx.Tracked(id) {
				err = serrors.Join(registry.ErrNotFound, nil, "switch", id,
					"switch_a", a, "switch_b", b)
				return
			}
		}
		for _, pair := range [][2]string{{a, b}, {b, a}} {
			d, dropErr := tx.DropFlow(pair[0], pair[1])
			if dropErr != nil {
				continue
			}
			batch[pair[0]] = append(batch[pair[0]], d.DeleteDescriptor())
		}
		tx.RemoveNeighborEdge(a, b)
	})
	if err != nil {
		logger.Error("Link disabled between untracked switches", "err", err)
		s.reject(ReasonNotTracked)
		return err
	}
	if len(batch) == 0 {
		return nil
	}
	return s.Emitter.Emit(ctx, flow.Delete, batch).ToError()
}

// HandleSwitchDisabled stops tracking the switch. A switch that still has
// neighbors or flows is kept and a *registry.NotEmptyError is returned.
func (s *Synchronizer) HandleSwitchDisabled(ctx context.Context, id string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "synchronizer.switch_disabled")
	defer span.Finish()
	span.SetTag("switch", id)
	logger := log.FromCtx(ctx)

	var err error
	s.Registry.Do(func(tx *registry.Tx) {
		err = tx.Remove(id)
	})
	switch {
	case err == nil:
		logger.Info("Switch removed", "switch", id)
		return nil
	case errors.Is(err, registry.ErrNotEmpty):
		logger.Error("Switch disabled before its links, keeping it", "switch", id, "err", err)
		s.reject(ReasonNotEmpty)
	default:
		logger.Error("Switch disabled but not tracked", "switch", id, "err", err)
		s.reject(ReasonNotTracked)
	}
	return err
}

// HandleTableEnabled applies a table-group offer. An empty offer is ignored.
// An offer naming a group that is not allowed is rejected without ack.
// Otherwise the offer is merged, stored flows are re-stamped if the mapping
// changed and the resulting mapping is acked.
func (s *Synchronizer) HandleTableEnabled(ctx context.Context, offer map[string]uint8) error {
	if len(offer) == 0 {
		return nil
	}
	span, ctx := opentracing.StartSpanFromContext(ctx, "synchronizer.table_enabled")
	defer span.Finish()
	logger := log.FromCtx(ctx)

	var (
		changed   bool
		err       error
		tables    map[string]uint8
		restamped int
	)
	// Offer and re-stamp share one registry section.
	s.Registry.Do(func(tx *registry.Tx) {
		if changed, err = s.Tables.Offer(offer); err != nil {
			return
		}
		tables = s.Tables.Map()
		if !changed {
			return
		}
		tx.UpdateFlows(func(_, _ string, d *flow.Descriptor) {
			if t, ok := tables[d.TableGroup]; ok && d.TableID != t {
				d.TableID = t
				restamped++
			}
		})
	})
	if err != nil {
		logger.Error("Rejecting table offer", "offer", offer, "err", err)
		s.reject(ReasonGroupNotAllowed)
		return err
	}
	span.SetTag("changed", changed)
	if changed {
		logger.Info("Table groups changed", "group_table", tables, "restamped", restamped)
	}
	if s.Notifier == nil {
		logger.Debug("Table groups acked", "group_table", tables)
		return nil
	}
	if err := s.Notifier.NotifyTableEnabled(ctx, tables); err != nil {
		logger.Error("Failed to publish table ack", "err", err)
		return serrors.Wrap("publishing table ack", err)
	}
	return nil
}

// Colors returns the encoded color of every tracked switch.
func (s *Synchronizer) Colors() map[string]ColorInfo {
	field := s.colorField()
	colors := s.Registry.Colors(field)
	info := make(map[string]ColorInfo, len(colors))
	for id, v := range colors {
		info[id] = ColorInfo{ColorField: field, ColorValue: v}
	}
	return info
}

func (s *Synchronizer) colorField() color.Field {
	if s.ColorField == "" {
		return color.DLSrc
	}
	return s.ColorField
}

func (s *Synchronizer) supported(version string) bool {
	versions := s.SupportedVersions
	if len(versions) == 0 {
		versions = DefaultSupportedVersions
	}
	return slices.Contains(versions, version)
}

func (s *Synchronizer) reject(reason string) {
	metrics.CounterInc(metrics.CounterWith(s.Metrics.Rejections, prom.LabelReason, reason))
}

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

// Package tablegroup maps table groups to the OpenFlow table that currently
// hosts them.
package tablegroup

import (
	"maps"
	"slices"
	"sync"

	"github.com/sdnprobe/coloring/pkg/private/serrors"
)

// ErrGroupNotAllowed indicates an offer for a group that is not recognised.
var ErrGroupNotAllowed = serrors.New("table group not allowed")

// DefaultGroups are the groups recognised when none are configured.
var DefaultGroups = []string{"base"}

// Resolver holds the group to table mapping. It is safe for concurrent use.
type Resolver struct {
	mtx     sync.RWMutex
	allowed map[string]struct{}
	tables  map[string]uint8
}

// New creates a resolver that accepts offers for the allowed groups. Every
// allowed group missing from initial starts at table 0. If allowed is empty,
// DefaultGroups are used.
func New(allowed []string, initial map[string]uint8) *Resolver {
	if len(allowed) == 0 {
		allowed = DefaultGroups
	}
	r := &Resolver{
		allowed: make(map[string]struct{}, len(allowed)),
		tables:  make(map[string]uint8, len(allowed)),
	}
	for _, g := range allowed {
		r.allowed[g] = struct{}{}
		r.tables[g] = 0
	}
	maps.Copy(r.tables, initial)
	return r
}

// Lookup returns the table of the group.
func (r *Resolver) Lookup(group string) (uint8, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	t, ok := r.tables[group]
	return t, ok
}

// Map returns a copy of the current mapping.
func (r *Resolver) Map() map[string]uint8 {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return maps.Clone(r.tables)
}

// Allowed returns the recognised groups in order.
func (r *Resolver) Allowed() []string {
	return slices.Sorted(maps.Keys(r.allowed))
}

// Offer merges the offered mapping into the current one. If any offered group
// is not allowed, ErrGroupNotAllowed is returned and nothing changes. changed
// reports whether any offered entry differed from the current mapping.
func (r *Resolver) Offer(m map[string]uint8) (bool, error) {
	for g := range m {
		if _, ok := r.allowed[g]; !ok {
			return false, serrors.Join(ErrGroupNotAllowed, nil,
				"group", g, "allowed", r.Allowed())
		}
	}
	r.mtx.Lock()
	defer r.mtx.Unlock()
	changed := false
	for g, t := range m {
		if cur, ok := r.tables[g]; !ok || cur != t {
			r.tables[g] = t
			changed = true
		}
	}
	return changed, nil
}

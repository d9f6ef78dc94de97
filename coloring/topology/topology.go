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

// Package topology contains the view of the network the coloring service
// works on. A Snapshot is decoded from the controller topology document:
//
//	{"topology": {
//	  "switches": {"00:00:00:00:00:00:00:01": {"enabled": true, "status": "UP",
//	    "ofp_version": "0x04"}},
//	  "links": {"<id>": {"enabled": true,
//	    "endpoint_a": {"switch": "00:00:00:00:00:00:00:01"},
//	    "endpoint_b": {"switch": "00:00:00:00:00:00:00:02"}}}}}
package topology

import (
	"cmp"
	"encoding/json"
	"maps"
	"slices"
	"strconv"

	"github.com/sdnprobe/coloring/pkg/private/serrors"
)

// Status is the operational status of a switch.
type Status string

const (
	StatusUp       Status = "UP"
	StatusDown     Status = "DOWN"
	StatusDisabled Status = "DISABLED"
)

// Switch is a switch as seen in a snapshot.
type Switch struct {
	ID         string `json:"id" yaml:"id"`
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	Status     Status `json:"status" yaml:"status"`
	OFPVersion string `json:"ofp_version" yaml:"ofp_version"`
}

// Up reports whether the switch is operationally up.
func (s Switch) Up() bool {
	return s.Status == StatusUp
}

// Link is an undirected link between two switches.
type Link struct {
	ID      string `json:"id" yaml:"id"`
	A       string `json:"-" yaml:"endpoint_a"`
	B       string `json:"-" yaml:"endpoint_b"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
}

type endpoint struct {
	Switch string `json:"switch"`
}

type jsonLink struct {
	ID        string   `json:"id,omitempty"`
	Enabled   bool     `json:"enabled"`
	EndpointA endpoint `json:"endpoint_a"`
	EndpointB endpoint `json:"endpoint_b"`
}

// UnmarshalJSON decodes the controller link representation.
func (l *Link) UnmarshalJSON(b []byte) error {
	var raw jsonLink
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*l = Link{
		ID:      raw.ID,
		A:       raw.EndpointA.Switch,
		B:       raw.EndpointB.Switch,
		Enabled: raw.Enabled,
	}
	return nil
}

// MarshalJSON encodes the controller link representation.
func (l Link) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonLink{
		ID:        l.ID,
		Enabled:   l.Enabled,
		EndpointA: endpoint{Switch: l.A},
		EndpointB: endpoint{Switch: l.B},
	})
}

// Snapshot is a full view of the topology. Switches and links are sorted by
// id.
type Snapshot struct {
	Switches []Switch `yaml:"switches"`
	Links    []Link   `yaml:"links"`
}

// Switch returns the switch with the given id.
func (s Snapshot) Switch(id string) (Switch, bool) {
	for _, sw := range s.Switches {
		if sw.ID == id {
			return sw, true
		}
	}
	return Switch{}, false
}

// SwitchIndex returns the switches keyed by id.
func (s Snapshot) SwitchIndex() map[string]Switch {
	idx := make(map[string]Switch, len(s.Switches))
	for _, sw := range s.Switches {
		idx[sw.ID] = sw
	}
	return idx
}

type jsonSwitch struct {
	ID         string `json:"id"`
	DPID       string `json:"dpid"`
	Enabled    bool   `json:"enabled"`
	Status     Status `json:"status"`
	OFPVersion string `json:"ofp_version"`
}

type jsonTopology struct {
	Switches map[string]jsonSwitch `json:"switches"`
	Links    map[string]Link       `json:"links"`
}

// UnmarshalJSON decodes the inner part of the controller topology document,
// i.e. the object holding "switches" and "links".
func (s *Snapshot) UnmarshalJSON(b []byte) error {
	var raw jsonTopology
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	snap := Snapshot{
		Switches: make([]Switch, 0, len(raw.Switches)),
		Links:    make([]Link, 0, len(raw.Links)),
	}
	for _, key := range slices.Sorted(maps.Keys(raw.Switches)) {
		sw := raw.Switches[key]
		id := sw.DPID
		if id == "" {
			id = key
		}
		snap.Switches = append(snap.Switches, Switch{
			ID:         id,
			Enabled:    sw.Enabled,
			Status:     sw.Status,
			OFPVersion: sw.OFPVersion,
		})
	}
	for _, key := range slices.Sorted(maps.Keys(raw.Links)) {
		l := raw.Links[key]
		if l.ID == "" {
			l.ID = key
		}
		snap.Links = append(snap.Links, l)
	}
	snap.sort()
	*s = snap
	return nil
}

// MarshalJSON encodes the inner part of the controller topology document.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	raw := struct {
		Switches map[string]Switch `json:"switches"`
		Links    map[string]Link   `json:"links"`
	}{
		Switches: make(map[string]Switch, len(s.Switches)),
		Links:    make(map[string]Link, len(s.Links)),
	}
	for _, sw := range s.Switches {
		raw.Switches[sw.ID] = sw
	}
	for i, l := range s.Links {
		id := l.ID
		if id == "" {
			id = strconv.Itoa(i)
		}
		raw.Links[id] = l
	}
	return json.Marshal(raw)
}

func (s *Snapshot) sort() {
	slices.SortStableFunc(s.Switches, func(a, b Switch) int {
		return cmp.Compare(a.ID, b.ID)
	})
	slices.SortStableFunc(s.Links, func(a, b Link) int {
		return cmp.Compare(a.ID, b.ID)
	})
}

// Document is the controller topology document.
type Document struct {
	Topology Snapshot `json:"topology"`
}

// Load decodes a controller topology document.
func Load(b []byte) (Snapshot, error) {
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return Snapshot{}, serrors.Wrap("parsing topology document", err)
	}
	return doc.Topology, nil
}

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

// Package flow contains the flow descriptors installed for neighbor colors
// and the emitter that hands them to the flow-programming service.
package flow

import (
	"maps"
	"strconv"
	"strings"

	"github.com/sdnprobe/coloring/coloring/color"
	"github.com/sdnprobe/coloring/pkg/private/serrors"
)

const (
	// Priority of every coloring flow. It precedes generic forwarding rules.
	Priority = 50000
	// ControllerPort is OFPP_CONTROLLER in OpenFlow 1.3.
	ControllerPort = 4294967293
	// Owner tags all flows installed by this service.
	Owner = "coloring"
	// BaseGroup is the table group used for all coloring flows.
	BaseGroup = "base"
	// DefaultCookiePrefix is the top byte of every coloring cookie.
	DefaultCookiePrefix = 0xAC

	cookieMask = 0x00FFFFFFFFFFFFFF
)

// ErrMalformedID indicates a switch id that is not a hex number.
var ErrMalformedID = serrors.New("malformed switch id")

// Action is an OpenFlow action in the flow-programming service format.
type Action struct {
	ActionType string `json:"action_type"`
	Port       uint32 `json:"port"`
}

// OutputToController is the only action of coloring flows.
var OutputToController = Action{ActionType: "output", Port: ControllerPort}

// Descriptor describes one flow in the format of the flow-programming
// service. Delete descriptors only carry Match, Owner and TableID.
type Descriptor struct {
	Match      map[color.Field]color.Value `json:"match"`
	Priority   uint16                      `json:"priority,omitempty"`
	Actions    []Action                    `json:"actions,omitempty"`
	Cookie     uint64                      `json:"cookie,omitempty"`
	Owner      string                      `json:"owner"`
	TableGroup string                      `json:"table_group,omitempty"`
	TableID    uint8                       `json:"table_id"`
}

// NewDescriptor builds the flow that sends packets carrying value in field
// to the controller.
func NewDescriptor(field color.Field, value color.Value, cookie uint64,
	group string, table uint8) Descriptor {

	return Descriptor{
		Match:      map[color.Field]color.Value{field: value},
		Priority:   Priority,
		Actions:    []Action{OutputToController},
		Cookie:     cookie,
		Owner:      Owner,
		TableGroup: group,
		TableID:    table,
	}
}

// DeleteDescriptor returns the descriptor that removes d.
func (d Descriptor) DeleteDescriptor() Descriptor {
	return Descriptor{
		Match:   maps.Clone(d.Match),
		Owner:   d.Owner,
		TableID: d.TableID,
	}
}

// Clone returns a deep copy of d.
func (d Descriptor) Clone() Descriptor {
	c := d
	c.Match = maps.Clone(d.Match)
	if d.Actions != nil {
		c.Actions = append([]Action(nil), d.Actions...)
	}
	return c
}

// Cookie returns the cookie for flows installed on the switch with the given
// id: the low 56 bits of the numeric id with prefix as top byte.
func Cookie(id string, prefix uint8) (uint64, error) {
	n, err := strconv.ParseUint(strings.ReplaceAll(id, ":", ""), 16, 64)
	if err != nil {
		return 0, serrors.Join(ErrMalformedID, err, "id", id)
	}
	return n&cookieMask | uint64(prefix)<<56, nil
}

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

// Package mgmtapi is the REST query surface of the coloring service.
package mgmtapi

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pelletier/go-toml/v2"

	"github.com/sdnprobe/coloring/coloring/color"
	"github.com/sdnprobe/coloring/coloring/events"
	"github.com/sdnprobe/coloring/coloring/flow"
	"github.com/sdnprobe/coloring/coloring/journal"
	"github.com/sdnprobe/coloring/coloring/synchronizer"
	"github.com/sdnprobe/coloring/pkg/log"
	"github.com/sdnprobe/coloring/private/config"
	api "github.com/sdnprobe/coloring/private/mgmtapi"
)

// BaseURL is the prefix under which the routes are served.
const BaseURL = "/api/v1"

// maxEventSize bounds the body of an inbound event.
const maxEventSize = 8 << 20

// ColorSource provides the color of every tracked switch.
type ColorSource interface {
	Colors() map[string]synchronizer.ColorInfo
}

// TableSource provides the active table-group map.
type TableSource interface {
	Map() map[string]uint8
}

// EventDispatcher handles one inbound event.
type EventDispatcher interface {
	Dispatch(ctx context.Context, e events.Event) error
}

// RequestJournal lists journaled flow requests.
type RequestJournal interface {
	List(ctx context.Context, limit int) ([]journal.Entry, error)
}

// FailureSource lists recently failed flow requests.
type FailureSource interface {
	List() []flow.Failure
}

// AckSource returns the last published table-group ack.
type AckSource interface {
	Last() (events.Ack, bool)
}

// Settings are the settings reported by the settings route.
type Settings struct {
	ColorField       color.Field
	ColoringInterval time.Duration
	TopologyURL      string
	FlowManagerURL   string
}

// Server serves the query surface. Colors, Tables and Events are required,
// the other sources are optional.
type Server struct {
	Colors   ColorSource
	Tables   TableSource
	Events   EventDispatcher
	Journal  RequestJournal
	Failures FailureSource
	Acks     AckSource
	Settings Settings
	// Diagnostics writes the human readable switch table.
	Diagnostics func(io.Writer)
	// Config is the running configuration. It is rendered as TOML.
	Config any
}

// Handler returns a handler serving all routes of s under BaseURL.
func Handler(s *Server) http.Handler {
	return HandlerFromMuxWithBaseURL(s, chi.NewRouter(), BaseURL)
}

// HandlerFromMuxWithBaseURL registers the routes of s on r under baseURL.
func HandlerFromMuxWithBaseURL(s *Server, r chi.Router, baseURL string) http.Handler {
	r.Route(baseURL, func(r chi.Router) {
		r.Get("/colors", s.GetColors)
		r.Get("/settings", s.GetSettings)
		r.Get("/table_groups", s.GetTableGroups)
		r.Post("/events", s.PostEvent)
		r.Get("/requests", s.GetRequests)
		r.Get("/failures", s.GetFailures)
		r.Get("/status/colors", s.GetStatusColors)
		r.Get("/log/level", s.GetLogLevel)
		r.Put("/log/level", s.SetLogLevel)
		r.Get("/config", s.GetConfig)
	})
	return r
}

type colorsRep struct {
	Colors map[string]synchronizer.ColorInfo `json:"colors"`
}

// GetColors returns the color of every tracked switch.
func (s *Server) GetColors(w http.ResponseWriter, r *http.Request) {
	colors := s.Colors.Colors()
	if colors == nil {
		colors = map[string]synchronizer.ColorInfo{}
	}
	api.JSON(w, colorsRep{Colors: colors})
}

type settingsRep struct {
	ColorField       color.Field `json:"color_field"`
	ColoringInterval float64     `json:"coloring_interval"`
	TopologyURL      string      `json:"topology_url"`
	FlowManagerURL   string      `json:"flow_manager_url"`
}

// GetSettings returns the effective settings. The interval is in seconds.
func (s *Server) GetSettings(w http.ResponseWriter, r *http.Request) {
	api.JSON(w, settingsRep{
		ColorField:       s.Settings.ColorField,
		ColoringInterval: s.Settings.ColoringInterval.Seconds(),
		TopologyURL:      s.Settings.TopologyURL,
		FlowManagerURL:   s.Settings.FlowManagerURL,
	})
}

type tableGroupsRep struct {
	GroupTable map[string]uint8 `json:"group_table"`
	LastAck    *events.Ack      `json:"last_ack,omitempty"`
}

// GetTableGroups returns the active table-group map and the last ack.
func (s *Server) GetTableGroups(w http.ResponseWriter, r *http.Request) {
	rep := tableGroupsRep{GroupTable: s.Tables.Map()}
	if s.Acks != nil {
		if ack, ok := s.Acks.Last(); ok {
			rep.LastAck = &ack
		}
	}
	api.JSON(w, rep)
}

// PostEvent dispatches one inbound event.
func (s *Server) PostEvent(w http.ResponseWriter, r *http.Request) {
	var e events.Event
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEventSize))
	if err := dec.Decode(&e); err != nil {
		api.Error(w, http.StatusBadRequest, "malformed event", err)
		return
	}
	if e.Name == "" {
		api.Error(w, http.StatusBadRequest, "malformed event", errors.New("missing name"))
		return
	}
	err := s.Events.Dispatch(r.Context(), e)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusAccepted)
	case errors.Is(err, events.ErrUnknownEvent), errors.Is(err, events.ErrInvalidPayload):
		api.Error(w, http.StatusBadRequest, "event rejected", err)
	default:
		api.Error(w, http.StatusUnprocessableEntity, "event not applied", err)
	}
}

// GetRequests returns the newest journaled flow requests.
func (s *Server) GetRequests(w http.ResponseWriter, r *http.Request) {
	limit := journal.DefaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		l, err := strconv.Atoi(raw)
		if err != nil || l <= 0 {
			api.Error(w, http.StatusBadRequest, "invalid limit",
				errors.New("limit must be a positive integer"))
			return
		}
		limit = l
	}
	entries := []journal.Entry{}
	if s.Journal != nil {
		res, err := s.Journal.List(r.Context(), limit)
		if err != nil {
			log.FromCtx(r.Context()).Error("Listing journal failed", "err", err)
			api.Error(w, http.StatusInternalServerError, "unable to list requests", err)
			return
		}
		entries = append(entries, res...)
	}
	api.JSON(w, entries)
}

// GetFailures returns the recently failed flow requests.
func (s *Server) GetFailures(w http.ResponseWriter, r *http.Request) {
	failures := []flow.Failure{}
	if s.Failures != nil {
		failures = append(failures, s.Failures.List()...)
	}
	api.JSON(w, failures)
}

// GetStatusColors writes the switch table as plain text.
func (s *Server) GetStatusColors(w http.ResponseWriter, r *http.Request) {
	if s.Diagnostics == nil {
		api.Error(w, http.StatusNotFound, "diagnostics not available", nil)
		return
	}
	var buf bytes.Buffer
	s.Diagnostics(&buf)
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write(buf.Bytes())
}

type logLevel struct {
	Level string `json:"level"`
}

// GetLogLevel returns the console log level.
func (s *Server) GetLogLevel(w http.ResponseWriter, r *http.Request) {
	api.JSON(w, logLevel{Level: log.ConsoleLevel()})
}

// SetLogLevel changes the console log level.
func (s *Server) SetLogLevel(w http.ResponseWriter, r *http.Request) {
	var req logLevel
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "malformed request", err)
		return
	}
	if err := log.SetLevel(req.Level); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid level", err)
		return
	}
	api.JSON(w, logLevel{Level: log.ConsoleLevel()})
}

// GetConfig writes the running configuration as TOML. The ETag header carries
// the configuration digest.
func (s *Server) GetConfig(w http.ResponseWriter, r *http.Request) {
	if s.Config == nil {
		api.Error(w, http.StatusNotFound, "config not available", nil)
		return
	}
	raw, err := toml.Marshal(s.Config)
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "unable to marshal config", err)
		return
	}
	digest, err := config.Digest(s.Config)
	if err != nil {
		api.Error(w, http.StatusInternalServerError, "unable to digest config", err)
		return
	}
	w.Header().Set("ETag", `"`+hex.EncodeToString(digest)+`"`)
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write(raw)
}

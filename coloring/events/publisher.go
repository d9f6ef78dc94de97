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

package events

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"maps"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sdnprobe/coloring/pkg/log"
	"github.com/sdnprobe/coloring/pkg/private/serrors"
)

// ErrPublish indicates that an event could not be delivered.
var ErrPublish = serrors.New("event not published")

// Notifier publishes the table-group map after an accepted table offer.
type Notifier interface {
	NotifyTableEnabled(ctx context.Context, groupTable map[string]uint8) error
}

type tableEnabledAckContent struct {
	GroupTable map[string]uint8 `json:"group_table"`
}

// NewTableEnabledAck builds the ack event for the group table.
func NewTableEnabledAck(groupTable map[string]uint8) (Event, error) {
	raw, err := json.Marshal(tableEnabledAckContent{GroupTable: groupTable})
	if err != nil {
		return Event{}, serrors.Wrap("encoding ack", err)
	}
	return Event{Name: TableEnabledAck, Content: raw}, nil
}

// HTTPPublisher POSTs events as JSON to URL.
type HTTPPublisher struct {
	URL string
	// Client is used for the requests. If nil, http.DefaultClient is used.
	Client *http.Client
}

// NotifyTableEnabled publishes the ack event.
func (p HTTPPublisher) NotifyTableEnabled(ctx context.Context, groupTable map[string]uint8) error {
	e, err := NewTableEnabledAck(groupTable)
	if err != nil {
		return err
	}
	return p.Publish(ctx, e)
}

// Publish POSTs the event. Responses other than 2xx are errors.
func (p HTTPPublisher) Publish(ctx context.Context, e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return serrors.Wrap("encoding event", err, "name", e.Name)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.URL, bytes.NewReader(body))
	if err != nil {
		return serrors.Wrap("creating event request", err, "url", p.URL)
	}
	req.Header.Set("Content-Type", "application/json")
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return serrors.Join(ErrPublish, err, "name", e.Name, "url", p.URL)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return serrors.Join(ErrPublish, nil, "name", e.Name, "url", p.URL,
			"status", resp.StatusCode, "response", strings.TrimSpace(string(msg)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// LogPublisher logs the events instead of sending them.
type LogPublisher struct{}

// NotifyTableEnabled logs the ack.
func (LogPublisher) NotifyTableEnabled(ctx context.Context, groupTable map[string]uint8) error {
	log.FromCtx(ctx).Info("Table groups enabled", "event", TableEnabledAck,
		"group_table", groupTable)
	return nil
}

// Ack is a published table-group map.
type Ack struct {
	GroupTable map[string]uint8 `json:"group_table"`
	Time       time.Time        `json:"time"`
	// Error is set if publishing failed.
	Error string `json:"error,omitempty"`
}

// Recorder forwards acks to Next and keeps the last one.
type Recorder struct {
	Next Notifier

	mtx  sync.Mutex
	last *Ack
}

// NotifyTableEnabled records the ack and forwards it.
func (r *Recorder) NotifyTableEnabled(ctx context.Context, groupTable map[string]uint8) error {
	var err error
	if r.Next != nil {
		err = r.Next.NotifyTableEnabled(ctx, groupTable)
	}
	ack := &Ack{GroupTable: maps.Clone(groupTable), Time: time.Now()}
	if err != nil {
		ack.Error = err.Error()
	}
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.last = ack
	return err
}

// Last returns the last ack.
func (r *Recorder) Last() (Ack, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if r.last == nil {
		return Ack{}, false
	}
	ack := *r.last
	ack.GroupTable = maps.Clone(r.last.GroupTable)
	return ack, true
}

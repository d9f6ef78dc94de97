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

package flow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sdnprobe/coloring/pkg/private/serrors"
)

// RequestAction is the action of a flow request.
type RequestAction string

// Flow request actions.
const (
	Install RequestAction = "install"
	Delete  RequestAction = "delete"
)

// ErrDelivery indicates that the flow-programming service did not accept a
// request.
var ErrDelivery = serrors.New("flow request not delivered")

// Batch maps switch ids to the flows of that switch.
type Batch map[string][]Descriptor

// Request is one request to the flow-programming service. It carries the
// flows of exactly one switch.
type Request struct {
	SwitchID string
	Action   RequestAction
	Flows    []Descriptor
	Force    bool
}

// Sender delivers flow requests.
type Sender interface {
	Send(ctx context.Context, req Request) error
}

type requestBody struct {
	Flows []Descriptor `json:"flows"`
	Force bool         `json:"force"`
}

// MarshalBody returns the JSON body of the request.
func (r Request) MarshalBody() ([]byte, error) {
	return json.Marshal(requestBody{Flows: r.Flows, Force: r.Force})
}

// HTTPSender sends requests to the REST API of the flow-programming service.
// Installs are POSTed and deletes use DELETE on the URL of the switch.
type HTTPSender struct {
	// URLTemplate is the flow endpoint; %s is replaced by the switch id.
	URLTemplate string
	// Client is used for the requests. If nil, http.DefaultClient is used.
	Client *http.Client
}

// Send sends the request. Responses other than 2xx are errors.
func (s HTTPSender) Send(ctx context.Context, req Request) error {
	body, err := req.MarshalBody()
	if err != nil {
		return serrors.Wrap("encoding flow request", err, "switch", req.SwitchID)
	}
	method := http.MethodPost
	if req.Action == Delete {
		method = http.MethodDelete
	}
	url := fmt.Sprintf(s.URLTemplate, req.SwitchID)
	httpReq, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return serrors.Wrap("creating flow request", err, "url", url)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return serrors.Join(ErrDelivery, err, "switch", req.SwitchID, "url", url)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return serrors.Join(ErrDelivery, nil, "switch", req.SwitchID, "url", url,
			"status", resp.StatusCode, "response", strings.TrimSpace(string(msg)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

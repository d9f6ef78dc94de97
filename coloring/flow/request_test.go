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

package flow_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdnprobe/coloring/coloring/color"
	"github.com/sdnprobe/coloring/coloring/flow"
	"github.com/sdnprobe/coloring/pkg/private/serrors"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   map[string]any
}

func TestHTTPSender(t *testing.T) {
	d := flow.NewDescriptor(color.DLSrc, color.Encode(2, color.DLSrc), 1, flow.BaseGroup, 0)
	testCases := map[string]struct {
		Request   flow.Request
		Status    int
		Method    string
		Assertion assert.ErrorAssertionFunc
	}{
		"install": {
			Request: flow.Request{SwitchID: "00:01", Action: flow.Install,
				Flows: []flow.Descriptor{d}, Force: true},
			Status:    http.StatusAccepted,
			Method:    http.MethodPost,
			Assertion: assert.NoError,
		},
		"delete": {
			Request: flow.Request{SwitchID: "00:02", Action: flow.Delete,
				Flows: []flow.Descriptor{d.DeleteDescriptor()}, Force: true},
			Status:    http.StatusOK,
			Method:    http.MethodDelete,
			Assertion: assert.NoError,
		},
		"rejected": {
			Request: flow.Request{SwitchID: "00:03", Action: flow.Install,
				Flows: []flow.Descriptor{d}, Force: true},
			Status:    http.StatusBadRequest,
			Method:    http.MethodPost,
			Assertion: assert.Error,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			got := make(chan recordedRequest, 1)
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter,
				r *http.Request) {

				raw, _ := io.ReadAll(r.Body)
				var body map[string]any
				_ = json.Unmarshal(raw, &body)
				got <- recordedRequest{Method: r.Method, Path: r.URL.Path, Body: body}
				w.WriteHeader(tc.Status)
			}))
			defer srv.Close()

			s := flow.HTTPSender{URLTemplate: srv.URL + "/flows/%s", Client: srv.Client()}
			err := s.Send(context.Background(), tc.Request)
			tc.Assertion(t, err)
			if err != nil {
				assert.ErrorIs(t, err, flow.ErrDelivery)
				status, ok := serrors.Context(err, "status")
				require.True(t, ok)
				assert.Equal(t, tc.Status, status)
			}
			r := <-got
			assert.Equal(t, tc.Method, r.Method)
			assert.Equal(t, "/flows/"+tc.Request.SwitchID, r.Path)
			assert.Equal(t, true, r.Body["force"])
			assert.Len(t, r.Body["flows"], 1)
		})
	}
}

func TestHTTPSenderUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	s := flow.HTTPSender{URLTemplate: url + "/flows/%s"}
	err := s.Send(context.Background(), flow.Request{SwitchID: "00:01", Action: flow.Install})
	assert.ErrorIs(t, err, flow.ErrDelivery)
	var netErr interface{ Timeout() bool }
	assert.True(t, errors.As(err, &netErr))
}

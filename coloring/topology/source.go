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

package topology

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"

	yaml "gopkg.in/yaml.v2"

	"github.com/sdnprobe/coloring/pkg/log"
	"github.com/sdnprobe/coloring/pkg/metrics"
	"github.com/sdnprobe/coloring/pkg/private/prom"
	"github.com/sdnprobe/coloring/pkg/private/serrors"
)

// ErrFetch indicates that the topology could not be fetched.
var ErrFetch = serrors.New("fetching topology")

// Source provides topology snapshots.
type Source interface {
	Fetch(ctx context.Context) (Snapshot, error)
}

// HTTPSource fetches the topology document from the controller REST API.
type HTTPSource struct {
	URL string
	// Client is used for the requests. If nil, http.DefaultClient is used.
	Client *http.Client
}

// Fetch fetches and decodes the topology document.
func (s HTTPSource) Fetch(ctx context.Context) (Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return Snapshot{}, serrors.Wrap("creating topology request", err, "url", s.URL)
	}
	req.Header.Set("Accept", "application/json")
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Snapshot{}, serrors.Join(ErrFetch, err, "url", s.URL)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Snapshot{}, serrors.Join(ErrFetch, nil, "url", s.URL,
			"status", resp.StatusCode, "response", strings.TrimSpace(string(msg)))
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return Snapshot{}, serrors.Join(ErrFetch, err, "url", s.URL)
	}
	return Load(b)
}

// FileSource reads a static snapshot from a YAML file:
//
//	switches:
//	  - id: "00:00:00:00:00:00:00:01"
//	    enabled: true
//	    status: UP
//	    ofp_version: "0x04"
//	links:
//	  - endpoint_a: "00:00:00:00:00:00:00:01"
//	    endpoint_b: "00:00:00:00:00:00:00:02"
//	    enabled: true
//
// The file is read on every fetch, so edits are picked up by the next poll.
type FileSource struct {
	Path string
}

// Fetch reads and decodes the file.
func (s FileSource) Fetch(_ context.Context) (Snapshot, error) {
	return LoadFromFile(s.Path)
}

// LoadFromFile reads a YAML snapshot from path.
func LoadFromFile(path string) (Snapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, serrors.Join(ErrFetch, err, "path", path)
	}
	var snap Snapshot
	if err := yaml.UnmarshalStrict(b, &snap); err != nil {
		return Snapshot{}, serrors.Wrap("parsing topology file", err, "path", path)
	}
	snap.sort()
	return snap, nil
}

// PollerMetrics are the metrics of the poller. All fields are optional.
type PollerMetrics struct {
	// Fetches counts fetches by result.
	Fetches metrics.Counter
}

// Poller fetches a snapshot on every run and hands it to Handler. It
// implements periodic.Task.
type Poller struct {
	Source  Source
	Handler func(ctx context.Context, s Snapshot)
	Metrics PollerMetrics
}

// Name returns the task name.
func (p *Poller) Name() string {
	return "coloring_topology_poller"
}

// Run fetches one snapshot. Fetch errors are logged and the run is skipped.
func (p *Poller) Run(ctx context.Context) {
	logger := log.FromCtx(ctx)
	snap, err := p.Source.Fetch(ctx)
	if err != nil {
		logger.Error("Failed to fetch topology", "err", err)
		metrics.CounterInc(metrics.CounterWith(p.Metrics.Fetches,
			prom.LabelResult, fetchErrorToResult(err)))
		return
	}
	metrics.CounterInc(metrics.CounterWith(p.Metrics.Fetches, prom.LabelResult, prom.Success))
	logger.Debug("Fetched topology", "switches", len(snap.Switches), "links", len(snap.Links))
	p.Handler(ctx, snap)
}

func fetchErrorToResult(err error) string {
	switch {
	case serrors.IsTimeout(err), errors.Is(err, context.DeadlineExceeded):
		return prom.ErrTimeout
	case errors.Is(err, ErrFetch):
		return prom.ErrNetwork
	default:
		return prom.ErrParse
	}
}

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

// Package showcolors queries the colors of a running coloring service.
package showcolors

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"

	"github.com/fatih/color"

	"github.com/sdnprobe/coloring/pkg/private/serrors"
)

// Config configures the query.
type Config struct {
	// API is the address (host:port) or base URL of the coloring API.
	API string
	// Client is used for the request. If nil, http.DefaultClient is used.
	Client *http.Client
}

// Switch is the color of one switch.
type Switch struct {
	ID    string `json:"switch" yaml:"switch"`
	Field string `json:"color_field" yaml:"color_field"`
	Value string `json:"color_value" yaml:"color_value"`
}

// Result is the result of a query.
type Result struct {
	API      string   `json:"api" yaml:"api"`
	Switches []Switch `json:"switches" yaml:"switches"`
}

type colorsRep struct {
	Colors map[string]struct {
		ColorField string          `json:"color_field"`
		ColorValue json.RawMessage `json:"color_value"`
	} `json:"colors"`
}

// Run fetches the colors from the API.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	u, err := colorsURL(cfg.API)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, serrors.Wrap("creating request", err, "url", u)
	}
	client := cfg.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, serrors.Wrap("querying colors", err, "url", u)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, serrors.New("unexpected response", "url", u, "status", resp.StatusCode)
	}
	var rep colorsRep
	if err := json.NewDecoder(resp.Body).Decode(&rep); err != nil {
		return nil, serrors.Wrap("decoding colors", err, "url", u)
	}
	res := &Result{API: cfg.API, Switches: make([]Switch, 0, len(rep.Colors))}
	for id, c := range rep.Colors {
		v, err := valueString(c.ColorValue)
		if err != nil {
			return nil, serrors.Wrap("decoding color value", err, "switch", id)
		}
		res.Switches = append(res.Switches, Switch{ID: id, Field: c.ColorField, Value: v})
	}
	sort.Slice(res.Switches, func(i, j int) bool {
		return res.Switches[i].ID < res.Switches[j].ID
	})
	return res, nil
}

// Human writes human readable output to the writer.
func (r Result) Human(w io.Writer, colored bool) {
	noColor := color.New()
	header := noColor
	keys := noColor
	values := noColor
	if colored {
		header = color.New(color.FgHiBlack)
		keys = color.New(color.FgHiCyan)
		values = color.New(color.FgGreen)
	}
	header.Fprintf(w, "%d colored switches at %s\n", len(r.Switches), r.API)
	for i, sw := range r.Switches {
		fmt.Fprintf(w, "[%2d] %s %s: %s\n", i, sw.ID, keys.Sprint(sw.Field),
			values.Sprint(sw.Value))
	}
}

// JSON writes the result as a json object to the writer.
func (r Result) JSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(r)
}

func colorsURL(api string) (string, error) {
	if api == "" {
		return "", serrors.New("no API address specified")
	}
	base, err := url.Parse(api)
	if err != nil || base.Scheme == "" || base.Host == "" {
		base = &url.URL{Scheme: "http", Host: api}
	}
	return base.JoinPath("api", "v1", "colors").String(), nil
}

// valueString returns string values verbatim and numbers in their textual
// form.
func valueString(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}

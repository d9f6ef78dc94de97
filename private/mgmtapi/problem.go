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

package mgmtapi

import (
	"encoding/json"
	"net/http"
)

// Problem is a problem detail as described in RFC 7807.
type Problem struct {
	Type   string `json:"type,omitempty"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Error writes a problem response with the given status.
func Error(w http.ResponseWriter, status int, title string, err error) {
	p := Problem{
		Title:  title,
		Status: status,
		Type:   http.StatusText(status),
	}
	if err != nil {
		p.Detail = err.Error()
	}
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	// Nothing can be done about a failed write at this point.
	_ = enc.Encode(p)
}

// JSON writes v as indented JSON with status 200.
func JSON(w http.ResponseWriter, v any) {
	raw, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		Error(w, http.StatusInternalServerError, "unable to marshal response", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(append(raw, '\n'))
}

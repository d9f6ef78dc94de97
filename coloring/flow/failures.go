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
	"slices"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"
)

// DefaultFailureTTL is the time failed requests are kept in the cache.
const DefaultFailureTTL = time.Hour

// Failure is a failed flow request.
type Failure struct {
	SwitchID string        `json:"switch_id"`
	Action   RequestAction `json:"action"`
	Flows    []Descriptor  `json:"flows"`
	Error    string        `json:"error"`
	Time     time.Time     `json:"time"`
}

// FailureCache keeps recently failed requests for inspection. Entries expire
// after the TTL. A nil cache discards everything.
type FailureCache struct {
	cache *cache.Cache
	seq   atomic.Uint64
}

// NewFailureCache creates a cache whose entries expire after ttl.
func NewFailureCache(ttl time.Duration) *FailureCache {
	if ttl <= 0 {
		ttl = DefaultFailureTTL
	}
	return &FailureCache{cache: cache.New(ttl, 2*ttl)}
}

// Add stores a failed outcome. Outcomes without error are ignored.
func (c *FailureCache) Add(o Outcome) {
	if c == nil || o.Err == nil {
		return
	}
	key := strconv.FormatUint(c.seq.Add(1), 10)
	c.cache.SetDefault(key, Failure{
		SwitchID: o.Request.SwitchID,
		Action:   o.Request.Action,
		Flows:    o.Request.Flows,
		Error:    o.Err.Error(),
		Time:     o.Time,
	})
}

// List returns the unexpired failures, oldest first.
func (c *FailureCache) List() []Failure {
	if c == nil {
		return nil
	}
	items := c.cache.Items()
	failures := make([]Failure, 0, len(items))
	for _, item := range items {
		failures = append(failures, item.Object.(Failure))
	}
	slices.SortStableFunc(failures, func(a, b Failure) int {
		return a.Time.Compare(b.Time)
	})
	return failures
}

// Len returns the number of cached failures, including expired ones that
// were not evicted yet.
func (c *FailureCache) Len() int {
	if c == nil {
		return 0
	}
	return c.cache.ItemCount()
}

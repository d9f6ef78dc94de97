// Copyright 2018 Anapaya Systems
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

package util

import (
	"strconv"
	"strings"
	"time"

	"github.com/sdnprobe/coloring/pkg/private/serrors"
)

const day = 24 * time.Hour

var units = []struct {
	suffix string
	dur    time.Duration
}{
	{"d", day},
	{"h", time.Hour},
	{"m", time.Minute},
	{"s", time.Second},
	{"ms", time.Millisecond},
	{"us", time.Microsecond},
	{"ns", time.Nanosecond},
}

// ParseDuration parses a duration in the Go format. In addition, a single
// integer with the suffix "d" is interpreted as a number of days.
func ParseDuration(s string) (time.Duration, error) {
	if n, ok := strings.CutSuffix(s, "d"); ok {
		days, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, serrors.Wrap("parsing duration", err, "input", s)
		}
		return time.Duration(days) * day, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, serrors.Wrap("parsing duration", err, "input", s)
	}
	return d, nil
}

// FmtDuration formats d with the largest unit that represents it exactly,
// e.g. 90s is rendered as "90s" and 2h as "2h".
func FmtDuration(d time.Duration) string {
	if d == 0 {
		return "0s"
	}
	for _, u := range units {
		if d%u.dur == 0 {
			return strconv.FormatInt(int64(d/u.dur), 10) + u.suffix
		}
	}
	return d.String()
}

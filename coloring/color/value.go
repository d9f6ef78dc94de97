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

package color

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/sdnprobe/coloring/pkg/private/serrors"
)

// Value is an encoded color. It is either a string (MAC or IPv4 address) or
// a number. Values are comparable.
type Value struct {
	text    string
	num     uint64
	numeric bool
}

// StringValue returns a string value.
func StringValue(s string) Value {
	return Value{text: s}
}

// NumberValue returns a numeric value.
func NumberValue(n uint64) Value {
	return Value{num: n, numeric: true}
}

// IsNumber reports whether v is numeric.
func (v Value) IsNumber() bool {
	return v.numeric
}

// Number returns the numeric value. It is 0 for string values.
func (v Value) Number() uint64 {
	return v.num
}

// String returns the textual form of v.
func (v Value) String() string {
	if v.numeric {
		return strconv.FormatUint(v.num, 10)
	}
	return v.text
}

// MarshalJSON encodes numbers as JSON numbers and strings as JSON strings.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.numeric {
		return []byte(strconv.FormatUint(v.num, 10)), nil
	}
	return json.Marshal(v.text)
}

// UnmarshalJSON decodes a JSON number or string.
func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = StringValue(s)
		return nil
	}
	n, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return serrors.Wrap("decoding color value", err, "input", string(b))
	}
	*v = NumberValue(n)
	return nil
}

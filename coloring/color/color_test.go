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

package color_test

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdnprobe/coloring/coloring/color"
)

func TestDerive(t *testing.T) {
	testCases := map[string]struct {
		ID        string
		Color     uint64
		Assertion assert.ErrorAssertionFunc
	}{
		"dpid": {
			ID:        "00:00:00:00:00:00:00:01",
			Color:     1,
			Assertion: assert.NoError,
		},
		"vendor prefix dropped": {
			ID:        "cc:4e:24:4b:11:00:00:00",
			Color:     0x244b11000000,
			Assertion: assert.NoError,
		},
		"no separators": {
			ID:        "000000000000012c",
			Color:     300,
			Assertion: assert.NoError,
		},
		"too short": {
			ID:        "00:01",
			Assertion: assert.Error,
		},
		"not hex": {
			ID:        "00:00:00:00:00:00:00:zz",
			Assertion: assert.Error,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			c, err := color.Derive(tc.ID)
			tc.Assertion(t, err)
			if err != nil {
				assert.ErrorIs(t, err, color.ErrMalformedID)
				return
			}
			assert.Equal(t, tc.Color, c)
		})
	}
}

// Ids that only differ in the vendor prefix collide. This is a known
// limitation of the color derivation.
func TestDeriveCollision(t *testing.T) {
	a, err := color.Derive("00:00:00:00:00:00:00:05")
	require.NoError(t, err)
	b, err := color.Derive("ab:cd:00:00:00:00:00:05")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, color.Encode(a, color.DLSrc), color.Encode(b, color.DLSrc))
}

func TestEncode(t *testing.T) {
	testCases := map[string]struct {
		Color uint64
		Field color.Field
		Want  color.Value
	}{
		"dl_src": {
			Color: 300, Field: color.DLSrc,
			Want: color.StringValue("ee:ee:ee:ee:01:2c"),
		},
		"dl_dst": {
			Color: 300, Field: color.DLDst,
			Want: color.StringValue("ee:ee:ee:ee:01:2c"),
		},
		"dl_src first octet forced": {
			Color: 0x319406000000, Field: color.DLSrc,
			Want: color.StringValue("3e:94:06:ee:ee:ee"),
		},
		"dl_src upper bits ignored": {
			Color: 0xffff000000000001, Field: color.DLSrc,
			Want: color.StringValue("ee:ee:ee:ee:ee:01"),
		},
		"nw_src": {
			Color: 300, Field: color.NWSrc,
			Want: color.StringValue("0.0.1.44"),
		},
		"nw_dst": {
			Color: 0x1_0a000001, Field: color.NWDst,
			Want: color.StringValue("10.0.0.1"),
		},
		"in_port": {
			Color: 300, Field: color.InPort,
			Want: color.NumberValue(300),
		},
		"tp_dst 16 bits": {
			Color: 0x12345, Field: color.TPDst,
			Want: color.NumberValue(0x2345),
		},
		"nw_tos": {
			Color: 300, Field: color.NWTos,
			Want: color.NumberValue(300 & 0xff),
		},
		"nw_proto": {
			Color: 300, Field: color.NWProto,
			Want: color.NumberValue(44),
		},
		"unknown field": {
			Color: 300, Field: "unknown_field",
			Want: color.NumberValue(300 & 0xff),
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.Want, color.Encode(tc.Color, tc.Field))
		})
	}
}

func TestEncodeMACIsUnicastLocal(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	colors := []uint64{0, 1, 0xff, 0x010000000000, 0xffffffffffff, ^uint64(0)}
	for i := 0; i < 1000; i++ {
		colors = append(colors, r.Uint64())
	}
	for _, f := range []color.Field{color.DLSrc, color.DLDst} {
		for _, c := range colors {
			v := color.Encode(c, f)
			require.False(t, v.IsNumber())
			mac := v.String()
			require.Len(t, mac, 17, "color %x", c)
			first, err := strconv.ParseUint(mac[:2], 16, 8)
			require.NoError(t, err)
			assert.Zero(t, first&0x01, "multicast bit set for color %x: %s", c, mac)
			assert.NotZero(t, first&0x02, "local bit not set for color %x: %s", c, mac)
		}
	}
}

func TestMakeUnicastLocalMAC(t *testing.T) {
	mac, err := color.MakeUnicastLocalMAC("31:94:06:EE:ee:ee")
	require.NoError(t, err)
	assert.Equal(t, "3e:94:06:ee:ee:ee", mac)

	for _, bad := range []string{"31:94:06:ee:ee:eea", "a", "", "x31:94:06:ee:ee:ee"} {
		t.Run(fmt.Sprintf("%q", bad), func(t *testing.T) {
			_, err := color.MakeUnicastLocalMAC(bad)
			assert.ErrorIs(t, err, color.ErrMalformedMAC)
		})
	}
}

func TestValueJSON(t *testing.T) {
	raw, err := json.Marshal(map[color.Field]color.Value{
		color.DLSrc:  color.Encode(300, color.DLSrc),
		color.InPort: color.Encode(300, color.InPort),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"dl_src":"ee:ee:ee:ee:01:2c","in_port":300}`, string(raw))

	var decoded map[color.Field]color.Value
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, color.NumberValue(300), decoded[color.InPort])
	assert.Equal(t, color.StringValue("ee:ee:ee:ee:01:2c"), decoded[color.DLSrc])
}

func TestFieldKnown(t *testing.T) {
	for _, f := range []color.Field{color.DLSrc, color.NWDst, color.TPSrc, color.NWProto} {
		assert.True(t, f.Known(), f)
	}
	for _, f := range []color.Field{"", "eth_src", "DL_SRC"} {
		assert.False(t, f.Known(), f)
	}
}

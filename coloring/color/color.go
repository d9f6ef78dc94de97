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

// Package color derives the color of a switch from its identifier and
// encodes colors into match field values.
//
// A color is the numeric suffix of the switch's datapath id, i.e. the id
// without its first four hex digits. Switches whose ids share that suffix
// get the same color; callers must not assume colors are unique.
package color

import (
	"encoding/binary"
	"net/netip"
	"regexp"
	"strconv"
	"strings"

	"github.com/sdnprobe/coloring/pkg/private/serrors"
)

// vendorDigits is the number of leading hex digits of a datapath id that are
// not part of the color.
const vendorDigits = 4

var (
	// ErrMalformedID indicates that a color cannot be derived from a switch id.
	ErrMalformedID = serrors.New("malformed switch id")
	// ErrMalformedMAC indicates a string that is not a MAC address.
	ErrMalformedMAC = serrors.New("malformed MAC address")
)

// Field is the name of an OpenFlow match field that carries the color.
type Field string

// Known match fields.
const (
	DLSrc   Field = "dl_src"
	DLDst   Field = "dl_dst"
	NWSrc   Field = "nw_src"
	NWDst   Field = "nw_dst"
	InPort  Field = "in_port"
	DLVlan  Field = "dl_vlan"
	TPSrc   Field = "tp_src"
	TPDst   Field = "tp_dst"
	NWTos   Field = "nw_tos"
	NWProto Field = "nw_proto"
)

// Known reports whether f is one of the known match fields.
func (f Field) Known() bool {
	switch f {
	case DLSrc, DLDst, NWSrc, NWDst, InPort, DLVlan, TPSrc, TPDst, NWTos, NWProto:
		return true
	}
	return false
}

// Derive returns the color of the switch with the given id. Separators (':')
// are ignored, the first four hex digits are dropped and the rest is parsed
// as a hexadecimal number.
func Derive(id string) (uint64, error) {
	digits := strings.ReplaceAll(id, ":", "")
	if len(digits) <= vendorDigits {
		return 0, serrors.Join(ErrMalformedID, nil, "id", id)
	}
	c, err := strconv.ParseUint(digits[vendorDigits:], 16, 64)
	if err != nil {
		return 0, serrors.Join(ErrMalformedID, err, "id", id)
	}
	return c, nil
}

// Encode renders the color c as a value for the match field f. Fields that
// are not known fall back to the low 8 bits of the color.
func Encode(c uint64, f Field) Value {
	switch f {
	case DLSrc, DLDst:
		return StringValue(encodeMAC(c))
	case NWSrc, NWDst:
		var ip [4]byte
		binary.BigEndian.PutUint32(ip[:], uint32(c))
		return StringValue(netip.AddrFrom4(ip).String())
	case InPort, DLVlan, TPSrc, TPDst:
		return NumberValue(c & 0xffff)
	default:
		return NumberValue(c & 0xff)
	}
}

// encodeMAC renders the low 48 bits of c as MAC address. Zero octets are
// replaced by 0xee and the first octet is made unicast and locally
// administered.
func encodeMAC(c uint64) string {
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], c)
	octets := make([]string, 0, 6)
	for _, b := range raw[2:] {
		if b == 0 {
			octets = append(octets, "ee")
			continue
		}
		octets = append(octets, hexOctet(b))
	}
	return forceUnicastLocal(strings.Join(octets, ":"))
}

func hexOctet(b byte) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[b>>4], digits[b&0x0f]})
}

var macPattern = regexp.MustCompile(`^([0-9A-Fa-f]{2}[-:]){5}[0-9A-Fa-f]{2}$`)

// MakeUnicastLocalMAC lowercases mac and sets the second hex digit to 'e',
// which clears the multicast bit and sets the locally administered bit of
// the first octet.
func MakeUnicastLocalMAC(mac string) (string, error) {
	if !macPattern.MatchString(mac) {
		return "", serrors.Join(ErrMalformedMAC, nil, "mac", mac)
	}
	return forceUnicastLocal(strings.ToLower(mac)), nil
}

func forceUnicastLocal(mac string) string {
	return mac[:1] + "e" + mac[2:]
}

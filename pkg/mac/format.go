package mac

//
// Copyright 2020 Telenor Digital AS
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
import (
	"fmt"
	"strings"
)

// Format identifies an output notation for MAC addresses.
type Format int

// The supported output notations. Canonical and colon render identically
// but keep separate identities so selectors round trip.
const (
	FormatCanonical Format = iota
	FormatColon
	FormatDash
	FormatHex
	FormatDot
	FormatInterfaceID
	FormatLinkLocal
)

// FormatDefault is the notation used when none is selected.
const FormatDefault = FormatCanonical

// ParseFormat maps a format selector to a Format. Matching is case
// insensitive and the empty selector means the default notation. The
// selector set is closed; anything else is ErrUnknownFormat.
func ParseFormat(selector string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(selector)) {
	case "", "canonical":
		return FormatCanonical, nil
	case "colon":
		return FormatColon, nil
	case "dash":
		return FormatDash, nil
	case "hex":
		return FormatHex, nil
	case "dot":
		return FormatDot, nil
	case "interface-id":
		return FormatInterfaceID, nil
	case "link-local":
		return FormatLinkLocal, nil
	default:
		return FormatDefault, fmt.Errorf("%w: %q", ErrUnknownFormat, selector)
	}
}

// String returns the selector for the notation.
func (f Format) String() string {
	switch f {
	case FormatCanonical:
		return "canonical"
	case FormatColon:
		return "colon"
	case FormatDash:
		return "dash"
	case FormatHex:
		return "hex"
	case FormatDot:
		return "dot"
	case FormatInterfaceID:
		return "interface-id"
	case FormatLinkLocal:
		return "link-local"
	default:
		return "unknown"
	}
}

const hexDigit = "0123456789abcdef"

// Format renders the address in the given notation. Output is always
// lower case.
func (a Addr) Format(f Format) (string, error) {
	o := a.Octets()
	switch f {
	case FormatCanonical, FormatColon:
		return string(appendSeparated(make([]byte, 0, 17), o, ':')), nil
	case FormatDash:
		return string(appendSeparated(make([]byte, 0, 17), o, '-')), nil
	case FormatHex:
		buf := make([]byte, 0, 12)
		for _, b := range o {
			buf = appendHex(buf, b)
		}
		return string(buf), nil
	case FormatDot:
		buf := make([]byte, 0, 14)
		for i, b := range o {
			if i == 2 || i == 4 {
				buf = append(buf, '.')
			}
			buf = appendHex(buf, b)
		}
		return string(buf), nil
	case FormatInterfaceID:
		return string(appendInterfaceID(make([]byte, 0, 19), o)), nil
	case FormatLinkLocal:
		buf := append(make([]byte, 0, 25), "fe80::"...)
		return string(appendInterfaceID(buf, o)), nil
	default:
		return "", fmt.Errorf("%w: format %d", ErrUnknownFormat, int(f))
	}
}

func appendSeparated(buf []byte, o [6]byte, sep byte) []byte {
	for i, b := range o {
		if i > 0 {
			buf = append(buf, sep)
		}
		buf = appendHex(buf, b)
	}
	return buf
}

func appendHex(buf []byte, b byte) []byte {
	return append(buf, hexDigit[b>>4], hexDigit[b&0xf])
}

// appendInterfaceID writes the modified EUI-64 interface identifier as four
// 16-bit groups: the U/L bit of the first octet is flipped and ff:fe is
// inserted between the two halves of the address. The groups are rendered
// fixed width - no zero compression.
func appendInterfaceID(buf []byte, o [6]byte) []byte {
	o[0] ^= 0x02
	buf = appendHex(buf, o[0])
	buf = appendHex(buf, o[1])
	buf = append(buf, ':')
	buf = appendHex(buf, o[2])
	buf = append(buf, 'f', 'f', ':', 'f', 'e')
	buf = appendHex(buf, o[3])
	buf = append(buf, ':')
	buf = appendHex(buf, o[4])
	buf = appendHex(buf, o[5])
	return buf
}

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
	"net"
	"strconv"
	"strings"
)

// InputKind tags the representation of an address argument.
type InputKind int

// The three states an address argument can arrive in from a SQL engine or
// any other loosely typed caller.
const (
	TextInput InputKind = iota
	BinaryInput
	NullInput
)

// Input is an address argument with its representation resolved up front.
// Resolving the representation once, at the boundary, keeps the parser
// free of dynamic type sniffing.
type Input struct {
	Kind InputKind
	Text string
	Data []byte
}

// Text wraps a textual address argument.
func Text(s string) Input {
	return Input{Kind: TextInput, Text: s}
}

// Binary wraps a binary address argument.
func Binary(b []byte) Input {
	return Input{Kind: BinaryInput, Data: b}
}

// Null is the absent address argument.
func Null() Input {
	return Input{Kind: NullInput}
}

// Parse interprets a textual MAC address. Accepted notations are colon or
// dash separated octet pairs, dot separated 16-bit groups, 12 bare hex
// digits and the 0x-prefixed variant of the bare form. Parsing is case
// insensitive; anything else is malformed.
func Parse(s string) (Addr, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, ErrEmptyInput
	}
	if strings.ContainsAny(t, ":-.") {
		hw, err := net.ParseMAC(t)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMalformed, s)
		}
		if len(hw) != 6 {
			return 0, fmt.Errorf("%w: %q is not a 48-bit address", ErrMalformed, s)
		}
		var o [6]byte
		copy(o[:], hw)
		return AddrFromOctets(o), nil
	}
	if strings.HasPrefix(t, "0x") || strings.HasPrefix(t, "0X") {
		t = t[2:]
	}
	if len(t) != 12 {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	v, err := strconv.ParseUint(t, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	return Addr(v), nil
}

// ParseBytes interprets a binary MAC address. Only 48-bit addresses are
// accepted; EUI-64 and other sizes are rejected.
func ParseBytes(b []byte) (Addr, error) {
	if len(b) != 6 {
		return 0, fmt.Errorf("%w: got %d bytes, want 6", ErrWrongLength, len(b))
	}
	var o [6]byte
	copy(o[:], b)
	return AddrFromOctets(o), nil
}

// ParseInput parses a tagged address argument. Absent values report
// ErrEmptyInput; callers that want NULL-in/NULL-out check the kind before
// calling.
func ParseInput(in Input) (Addr, error) {
	switch in.Kind {
	case BinaryInput:
		return ParseBytes(in.Data)
	case NullInput:
		return 0, ErrEmptyInput
	default:
		return Parse(in.Text)
	}
}

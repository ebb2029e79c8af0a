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
	"encoding/binary"
	"fmt"
	"net"
)

// Addr is a 48-bit MAC address stored in the low bits of an uint64. The
// upper 16 bits are always zero; every constructor either validates the
// range or can't overflow it.
type Addr uint64

// Broadcast is the all-ones address ff:ff:ff:ff:ff:ff.
const Broadcast Addr = 0xffffffffffff

// Octet 0 carries the two IEEE 802 flag bits. The octet occupies bits
// 40..47 of the address value, so its bit 0 is bit 40.
const (
	multicastBit = Addr(1) << 40 // I/G bit - individual/group
	localBit     = Addr(1) << 41 // U/L bit - universal/local
)

// AddrFromUint64 converts an integer to an address. Values that don't fit
// in 48 bits are rejected.
func AddrFromUint64(v uint64) (Addr, error) {
	if v > uint64(Broadcast) {
		return 0, fmt.Errorf("%w: %#x does not fit in 48 bits", ErrWrongLength, v)
	}
	return Addr(v), nil
}

// AddrFromOctets assembles an address from six octets, most significant
// octet first.
func AddrFromOctets(o [6]byte) Addr {
	var buf [8]byte
	copy(buf[2:], o[:])
	return Addr(binary.BigEndian.Uint64(buf[:]))
}

// Uint64 returns the address value.
func (a Addr) Uint64() uint64 {
	return uint64(a)
}

// Octets returns the six octets of the address, most significant first.
func (a Addr) Octets() [6]byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(a))
	var o [6]byte
	copy(o[:], buf[2:])
	return o
}

// HardwareAddr converts the address into the standard library type.
func (a Addr) HardwareAddr() net.HardwareAddr {
	o := a.Octets()
	return net.HardwareAddr(o[:])
}

// IsMulticast returns true when the I/G bit (lowest bit of the first
// octet) is set, ie the address is a group address.
func (a Addr) IsMulticast() bool {
	return a&multicastBit != 0
}

// IsUnicast returns true for individual addresses.
func (a Addr) IsUnicast() bool {
	return !a.IsMulticast()
}

// IsLocal returns true when the U/L bit is set and the address is locally
// administered.
func (a Addr) IsLocal() bool {
	return a&localBit != 0
}

// IsUniversal returns true for addresses assigned from the IEEE OUI space.
func (a Addr) IsUniversal() bool {
	return !a.IsLocal()
}

// String returns the canonical form of the address.
func (a Addr) String() string {
	s, _ := a.Format(FormatCanonical)
	return s
}

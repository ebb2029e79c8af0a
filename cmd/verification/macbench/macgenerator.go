package main
//
//Copyright 2019 Telenor Digital AS
//
//Licensed under the Apache License, Version 2.0 (the "License");
//you may not use this file except in compliance with the License.
//You may obtain a copy of the License at
//
//http://www.apache.org/licenses/LICENSE-2.0
//
//Unless required by applicable law or agreed to in writing, software
//distributed under the License is distributed on an "AS IS" BASIS,
//WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//See the License for the specific language governing permissions and
//limitations under the License.
//
import (
	"encoding/binary"

	"github.com/eesrc/mactool/pkg/mac"
)

// macGenerator is a MAC address generator based on a prefix. The MAC
// address is 6 bytes (aka 48 bits)
type macGenerator struct {
	prefix  [3]byte
	counter uint32
}

func newMacGenerator(prefix [3]byte) macGenerator {
	return macGenerator{prefix, 0}
}

// NextMAC returns the next address in the sequence. The prefix keeps its
// top byte so the sequence repeats after 2^24 addresses.
func (m *macGenerator) NextMAC() mac.Addr {
	m.counter++
	var buf [6]byte
	binary.BigEndian.PutUint32(buf[2:], m.counter)
	buf[0] = m.prefix[0]
	buf[1] = m.prefix[1]
	buf[2] = m.prefix[2]

	return mac.AddrFromOctets(buf)
}

package oui

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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/eesrc/mactool/pkg/mac"
)

// Allocation widths in the registry. IEEE hands out MA-L (24 bit), MA-M
// (28 bit) and MA-S (36 bit) blocks; lookups try the longest width first.
var prefixBits = []int{36, 28, 24}

// Prefix is a vendor allocation prefix: the leading Bits bits of Addr are
// significant, the rest are zero.
type Prefix struct {
	Addr mac.Addr
	Bits int
}

func maskBits(bits int) uint64 {
	return (^uint64(0) << uint(48-bits)) & uint64(mac.Broadcast)
}

// Contains reports whether the address falls inside the prefix.
func (p Prefix) Contains(a mac.Addr) bool {
	return a.Uint64()&maskBits(p.Bits) == p.Addr.Uint64()
}

// String renders 24-bit prefixes as the three leading octets and longer
// prefixes as the full address with the bit count appended.
func (p Prefix) String() string {
	if p.Bits == 24 {
		o := p.Addr.Octets()
		return fmt.Sprintf("%02x:%02x:%02x", o[0], o[1], o[2])
	}
	return fmt.Sprintf("%s/%d", p.Addr, p.Bits)
}

// ParsePrefix parses a registry prefix: three to six colon separated
// octets with an optional /bits suffix. A missing suffix means a 24-bit
// prefix. Bits outside the registry widths are rejected.
func ParsePrefix(s string) (Prefix, error) {
	text := s
	bits := 24
	if idx := strings.IndexByte(s, '/'); idx >= 0 {
		text = s[:idx]
		v, err := strconv.Atoi(s[idx+1:])
		if err != nil {
			return Prefix{}, fmt.Errorf("invalid prefix length in %q: %v", s, err)
		}
		bits = v
	}
	supported := false
	for _, b := range prefixBits {
		if bits == b {
			supported = true
			break
		}
	}
	if !supported {
		return Prefix{}, fmt.Errorf("unsupported prefix length /%d in %q", bits, s)
	}
	parts := strings.Split(text, ":")
	if len(parts) < 3 || len(parts) > 6 {
		return Prefix{}, fmt.Errorf("invalid prefix %q", s)
	}
	var v uint64
	for _, part := range parts {
		if len(part) != 2 {
			return Prefix{}, fmt.Errorf("invalid prefix %q", s)
		}
		n, err := strconv.ParseUint(part, 16, 8)
		if err != nil {
			return Prefix{}, fmt.Errorf("invalid prefix %q: %v", s, err)
		}
		v = v<<8 | n
	}
	v <<= uint(8 * (6 - len(parts)))
	// Stray bits beyond the prefix length are masked off, like the
	// lookups do.
	v &= maskBits(bits)
	return Prefix{Addr: mac.Addr(v), Bits: bits}, nil
}

// Entry is a single vendor allocation.
type Entry struct {
	Prefix    Prefix
	Manuf     string // short manufacturer name
	ManufLong string // full manufacturer name, empty when not listed
	Comment   string // trailing comment, empty when not listed
}

// DB is an immutable vendor registry. It is never modified after Parse
// returns, so lookups are safe for concurrent use without locking.
type DB struct {
	entries []Entry
	by24    map[uint64]int
	by28    map[uint64]int
	by36    map[uint64]int
}

func newDB() *DB {
	return &DB{
		by24: make(map[uint64]int),
		by28: make(map[uint64]int),
		by36: make(map[uint64]int),
	}
}

func (db *DB) indexFor(bits int) map[uint64]int {
	switch bits {
	case 36:
		return db.by36
	case 28:
		return db.by28
	default:
		return db.by24
	}
}

func (db *DB) add(e Entry) {
	key := e.Prefix.Addr.Uint64()
	db.indexFor(e.Prefix.Bits)[key] = len(db.entries)
	db.entries = append(db.entries, e)
}

// Len returns the number of allocations in the registry.
func (db *DB) Len() int {
	return len(db.entries)
}

// Lookup finds the allocation with the longest matching prefix for the
// address. Misses aren't errors; locally administered and unallocated
// addresses simply have no vendor.
func (db *DB) Lookup(a mac.Addr) (Entry, bool) {
	v := a.Uint64()
	for _, bits := range prefixBits {
		if i, ok := db.indexFor(bits)[v&maskBits(bits)]; ok {
			return db.entries[i], true
		}
	}
	return Entry{}, false
}

// LookupPrefix returns the matched allocation prefix for the address.
func (db *DB) LookupPrefix(a mac.Addr) (Prefix, bool) {
	e, ok := db.Lookup(a)
	if !ok {
		return Prefix{}, false
	}
	return e.Prefix, true
}

// Manuf returns the short manufacturer name for the address.
func (db *DB) Manuf(a mac.Addr) (string, bool) {
	e, ok := db.Lookup(a)
	if !ok {
		return "", false
	}
	return e.Manuf, true
}

// ManufLong returns the full manufacturer name for the address. Entries
// without a long name report absent.
func (db *DB) ManufLong(a mac.Addr) (string, bool) {
	e, ok := db.Lookup(a)
	if !ok || e.ManufLong == "" {
		return "", false
	}
	return e.ManufLong, true
}

// Comment returns the registry comment for the address. Most entries have
// none.
func (db *DB) Comment(a mac.Addr) (string, bool) {
	e, ok := db.Lookup(a)
	if !ok || e.Comment == "" {
		return "", false
	}
	return e.Comment, true
}

// Parse reads a registry in the Wireshark manuf format: one allocation per
// line with tab separated fields - prefix, short name, optional long name
// and an optional # comment. Blank lines and lines starting with # are
// skipped, as are empty alignment fields.
func Parse(r io.Reader) (*DB, error) {
	db := newDB()
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		e, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %v", lineno, err)
		}
		db.add(e)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return db, nil
}

// ParseString is a convenience wrapper for Parse.
func ParseString(s string) (*DB, error) {
	return Parse(strings.NewReader(s))
}

func parseLine(line string) (Entry, error) {
	var fields []string
	for _, f := range strings.Split(line, "\t") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		fields = append(fields, f)
	}
	if len(fields) < 2 || len(fields) > 4 {
		return Entry{}, fmt.Errorf("expected 2 to 4 fields, got %d", len(fields))
	}
	prefix, err := ParsePrefix(fields[0])
	if err != nil {
		return Entry{}, err
	}
	e := Entry{Prefix: prefix, Manuf: fields[1]}
	rest := fields[2:]
	if len(rest) > 0 && !strings.HasPrefix(rest[0], "#") {
		e.ManufLong = rest[0]
		rest = rest[1:]
	}
	if len(rest) > 0 {
		if !strings.HasPrefix(rest[0], "#") {
			return Entry{}, fmt.Errorf("unexpected field %q", rest[0])
		}
		e.Comment = strings.TrimSpace(strings.TrimPrefix(rest[0], "#"))
		rest = rest[1:]
	}
	if len(rest) > 0 {
		return Entry{}, fmt.Errorf("unexpected field %q", rest[0])
	}
	return e, nil
}

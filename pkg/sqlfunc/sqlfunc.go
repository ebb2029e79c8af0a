// Package sqlfunc exposes the MAC address utilities as scalar functions
// in SQLite. The functions accept addresses as text in any supported
// notation or as raw six-byte blobs, and NULL propagates through all of
// them the way it does for the built-in scalar functions.
package sqlfunc

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

	"github.com/eesrc/mactool/pkg/mac"
	"github.com/eesrc/mactool/pkg/metrics"
	"github.com/eesrc/mactool/pkg/oui"
)

// sqlFunc is a single scalar function plus its registration flags.
type sqlFunc struct {
	name string
	impl interface{}
	pure bool
}

// functions lists the scalar functions installed on each connection.
// mac_format appears twice since SQLite resolves overloads on the
// argument count.
func functions() []sqlFunc {
	return []sqlFunc{
		{"mac_format", macFormatDefault, true},
		{"mac_format", macFormatSelected, true},
		{"mac_prefix", vendorFunc("mac_prefix", fieldPrefix), true},
		{"mac_manuf", vendorFunc("mac_manuf", fieldManuf), true},
		{"mac_manuflong", vendorFunc("mac_manuflong", fieldManufLong), true},
		{"mac_comment", vendorFunc("mac_comment", fieldComment), true},
		{"mac_isunicast", classifyFunc("mac_isunicast", mac.Addr.IsUnicast), true},
		{"mac_ismulticast", classifyFunc("mac_ismulticast", mac.Addr.IsMulticast), true},
		{"mac_isuniversal", classifyFunc("mac_isuniversal", mac.Addr.IsUniversal), true},
		{"mac_islocal", classifyFunc("mac_islocal", mac.Addr.IsLocal), true},
	}
}

// resolveInput maps a driver-level argument to a parser input. The driver
// hands arguments over as int64, float64, string, []byte or nil; only
// text, blobs and NULL make sense as addresses.
func resolveInput(v interface{}) (mac.Input, error) {
	switch arg := v.(type) {
	case nil:
		return mac.Null(), nil
	case string:
		return mac.Text(arg), nil
	case []byte:
		return mac.Binary(arg), nil
	default:
		return mac.Input{}, fmt.Errorf("address argument must be text or a blob, not %T", v)
	}
}

// formatOptions is the decoded form of a mac_format selector argument.
type formatOptions struct {
	format       mac.Format
	nullOnBadMAC bool
}

// parseSelector interprets the second argument to mac_format. A leading
// '?' makes unparseable addresses yield NULL rather than an error and a
// leading '~' falls back to the default notation when the selector itself
// is unknown. The flags may repeat and combine in any order.
func parseSelector(v interface{}) (formatOptions, error) {
	opts := formatOptions{format: mac.FormatDefault}
	if v == nil {
		return opts, nil
	}
	sel, ok := v.(string)
	if !ok {
		return opts, fmt.Errorf("format argument must be text, not %T", v)
	}
	lenient := false
	for len(sel) > 0 && (sel[0] == '?' || sel[0] == '~') {
		if sel[0] == '?' {
			opts.nullOnBadMAC = true
		} else {
			lenient = true
		}
		sel = sel[1:]
	}
	format, err := mac.ParseFormat(sel)
	if err != nil {
		if lenient {
			metrics.DefaultQueryCounters.FormatFallbacks.Inc()
			return opts, nil
		}
		return opts, err
	}
	opts.format = format
	return opts, nil
}

// queryError counts a rejected call and passes the error through to the
// query.
func queryError(err error) (interface{}, error) {
	metrics.DefaultQueryCounters.Errors.Inc()
	return nil, err
}

func macFormatDefault(addr interface{}) (interface{}, error) {
	return formatMac(addr, nil)
}

func macFormatSelected(addr interface{}, selector interface{}) (interface{}, error) {
	return formatMac(addr, selector)
}

func formatMac(addr interface{}, selector interface{}) (interface{}, error) {
	metrics.DefaultQueryCounters.AddCall("mac_format")
	opts, err := parseSelector(selector)
	if err != nil {
		return queryError(err)
	}
	in, err := resolveInput(addr)
	if err != nil {
		return queryError(err)
	}
	if in.Kind == mac.NullInput {
		return nil, nil
	}
	a, err := mac.ParseInput(in)
	if err != nil {
		if opts.nullOnBadMAC {
			return nil, nil
		}
		return queryError(err)
	}
	formatted, err := a.Format(opts.format)
	if err != nil {
		return queryError(err)
	}
	return formatted, nil
}

// vendorField selects the part of a registry entry a function returns.
type vendorField int

const (
	fieldPrefix vendorField = iota
	fieldManuf
	fieldManufLong
	fieldComment
)

// vendorFunc builds a scalar function that looks up the vendor entry for
// an address and returns one field from it. Lookup misses and fields the
// registry doesn't carry yield NULL.
func vendorFunc(name string, field vendorField) func(interface{}) (interface{}, error) {
	return func(v interface{}) (interface{}, error) {
		metrics.DefaultQueryCounters.AddCall(name)
		in, err := resolveInput(v)
		if err != nil {
			return queryError(err)
		}
		if in.Kind == mac.NullInput {
			return nil, nil
		}
		a, err := mac.ParseInput(in)
		if err != nil {
			return queryError(err)
		}
		entry, ok := oui.Embedded().Lookup(a)
		if !ok {
			metrics.DefaultQueryCounters.VendorMisses.Inc()
			return nil, nil
		}
		metrics.DefaultQueryCounters.VendorHits.Inc()
		switch field {
		case fieldPrefix:
			return entry.Prefix.String(), nil
		case fieldManuf:
			return entry.Manuf, nil
		case fieldManufLong:
			if entry.ManufLong == "" {
				return nil, nil
			}
			return entry.ManufLong, nil
		case fieldComment:
			if entry.Comment == "" {
				return nil, nil
			}
			return entry.Comment, nil
		default:
			return queryError(fmt.Errorf("unknown vendor field %d", field))
		}
	}
}

// classifyFunc builds a scalar function that reports an address bit
// classification as 0 or 1.
func classifyFunc(name string, predicate func(mac.Addr) bool) func(interface{}) (interface{}, error) {
	return func(v interface{}) (interface{}, error) {
		metrics.DefaultQueryCounters.AddCall(name)
		in, err := resolveInput(v)
		if err != nil {
			return queryError(err)
		}
		if in.Kind == mac.NullInput {
			return nil, nil
		}
		a, err := mac.ParseInput(in)
		if err != nil {
			return queryError(err)
		}
		if predicate(a) {
			return int64(1), nil
		}
		return int64(0), nil
	}
}

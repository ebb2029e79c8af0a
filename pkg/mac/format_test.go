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
	"errors"
	"net"
	"testing"

	"github.com/mdlayher/netx/eui64"
	"github.com/stretchr/testify/require"
)

func TestFormatNotations(t *testing.T) {
	assert := require.New(t)

	tests := []struct {
		addr   string
		format Format
		want   string
	}{
		{"54:83:3a:a1:38:ae", FormatDash, "54-83-3a-a1-38-ae"},
		{"54:83:3A:A1:38:AE", FormatColon, "54:83:3a:a1:38:ae"},
		{"54:83:3a:a1:38:ae", FormatHex, "54833aa138ae"},
		{"54:83:3a:a1:38:ae", FormatDot, "5483.3aa1.38ae"},
		{"54-83-3a-a1-38-ae", FormatCanonical, "54:83:3a:a1:38:ae"},
		{"ff:ff:ff:ff:ff:ff", FormatCanonical, "ff:ff:ff:ff:ff:ff"},
		{"00:00:00:00:00:00", FormatDot, "0000.0000.0000"},
		{"48:a2:e6:22:36:ce", FormatInterfaceID, "4aa2:e6ff:fe22:36ce"},
		{"aa:bb:cc:dd:ee:ff", FormatInterfaceID, "a8bb:ccff:fedd:eeff"},
		{"48:a2:e6:22:36:ce", FormatLinkLocal, "fe80::4aa2:e6ff:fe22:36ce"},
		{"aa:bb:cc:dd:ee:ff", FormatLinkLocal, "fe80::a8bb:ccff:fedd:eeff"},
		{"44:67:55:08:65:5a", FormatLinkLocal, "fe80::4667:55ff:fe08:655a"},
	}
	for _, tc := range tests {
		a, err := Parse(tc.addr)
		assert.NoError(err)
		got, err := a.Format(tc.format)
		assert.NoError(err)
		assert.Equal(tc.want, got, "%s as %s", tc.addr, tc.format)
	}
}

func TestParseFormatSelectors(t *testing.T) {
	assert := require.New(t)

	tests := []struct {
		selector string
		want     Format
	}{
		{"dash", FormatDash},
		{"colon", FormatColon},
		{"hex", FormatHex},
		{"dot", FormatDot},
		{"canonical", FormatCanonical},
		{"interface-id", FormatInterfaceID},
		{"link-local", FormatLinkLocal},
		{"DASH", FormatDash},
		{"Link-Local", FormatLinkLocal},
		{" colon ", FormatColon},
		{"", FormatDefault},
	}
	for _, tc := range tests {
		f, err := ParseFormat(tc.selector)
		assert.NoError(err, "selector %q", tc.selector)
		assert.Equal(tc.want, f, "selector %q", tc.selector)
	}

	for _, selector := range []string{"dah", "hexstring", "bare", "eui64", "binary"} {
		_, err := ParseFormat(selector)
		assert.Error(err, "selector %q", selector)
		assert.True(errors.Is(err, ErrUnknownFormat), "selector %q", selector)
	}
}

func TestFormatSelectorRoundTrip(t *testing.T) {
	assert := require.New(t)

	for _, f := range []Format{FormatCanonical, FormatColon, FormatDash, FormatHex, FormatDot, FormatInterfaceID, FormatLinkLocal} {
		got, err := ParseFormat(f.String())
		assert.NoError(err)
		assert.Equal(f, got)
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	assert := require.New(t)

	addrs := []Addr{
		0,
		Broadcast,
		0x54833aa138ae,
		0x01005e000016,
		0x020000000001,
		0x8c1f64cb2001,
	}
	formats := []Format{FormatDash, FormatColon, FormatHex, FormatDot, FormatCanonical}
	for _, a := range addrs {
		for _, f := range formats {
			s, err := a.Format(f)
			assert.NoError(err)
			back, err := Parse(s)
			assert.NoError(err, "%s as %s", a, f)
			assert.Equal(a, back, "%s as %s", a, f)

			// Formatting the reparsed value again is stable
			again, err := back.Format(f)
			assert.NoError(err)
			assert.Equal(s, again)
		}
	}
}

func TestFormatUnknownValue(t *testing.T) {
	assert := require.New(t)

	_, err := Addr(0x54833aa138ae).Format(Format(99))
	assert.Error(err)
	assert.True(errors.Is(err, ErrUnknownFormat))
}

// The interface-id and link-local notations implement the modified EUI-64
// derivation from RFC 4291. Cross check the rendering against an
// independent implementation.
func TestLinkLocalMatchesEUI64(t *testing.T) {
	assert := require.New(t)

	for _, s := range []string{
		"48:a2:e6:22:36:ce",
		"aa:bb:cc:dd:ee:ff",
		"00:00:17:00:00:01",
		"b0:c5:59:fe:ff:01",
		"02:00:00:00:00:01",
	} {
		a, err := Parse(s)
		assert.NoError(err)

		ll, err := a.Format(FormatLinkLocal)
		assert.NoError(err)
		got := net.ParseIP(ll)
		assert.NotNil(got, "link-local %q should be a valid IPv6 address", ll)

		want, err := eui64.ParseMAC(net.ParseIP("fe80::"), a.HardwareAddr())
		assert.NoError(err)
		assert.True(want.Equal(got), "%s: got %s, eui64 derivation says %s", s, got, want)

		// ...and the interface-id is the host part of the link-local form
		iid, err := a.Format(FormatInterfaceID)
		assert.NoError(err)
		assert.Equal("fe80::"+iid, ll)

		// Decomposing the derived IP returns the original address
		_, hw, err := eui64.ParseIP(want)
		assert.NoError(err)
		assert.Equal(a.HardwareAddr().String(), hw.String())
	}
}

func BenchmarkFormatCanonical(b *testing.B) {
	a := Addr(0x54833aa138ae)
	for i := 0; i < b.N; i++ {
		if _, err := a.Format(FormatCanonical); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFormatLinkLocal(b *testing.B) {
	a := Addr(0x54833aa138ae)
	for i := 0; i < b.N; i++ {
		if _, err := a.Format(FormatLinkLocal); err != nil {
			b.Fatal(err)
		}
	}
}

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
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open(DriverName, ":memory:")
	if err != nil {
		t.Fatal("Unable to open database: ", err)
	}
	// A single connection keeps every statement on the same in-memory database
	db.SetMaxOpenConns(1)
	return db
}

func queryText(t *testing.T, db *sql.DB, query string, args ...interface{}) sql.NullString {
	var ret sql.NullString
	if err := db.QueryRow(query, args...).Scan(&ret); err != nil {
		t.Fatalf("Query %s failed: %v", query, err)
	}
	return ret
}

func TestFormatFunction(t *testing.T) {
	assert := require.New(t)
	db := openTestDB(t)
	defer db.Close()

	tests := []struct {
		mac      string
		selector string
		expected string
	}{
		{"54:83:3a:a1:38:ae", "canonical", "54:83:3a:a1:38:ae"},
		{"54-83-3A-A1-38-AE", "colon", "54:83:3a:a1:38:ae"},
		{"5483.3aa1.38ae", "dash", "54-83-3a-a1-38-ae"},
		{"0x54833AA138AE", "hex", "54833aa138ae"},
		{"54:83:3a:a1:38:ae", "dot", "5483.3aa1.38ae"},
		{"48:a2:e6:22:36:ce", "interface-id", "4aa2:e6ff:fe22:36ce"},
		{"44:67:55:08:65:5a", "link-local", "fe80::4667:55ff:fe08:655a"},
		{"54:83:3a:a1:38:ae", "", "54:83:3a:a1:38:ae"},
		{"54:83:3a:a1:38:ae", "DASH", "54-83-3a-a1-38-ae"},
		{"54:83:3a:a1:38:ae", " colon ", "54:83:3a:a1:38:ae"},
	}
	for _, test := range tests {
		ret := queryText(t, db, "SELECT mac_format(?, ?)", test.mac, test.selector)
		assert.True(ret.Valid, "mac_format(%s, %s) returned NULL", test.mac, test.selector)
		assert.Equal(test.expected, ret.String, "mac_format(%s, %s)", test.mac, test.selector)
	}

	// Single argument form uses the canonical notation
	ret := queryText(t, db, "SELECT mac_format(?)", "5483.3AA1.38AE")
	assert.True(ret.Valid)
	assert.Equal("54:83:3a:a1:38:ae", ret.String)
}

func TestFormatNullHandling(t *testing.T) {
	assert := require.New(t)
	db := openTestDB(t)
	defer db.Close()

	assert.False(queryText(t, db, "SELECT mac_format(NULL)").Valid)
	assert.False(queryText(t, db, "SELECT mac_format(NULL, 'dash')").Valid)

	// NULL selector means the default notation
	ret := queryText(t, db, "SELECT mac_format(?, NULL)", "54-83-3a-a1-38-ae")
	assert.True(ret.Valid)
	assert.Equal("54:83:3a:a1:38:ae", ret.String)

	// The selector is checked before the address so a broken query shows
	// up even when the column is NULL
	var s sql.NullString
	err := db.QueryRow("SELECT mac_format(NULL, 'dah')").Scan(&s)
	assert.Error(err)
	assert.Contains(err.Error(), "unknown format")
}

func TestFormatErrors(t *testing.T) {
	assert := require.New(t)
	db := openTestDB(t)
	defer db.Close()

	tests := []struct {
		query    string
		args     []interface{}
		expected string
	}{
		{"SELECT mac_format(?)", []interface{}{"b8s:d7:af:8f:zb4:bd"}, "malformed"},
		{"SELECT mac_format(?)", []interface{}{"54:83:3a:a1:38"}, "malformed"},
		{"SELECT mac_format(?)", []interface{}{""}, "empty input"},
		{"SELECT mac_format(?)", []interface{}{"   "}, "empty input"},
		{"SELECT mac_format(?, ?)", []interface{}{"54:83:3a:a1:38:ae", "dah"}, "unknown format"},
		{"SELECT mac_format(42)", nil, "address argument must be text"},
		{"SELECT mac_format(1.5)", nil, "address argument must be text"},
		{"SELECT mac_format(?, 42)", []interface{}{"54:83:3a:a1:38:ae"}, "format argument must be text"},
	}
	for _, test := range tests {
		var s sql.NullString
		err := db.QueryRow(test.query, test.args...).Scan(&s)
		assert.Error(err, "expected %s to fail", test.query)
		assert.Contains(err.Error(), test.expected, "query %s", test.query)
	}
}

func TestFormatFlags(t *testing.T) {
	assert := require.New(t)
	db := openTestDB(t)
	defer db.Close()

	// '?' turns address errors into NULL
	assert.False(queryText(t, db, "SELECT mac_format(?, '?colon')", "b8s:d7:af:8f:zb4:bd").Valid)
	assert.False(queryText(t, db, "SELECT mac_format(?, '?dash')", "").Valid)

	// '~' falls back to the default notation on unknown selectors
	ret := queryText(t, db, "SELECT mac_format(?, '~dah')", "fc:69:47:7c:e5:07")
	assert.True(ret.Valid)
	assert.Equal("fc:69:47:7c:e5:07", ret.String)

	// Flags combine in any order and may repeat
	for _, selector := range []string{"?~dah", "~?dah", "??~~dah"} {
		ret = queryText(t, db, "SELECT mac_format(?, ?)", "fc:69:47:7c:e5:07", selector)
		assert.True(ret.Valid)
		assert.Equal("fc:69:47:7c:e5:07", ret.String, "selector %s", selector)
	}
	ret = queryText(t, db, "SELECT mac_format(?, '~?dash')", "fc:69:47:7c:e5:07")
	assert.True(ret.Valid)
	assert.Equal("fc-69-47-7c-e5-07", ret.String)

	// '~' does not forgive bad addresses...
	var s sql.NullString
	err := db.QueryRow("SELECT mac_format(?, '~colon')", "b8s:d7:af:8f:zb4:bd").Scan(&s)
	assert.Error(err)
	assert.Contains(err.Error(), "malformed")

	// ...and '?' does not forgive bad selectors
	err = db.QueryRow("SELECT mac_format(?, '?dah')", "54:83:3a:a1:38:ae").Scan(&s)
	assert.Error(err)
	assert.Contains(err.Error(), "unknown format")
}

func TestBlobArguments(t *testing.T) {
	assert := require.New(t)
	db := openTestDB(t)
	defer db.Close()

	ret := queryText(t, db, "SELECT mac_format(?)", []byte{0x54, 0x83, 0x3a, 0xa1, 0x38, 0xae})
	assert.True(ret.Valid)
	assert.Equal("54:83:3a:a1:38:ae", ret.String)

	ret = queryText(t, db, "SELECT mac_format(X'01005E000016', 'dash')")
	assert.True(ret.Valid)
	assert.Equal("01-00-5e-00-00-16", ret.String)

	var s sql.NullString
	err := db.QueryRow("SELECT mac_format(?)", []byte{1, 2, 3}).Scan(&s)
	assert.Error(err)
	assert.Contains(err.Error(), "wrong length")

	// '?' covers blob length errors as well
	assert.False(queryText(t, db, "SELECT mac_format(?, '?')", []byte{1, 2, 3}).Valid)
}

func TestVendorFunctions(t *testing.T) {
	assert := require.New(t)
	db := openTestDB(t)
	defer db.Close()

	tests := []struct {
		function string
		mac      string
		expected string
		valid    bool
	}{
		{"mac_prefix", "00:00:17:aa:bb:cc", "00:00:17", true},
		{"mac_manuf", "00:00:17:aa:bb:cc", "Oracle", true},
		{"mac_manuflong", "00:00:17:aa:bb:cc", "", false},
		{"mac_comment", "00:00:17:aa:bb:cc", "", false},
		{"mac_manuf", "2c:23:3a:99:00:01", "HewlettP", true},
		{"mac_manuflong", "2c:23:3a:99:00:01", "Hewlett Packard", true},
		{"mac_comment", "08:00:87:11:22:33", "terminal servers", true},
		{"mac_manuf", "8c:47:6e:3f:ff:ff", "Shanghai", true},
		{"mac_prefix", "8c:47:6e:3f:ff:ff", "8c:47:6e:30:00:00/28", true},
		{"mac_manuf", "8c:47:6e:aa:bb:cc", "IEEERegi", true},
		{"mac_manuf", "8c:1f:64:cb:2f:ff", "DyncirSo", true},
		{"mac_prefix", "8c:1f:64:cb:2f:ff", "8c:1f:64:cb:20:00/36", true},
		{"mac_manuflong", "8c:1f:64:cb:2f:ff", "Dyncir Soluções Tecnológicas Ltda", true},
		{"mac_prefix", "b0:c5:5a:11:22:33", "", false},
		{"mac_manuf", "b0:c5:5a:11:22:33", "", false},
		{"mac_manuf", "33:33:00:00:00:01", "", false},
		{"mac_manuf", "02:00:00:11:22:33", "", false},
	}
	for _, test := range tests {
		ret := queryText(t, db, "SELECT "+test.function+"(?)", test.mac)
		assert.Equal(test.valid, ret.Valid, "%s(%s)", test.function, test.mac)
		if test.valid {
			assert.Equal(test.expected, ret.String, "%s(%s)", test.function, test.mac)
		}
	}

	// NULL and errors behave like mac_format
	assert.False(queryText(t, db, "SELECT mac_manuf(NULL)").Valid)
	var s sql.NullString
	err := db.QueryRow("SELECT mac_manuf(?)", "not a mac").Scan(&s)
	assert.Error(err)
	assert.Contains(err.Error(), "malformed")
}

func TestClassifierFunctions(t *testing.T) {
	assert := require.New(t)
	db := openTestDB(t)
	defer db.Close()

	tests := []struct {
		mac         string
		isUnicast   int64
		isMulticast int64
		isUniversal int64
		isLocal     int64
	}{
		{"54:83:3a:a1:38:ae", 1, 0, 1, 0},
		{"01:00:5e:00:00:16", 0, 1, 1, 0},
		{"02:00:00:00:00:01", 1, 0, 0, 1},
		{"33:33:00:00:00:fb", 0, 1, 0, 1},
		{"ff:ff:ff:ff:ff:ff", 0, 1, 0, 1},
	}
	for _, test := range tests {
		var unicast, multicast, universal, local sql.NullInt64
		err := db.QueryRow(
			"SELECT mac_isunicast(?), mac_ismulticast(?), mac_isuniversal(?), mac_islocal(?)",
			test.mac, test.mac, test.mac, test.mac).
			Scan(&unicast, &multicast, &universal, &local)
		assert.NoError(err)
		assert.True(unicast.Valid && multicast.Valid && universal.Valid && local.Valid)
		assert.Equal(test.isUnicast, unicast.Int64, "mac_isunicast(%s)", test.mac)
		assert.Equal(test.isMulticast, multicast.Int64, "mac_ismulticast(%s)", test.mac)
		assert.Equal(test.isUniversal, universal.Int64, "mac_isuniversal(%s)", test.mac)
		assert.Equal(test.isLocal, local.Int64, "mac_islocal(%s)", test.mac)
	}

	var ret sql.NullInt64
	assert.NoError(db.QueryRow("SELECT mac_ismulticast(NULL)").Scan(&ret))
	assert.False(ret.Valid)

	err := db.QueryRow("SELECT mac_isunicast(?)", "nope").Scan(&ret)
	assert.Error(err)
	assert.Contains(err.Error(), "malformed")
}

// TestFixtureQuery runs the functions over a table the way the verification
// tool does, with the lenient selector expression protecting the scan from
// broken rows.
func TestFixtureQuery(t *testing.T) {
	assert := require.New(t)
	db := openTestDB(t)
	defer db.Close()

	_, err := db.Exec("CREATE TABLE macs (mac TEXT, format TEXT)")
	assert.NoError(err)
	_, err = db.Exec(`INSERT INTO macs (mac, format) VALUES
		('54:83:3a:a1:38:ae', 'dash'),
		('01:00:5e:00:00:16', ''),
		('04:c9:d9:bf:03:2f', NULL),
		('fc:69:47:7c:e5:07', 'dah'),
		('b8s:d7:af:8f:zb4:bd', 'colon'),
		('44:67:55:08:65:5a', 'link-local')`)
	assert.NoError(err)

	rows, err := db.Query("SELECT mac_format(mac, '?~' || format) FROM macs ORDER BY rowid")
	assert.NoError(err)
	defer rows.Close()

	expected := []sql.NullString{
		{String: "54-83-3a-a1-38-ae", Valid: true},
		{String: "01:00:5e:00:00:16", Valid: true},
		// '?~' || NULL is NULL which selects the default notation
		{String: "04:c9:d9:bf:03:2f", Valid: true},
		{String: "fc:69:47:7c:e5:07", Valid: true},
		{Valid: false},
		{String: "fe80::4667:55ff:fe08:655a", Valid: true},
	}
	count := 0
	for rows.Next() {
		var ret sql.NullString
		assert.NoError(rows.Scan(&ret))
		assert.True(count < len(expected))
		assert.Equal(expected[count], ret, "row %d", count)
		count++
	}
	assert.NoError(rows.Err())
	assert.Equal(len(expected), count)
}

func BenchmarkFormatFunction(b *testing.B) {
	db, err := sql.Open(DriverName, ":memory:")
	if err != nil {
		b.Fatal(err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var s string
		if err := db.QueryRow("SELECT mac_format('54:83:3a:a1:38:ae', 'dash')").Scan(&s); err != nil {
			b.Fatal(err)
		}
	}
}

package main

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

// querytest verifies the SQL function surface end to end: it loads a
// fixture table into an in-memory database and checks the results of the
// MAC functions, including the rows that are supposed to misbehave.
import (
	"database/sql"
	"fmt"
	"os"

	"github.com/ExploratoryEngineering/logging"
	"github.com/ExploratoryEngineering/params"
	"github.com/eesrc/mactool/pkg/sqlfunc"
	"github.com/eesrc/mactool/pkg/utils"
	"github.com/eesrc/mactool/pkg/version"
)

type parameters struct {
	Log     utils.LogParameters
	Version bool `param:"desc=Show version, then exit;default=false"`
}

func text(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func render(v sql.NullString) string {
	if !v.Valid {
		return "NULL"
	}
	return v.String
}

func createFixture(db *sql.DB) error {
	if _, err := db.Exec("CREATE TABLE macs (mac TEXT, format TEXT)"); err != nil {
		return err
	}
	_, err := db.Exec(`INSERT INTO macs (mac, format) VALUES
		('54:83:3a:a1:38:ae', 'dash'),
		('01:00:5e:00:00:16', ''),
		('04:c9:d9:bf:03:2f', NULL),
		('fc:69:47:7c:e5:07', 'dah'),
		('b8s:d7:af:8f:zb4:bd', 'colon'),
		('44:67:55:08:65:5a', 'link-local')`)
	return err
}

// runFixtureScan formats the whole fixture table with the lenient
// selector expression. The broken row comes back as NULL, the row with
// an unknown selector falls back to the canonical notation.
func runFixtureScan(db *sql.DB) int {
	expected := []sql.NullString{
		text("54-83-3a-a1-38-ae"),
		text("01:00:5e:00:00:16"),
		text("04:c9:d9:bf:03:2f"),
		text("fc:69:47:7c:e5:07"),
		{},
		text("fe80::4667:55ff:fe08:655a"),
	}

	rows, err := db.Query("SELECT mac, mac_format(mac, '?~' || format) FROM macs ORDER BY rowid")
	if err != nil {
		logging.Error("Fixture scan failed: %v", err)
		return 1
	}
	defer rows.Close()

	failed := 0
	count := 0
	for rows.Next() {
		var src string
		var ret sql.NullString
		if err := rows.Scan(&src, &ret); err != nil {
			logging.Error("Unable to scan fixture row %d: %v", count, err)
			return failed + 1
		}
		if count >= len(expected) {
			logging.Error("Got more rows than expected (%d)", count)
			failed++
		} else if ret != expected[count] {
			logging.Error("Row %d (%s): got %s, expected %s", count, src, render(ret), render(expected[count]))
			failed++
		} else {
			logging.Debug("Row %d (%s) => %s", count, src, render(ret))
		}
		count++
	}
	if err := rows.Err(); err != nil {
		logging.Error("Fixture scan failed: %v", err)
		failed++
	}
	if count < len(expected) {
		logging.Error("Got %d fixture rows, expected %d", count, len(expected))
		failed++
	}
	return failed
}

type check struct {
	query    string
	expected sql.NullString
}

var functionChecks = []check{
	{"SELECT mac_format('48:a2:e6:22:36:ce', 'interface-id')", text("4aa2:e6ff:fe22:36ce")},
	{"SELECT mac_format(X'54833AA138AE', 'dot')", text("5483.3aa1.38ae")},
	{"SELECT mac_format('0x54833AA138AE', 'hex')", text("54833aa138ae")},
	{"SELECT mac_prefix('00:00:17:aa:bb:cc')", text("00:00:17")},
	{"SELECT mac_manuf('00:00:17:aa:bb:cc')", text("Oracle")},
	{"SELECT mac_manuflong('2c:23:3a:99:00:01')", text("Hewlett Packard")},
	{"SELECT mac_comment('08:00:87:11:22:33')", text("terminal servers")},
	{"SELECT mac_manuf('8c:1f:64:cb:2f:ff')", text("DyncirSo")},
	{"SELECT mac_prefix('8c:47:6e:3f:ff:ff')", text("8c:47:6e:30:00:00/28")},
	{"SELECT mac_manuf('b0:c5:5a:11:22:33')", sql.NullString{}},
	{"SELECT mac_isunicast('54:83:3a:a1:38:ae')", text("1")},
	{"SELECT mac_ismulticast('01:00:5e:00:00:16')", text("1")},
	{"SELECT mac_islocal('02:00:00:00:00:01')", text("1")},
	{"SELECT mac_isuniversal('54:83:3a:a1:38:ae')", text("1")},
	{"SELECT mac_ismulticast(NULL)", sql.NullString{}},
}

func runChecks(db *sql.DB, checks []check) int {
	failed := 0
	for _, c := range checks {
		var ret sql.NullString
		if err := db.QueryRow(c.query).Scan(&ret); err != nil {
			logging.Error("%s failed: %v", c.query, err)
			failed++
			continue
		}
		if ret != c.expected {
			logging.Error("%s: got %s, expected %s", c.query, render(ret), render(c.expected))
			failed++
			continue
		}
		logging.Debug("%s => %s", c.query, render(ret))
	}
	return failed
}

func main() {
	var cfg parameters
	if err := params.NewEnvFlag(&cfg, os.Args[1:]); err != nil {
		fmt.Println(err.Error())
		return
	}
	if cfg.Version {
		fmt.Println(version.Release())
		return
	}
	utils.InitLogs("querytest", cfg.Log)

	db, err := sql.Open(sqlfunc.DriverName, ":memory:")
	if err != nil {
		logging.Error("Unable to open database: %v", err)
		os.Exit(1)
	}
	defer db.Close()
	// Everything must run on the same in-memory database
	db.SetMaxOpenConns(1)

	if err := createFixture(db); err != nil {
		logging.Error("Unable to create fixture table: %v", err)
		os.Exit(1)
	}

	failed := runFixtureScan(db)
	failed += runChecks(db, functionChecks)
	if failed > 0 {
		logging.Error("%d checks failed", failed)
		os.Exit(1)
	}
	logging.Info("All checks passed")
}

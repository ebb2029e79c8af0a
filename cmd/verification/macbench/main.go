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

// macbench loads generated addresses into an in-memory table and times
// full-table scans through the MAC functions. Mostly useful to spot
// regressions in the function layer since the SQLite round trip dominates.
import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/ExploratoryEngineering/logging"
	"github.com/ExploratoryEngineering/params"
	"github.com/eesrc/mactool/pkg/metrics"
	"github.com/eesrc/mactool/pkg/sqlfunc"
	"github.com/eesrc/mactool/pkg/utils"
	"github.com/eesrc/mactool/pkg/version"
)

type parameters struct {
	Log                utils.LogParameters
	MonitoringEndpoint string `param:"desc=Monitoring endpoint;default=localhost:0"`
	Count              int    `param:"desc=Number of addresses to generate;default=100000"`
	Loop               bool   `param:"desc=Keep scanning until interrupted;default=false"`
	Version            bool   `param:"desc=Show version, then exit;default=false"`
}

func populate(db *sql.DB, count int) error {
	if _, err := db.Exec("CREATE TABLE macs (mac TEXT)"); err != nil {
		return err
	}
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare("INSERT INTO macs (mac) VALUES (?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	gen := newMacGenerator([3]byte{0xb0, 0xc5, 0x59})
	for i := 0; i < count; i++ {
		if _, err := stmt.Exec(gen.NextMAC().String()); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

type benchQuery struct {
	name  string
	query string
}

// The aggregate forces the function to run for every row in the table.
var benchQueries = []benchQuery{
	{"mac_format/canonical", "SELECT count(mac_format(mac)) FROM macs"},
	{"mac_format/dash", "SELECT count(mac_format(mac, 'dash')) FROM macs"},
	{"mac_format/interface-id", "SELECT count(mac_format(mac, 'interface-id')) FROM macs"},
	{"mac_format/link-local", "SELECT count(mac_format(mac, 'link-local')) FROM macs"},
	{"mac_prefix", "SELECT count(mac_prefix(mac)) FROM macs"},
	{"mac_manuf", "SELECT count(mac_manuf(mac)) FROM macs"},
	{"mac_ismulticast", "SELECT sum(mac_ismulticast(mac)) FROM macs"},
}

func runQueries(db *sql.DB, count int) {
	for _, q := range benchQueries {
		start := time.Now()
		var ret sql.NullInt64
		if err := db.QueryRow(q.query).Scan(&ret); err != nil {
			logging.Error("%s failed: %v", q.name, err)
			continue
		}
		elapsed := time.Since(start)
		logging.Info("%-24s %d rows in %6.1f ms (%.0f addresses/sec)",
			q.name, count,
			float64(elapsed)/float64(time.Millisecond),
			float64(count)/elapsed.Seconds())
	}
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
	utils.InitLogs("macbench", cfg.Log)

	metrics.DefaultQueryCounters.Start()
	monitoring, err := metrics.NewMonitoringServer(cfg.MonitoringEndpoint)
	if err != nil {
		logging.Error("Unable to create metrics endpoint: %v", err)
		os.Exit(1)
	}
	if err := monitoring.Start(); err != nil {
		logging.Error("Unable to start metrics endpoint: %v", err)
		os.Exit(1)
	}
	logging.Info("Metrics endpoint is at %s", monitoring.ServerURL())

	db, err := sql.Open(sqlfunc.DriverName, ":memory:")
	if err != nil {
		logging.Error("Unable to open database: %v", err)
		os.Exit(1)
	}
	defer db.Close()
	// Everything must run on the same in-memory database
	db.SetMaxOpenConns(1)

	start := time.Now()
	if err := populate(db, cfg.Count); err != nil {
		logging.Error("Unable to load address table: %v", err)
		os.Exit(1)
	}
	logging.Info("Loaded %d addresses in %.1f ms", cfg.Count,
		float64(time.Since(start))/float64(time.Millisecond))

	if cfg.Loop {
		go func() {
			for {
				runQueries(db, cfg.Count)
			}
		}()
		utils.WaitForSignal()
		return
	}
	runQueries(db, cfg.Count)
}

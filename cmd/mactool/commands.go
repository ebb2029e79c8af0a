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
import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/eesrc/mactool/pkg/mac"
	"github.com/eesrc/mactool/pkg/oui"
	"github.com/eesrc/mactool/pkg/sqlfunc"
)

// CommandList is the subcommands for the mactool utility
type CommandList struct {
	Format  FormatCommand  `kong:"cmd,help='Reformat MAC addresses'"`
	Inspect InspectCommand `kong:"cmd,help='Show address classification and vendor details'"`
	Vendor  VendorCommand  `kong:"cmd,help='Look up the vendor for addresses'"`
	Query   QueryCommand   `kong:"cmd,help='Run a SQL query with the MAC functions installed'"`
}

// RunContext is the common context for the commands. The Command type
// implements this interface and can be used as is.
type RunContext interface {
	Registry() (*oui.DB, error)
	MacCommands() CommandList
}

// Command is the default configuration for the mactool utility
type Command struct {
	ManufFile string      `kong:"help='Vendor registry in Wireshark manuf format. The built-in registry is used if this is not set.',type='existingfile'"`
	Commands  CommandList `kong:"embed"`
}

// Registry returns the vendor registry the commands should use
func (c *Command) Registry() (*oui.DB, error) {
	if c.ManufFile == "" {
		return oui.Embedded(), nil
	}
	f, err := os.Open(c.ManufFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return oui.Parse(f)
}

// MacCommands returns the command list
func (c *Command) MacCommands() CommandList {
	return c.Commands
}

// The commands print their own error messages on standard output and
// return this generic error to flag the failure.
var errStd = errors.New("error")

// FormatCommand reformats MAC addresses given on the command line.
type FormatCommand struct {
	Notation string   `kong:"help='Output notation',default='canonical'"`
	MACs     []string `kong:"arg,required,help='MAC addresses to format'"`
}

// Run reformats the addresses. Addresses that won't parse are reported
// and make the command exit with an error once the rest are processed.
func (c *FormatCommand) Run(rc RunContext) error {
	format, err := mac.ParseFormat(rc.MacCommands().Format.Notation)
	if err != nil {
		fmt.Printf("Unknown notation %s\n", rc.MacCommands().Format.Notation)
		return errStd
	}
	failed := false
	for _, arg := range rc.MacCommands().Format.MACs {
		a, err := mac.Parse(arg)
		if err != nil {
			fmt.Printf("*** %s: %v\n", arg, err)
			failed = true
			continue
		}
		formatted, err := a.Format(format)
		if err != nil {
			fmt.Printf("*** %s: %v\n", arg, err)
			failed = true
			continue
		}
		fmt.Printf("%s -> %s\n", arg, formatted)
	}
	if failed {
		return errStd
	}
	return nil
}

// InspectCommand shows the classification bits, the EUI-64 derivations
// and the vendor for addresses.
type InspectCommand struct {
	MACs []string `kong:"arg,required,help='MAC addresses to inspect'"`
}

// Run prints a short report for each address.
func (c *InspectCommand) Run(rc RunContext) error {
	registry, err := rc.Registry()
	if err != nil {
		fmt.Printf("Unable to load vendor registry: %v\n", err)
		return errStd
	}
	failed := false
	for _, arg := range rc.MacCommands().Inspect.MACs {
		a, err := mac.Parse(arg)
		if err != nil {
			fmt.Printf("*** %s: %v\n", arg, err)
			failed = true
			continue
		}
		printInspect(registry, a)
	}
	if failed {
		return errStd
	}
	return nil
}

func printInspect(registry *oui.DB, a mac.Addr) {
	cast := "unicast"
	if a.IsMulticast() {
		cast = "multicast"
	}
	admin := "universally administered"
	if a.IsLocal() {
		admin = "locally administered"
	}
	interfaceID, _ := a.Format(mac.FormatInterfaceID)
	linkLocal, _ := a.Format(mac.FormatLinkLocal)

	fmt.Printf("%s\n", a)
	fmt.Printf("    %s, %s\n", cast, admin)
	fmt.Printf("    interface id: %s\n", interfaceID)
	fmt.Printf("    link-local:   %s\n", linkLocal)
	if entry, ok := registry.Lookup(a); ok {
		fmt.Printf("    vendor:       %s\n", vendorLine(entry))
	} else {
		fmt.Printf("    vendor:       unknown\n")
	}
}

// VendorCommand looks up the vendor entry for addresses. Addresses
// without a registry entry aren't errors; locally administered and
// randomized addresses won't have one.
type VendorCommand struct {
	MACs []string `kong:"arg,required,help='MAC addresses to look up'"`
}

// Run prints the registry entry for each address.
func (c *VendorCommand) Run(rc RunContext) error {
	registry, err := rc.Registry()
	if err != nil {
		fmt.Printf("Unable to load vendor registry: %v\n", err)
		return errStd
	}
	failed := false
	for _, arg := range rc.MacCommands().Vendor.MACs {
		a, err := mac.Parse(arg)
		if err != nil {
			fmt.Printf("*** %s: %v\n", arg, err)
			failed = true
			continue
		}
		entry, ok := registry.Lookup(a)
		if !ok {
			fmt.Printf("%s: no vendor entry\n", a)
			continue
		}
		fmt.Printf("%s: %s\n", a, vendorLine(entry))
	}
	if failed {
		return errStd
	}
	return nil
}

func vendorLine(entry oui.Entry) string {
	line := fmt.Sprintf("%s [%s]", entry.Manuf, entry.Prefix)
	if entry.ManufLong != "" {
		line += " " + entry.ManufLong
	}
	if entry.Comment != "" {
		line += " # " + entry.Comment
	}
	return line
}

// QueryCommand runs a single SQL query on a database opened with the
// MAC functions installed.
type QueryCommand struct {
	DB    string `kong:"help='SQLite database file',default=':memory:'"`
	Query string `kong:"arg,required,help='SQL query to run'"`
}

// Run executes the query and prints the rows pipe separated.
func (c *QueryCommand) Run(rc RunContext) error {
	db, err := sql.Open(sqlfunc.DriverName, rc.MacCommands().Query.DB)
	if err != nil {
		fmt.Printf("Unable to open database: %v\n", err)
		return errStd
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	rows, err := db.Query(rc.MacCommands().Query.Query)
	if err != nil {
		fmt.Printf("Query error: %v\n", err)
		return errStd
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		fmt.Printf("Query error: %v\n", err)
		return errStd
	}
	fmt.Println(strings.Join(cols, "|"))

	values := make([]interface{}, len(cols))
	for i := range values {
		values[i] = new(interface{})
	}
	for rows.Next() {
		if err := rows.Scan(values...); err != nil {
			fmt.Printf("Scan error: %v\n", err)
			return errStd
		}
		fields := make([]string, len(cols))
		for i := range values {
			fields[i] = renderValue(*values[i].(*interface{}))
		}
		fmt.Println(strings.Join(fields, "|"))
	}
	if err := rows.Err(); err != nil {
		fmt.Printf("Query error: %v\n", err)
		return errStd
	}
	return nil
}

// renderValue makes a driver value printable. The driver hands back a
// small fixed set of Go types.
func renderValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return fmt.Sprintf("x'%x'", val)
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}

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
	"strings"
	"sync"

	_ "embed"
)

//go:embed manuf.txt
var manufData string

var (
	embeddedOnce sync.Once
	embeddedDB   *DB
)

// Embedded returns the registry compiled into the binary. The registry is
// built on first use and shared between all callers. Panics if the
// embedded dataset doesn't parse; that is a build defect, not a runtime
// condition.
func Embedded() *DB {
	embeddedOnce.Do(func() {
		db, err := Parse(strings.NewReader(manufData))
		if err != nil {
			panic(err)
		}
		embeddedDB = db
	})
	return embeddedDB
}

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

	"github.com/ExploratoryEngineering/logging"
	"github.com/mattn/go-sqlite3"
)

// DriverName is the name of the database/sql driver that carries the MAC
// address functions. Open a database with sql.Open(sqlfunc.DriverName, ...)
// and every connection in the pool gets the functions installed.
const DriverName = "sqlite3_mac"

func init() {
	sql.Register(DriverName, &sqlite3.SQLiteDriver{
		ConnectHook: Register,
	})
}

// Register installs the MAC address functions on a single SQLite connection.
// The built-in driver uses it as its connect hook; callers that configure
// their own SQLiteDriver can chain it into an existing hook.
func Register(conn *sqlite3.SQLiteConn) error {
	for _, f := range functions() {
		if err := conn.RegisterFunc(f.name, f.impl, f.pure); err != nil {
			logging.Warning("Unable to register SQL function %s: %v", f.name, err)
			return err
		}
	}
	return nil
}

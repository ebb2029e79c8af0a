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
	"os"

	"github.com/alecthomas/kong"
)

func main() {
	cmd := &Command{}
	ctx := kong.Parse(cmd,
		kong.Name("mactool"),
		kong.Description("MAC address swiss army knife"),
		kong.BindTo(cmd, (*RunContext)(nil)),
		kong.UsageOnError(),
	)
	if err := ctx.Run(); err != nil {
		os.Exit(1)
	}
}

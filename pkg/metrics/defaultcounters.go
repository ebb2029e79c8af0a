package metrics

//
//Copyright 2019 Telenor Digital AS
//
//Licensed under the Apache License, Version 2.0 (the "License");
//you may not use this file except in compliance with the License.
//You may obtain a copy of the License at
//
//http://www.apache.org/licenses/LICENSE-2.0
//
//Unless required by applicable law or agreed to in writing, software
//distributed under the License is distributed on an "AS IS" BASIS,
//WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//See the License for the specific language governing permissions and
//limitations under the License.
//
// This is the default counters in the package. They include convenience
// methods. This *does* introduce pacakge-level state but there's a *lot* less
// clutter for the code while not introducing additional dependencies.
//
// It works similarly to the http.DefaultClient construct in the standard
// library.

// DefaultQueryCounters is the default counters for the SQL function layer.
// The counters count regardless of registration; nothing shows up on the
// metrics endpoint until Start is called.
var DefaultQueryCounters *QueryCounters

func init() {
	DefaultQueryCounters = NewQueryCounters()
}

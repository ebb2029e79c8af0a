package metrics

//
//Copyright 2020 Telenor Digital AS
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
import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// QueryCounters contains the counters for the SQL function layer.
type QueryCounters struct {
	Calls           *prometheus.CounterVec // Function invocations by function name
	Errors          prometheus.Counter     // Calls rejected with an error
	VendorHits      prometheus.Counter     // Registry lookups that found a vendor
	VendorMisses    prometheus.Counter     // Registry lookups that came up empty
	FormatFallbacks prometheus.Counter     // Unknown format selectors replaced with the default
}

// NewQueryCounters creates a new set of counters for the SQL function layer
func NewQueryCounters() *QueryCounters {
	ret := &QueryCounters{
		Calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mac_function_calls",
			Help: "SQL function invocations",
		}, []string{"name"}),
		Errors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mac_function_errors",
			Help: "SQL function calls rejected with an error",
		}),
		VendorHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mac_vendor_hits",
			Help: "Vendor registry lookups with a match",
		}),
		VendorMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mac_vendor_misses",
			Help: "Vendor registry lookups without a match",
		}),
		FormatFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mac_format_fallbacks",
			Help: "Unknown format selectors replaced with the default",
		}),
	}
	return ret
}

var queryInitCounters sync.Once

// Start registers the counters
func (q *QueryCounters) Start() {
	queryInitCounters.Do(func() {
		prometheus.MustRegister(q.Calls)
		prometheus.MustRegister(q.Errors)
		prometheus.MustRegister(q.VendorHits)
		prometheus.MustRegister(q.VendorMisses)
		prometheus.MustRegister(q.FormatFallbacks)
	})
	q.Errors.Add(0)
	q.VendorHits.Add(0)
	q.VendorMisses.Add(0)
	q.FormatFallbacks.Add(0)
	q.Calls.With(prometheus.Labels{"name": "mac_format"}).Add(0)
	q.Calls.With(prometheus.Labels{"name": "mac_prefix"}).Add(0)
	q.Calls.With(prometheus.Labels{"name": "mac_manuf"}).Add(0)
	q.Calls.With(prometheus.Labels{"name": "mac_manuflong"}).Add(0)
	q.Calls.With(prometheus.Labels{"name": "mac_comment"}).Add(0)
	q.Calls.With(prometheus.Labels{"name": "mac_isunicast"}).Add(0)
	q.Calls.With(prometheus.Labels{"name": "mac_ismulticast"}).Add(0)
	q.Calls.With(prometheus.Labels{"name": "mac_isuniversal"}).Add(0)
	q.Calls.With(prometheus.Labels{"name": "mac_islocal"}).Add(0)
}

// AddCall increments the invocation counter for a function
func (q *QueryCounters) AddCall(name string) {
	q.Calls.With(prometheus.Labels{"name": name}).Inc()
}

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
import (
	"fmt"
	"net"
	"net/http"

	"github.com/ExploratoryEngineering/logging"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MonitoringServer is the HTTP endpoint that exposes the prometheus
// counters, plus a trivial health check.
type MonitoringServer struct {
	listener net.Listener
	server   *http.Server
}

// NewMonitoringServer creates a monitoring endpoint listening on the given
// host:port combination. Use port 0 to get a random port.
func NewMonitoringServer(endpoint string) (*MonitoringServer, error) {
	listener, err := net.Listen("tcp", endpoint)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	return &MonitoringServer{
		listener: listener,
		server:   &http.Server{Handler: mux},
	}, nil
}

// Start launches the server. The server runs until the process exits or
// Shutdown is called.
func (m *MonitoringServer) Start() error {
	go func() {
		if err := m.server.Serve(m.listener); err != nil && err != http.ErrServerClosed {
			logging.Warning("Monitoring server exited: %v", err)
		}
	}()
	return nil
}

// Shutdown stops the server
func (m *MonitoringServer) Shutdown() error {
	return m.server.Close()
}

// ServerURL returns the URL for the metrics endpoint
func (m *MonitoringServer) ServerURL() string {
	return fmt.Sprintf("http://%s/metrics", m.listener.Addr().String())
}

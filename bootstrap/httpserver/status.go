// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package httpserver

import (
	"encoding/json"
	"github.com/orbs-network/orbs-counting-contract/config"
	"github.com/orbs-network/orbs-counting-contract/instrumentation/metric"
	"github.com/orbs-network/scribe/log"
	"net/http"
	"time"
)

type StatusResponse struct {
	Uptime int64

	BlockHeight struct {
		StateStorage int64
		Timestamp    int64
	}

	Calls struct {
		Committed int64
		Failed    int64
	}

	Version config.Version
}

func (s *HttpServer) getStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	metrics := s.metricRegistry

	status := StatusResponse{
		Uptime:  int64(time.Since(s.started).Seconds()),
		Version: config.GetVersion(),
	}
	status.BlockHeight.StateStorage = metricGetGaugeValue(s.logger, metrics, "StateStorage.BlockHeight")
	status.BlockHeight.Timestamp = metricGetGaugeValue(s.logger, metrics, "StateStorage.BlockTimeNano")
	status.Calls.Committed = metricGetGaugeValue(s.logger, metrics, "VirtualMachine.CommittedCalls.Count")
	status.Calls.Failed = metricGetGaugeValue(s.logger, metrics, "VirtualMachine.FailedCalls.Count")

	data, _ := json.MarshalIndent(status, "", "  ")

	_, err := w.Write(data)
	if err != nil {
		s.logger.Info("error writing status response", log.Error(err))
	}
}

func metricGetGaugeValue(logger log.Logger, metrics metric.Registry, name string) int64 {
	value, found := metric.GaugeValue(metrics, name)
	if !found {
		logger.Error("could not retrieve metric", log.String("metric", name))
	}
	return value
}

func (s *HttpServer) dumpMetricsAsJson(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	bytes, _ := json.Marshal(s.metricRegistry.ExportAll())
	_, err := w.Write(bytes)
	if err != nil {
		s.logger.Info("error writing metrics response", log.Error(err))
	}
}

func (s *HttpServer) dumpMetricsAsPrometheus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	_, err := w.Write([]byte(s.metricRegistry.ExportPrometheus()))
	if err != nil {
		s.logger.Info("error writing metrics response", log.Error(err))
	}
}

func (s *HttpServer) robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, err := w.Write([]byte("User-agent: *\nDisallow: /\n"))
	if err != nil {
		s.logger.Info("error writing robots.txt response", log.Error(err))
	}
}

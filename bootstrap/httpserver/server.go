// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package httpserver

import (
	"context"
	"encoding/json"
	"github.com/orbs-network/govnr"
	"github.com/orbs-network/orbs-counting-contract/instrumentation/logfields"
	"github.com/orbs-network/orbs-counting-contract/instrumentation/metric"
	"github.com/orbs-network/orbs-counting-contract/instrumentation/trace"
	"github.com/orbs-network/orbs-counting-contract/services/virtualmachine"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
	"io/ioutil"
	"net"
	"net/http"
	"net/http/pprof"
	"time"
)

var LogTag = log.String("adapter", "http-server")

const MAX_REQUEST_BODY_BYTES = 1 << 20

type httpErr struct {
	code     int
	errCode  string
	logField *log.Field
	message  string
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type metrics struct {
	requestTime    *metric.Histogram
	throttled      *metric.Gauge
	failedRequests *metric.Gauge
}

type HttpServer struct {
	govnr.TreeSupervisor
	httpServer     *http.Server
	logger         log.Logger
	vm             virtualmachine.VirtualMachine
	metricRegistry metric.Registry
	metrics        *metrics
	config         ServerConfig
	limiter        *rate.Limiter
	started        time.Time
	cancel         context.CancelFunc

	port int
}

type tcpKeepAliveListener struct {
	*net.TCPListener
}

func (ln tcpKeepAliveListener) Accept() (net.Conn, error) {
	tc, err := ln.AcceptTCP()
	if err != nil {
		return nil, err
	}
	err = tc.SetKeepAlive(true)
	if err != nil {
		return nil, err
	}
	err = tc.SetKeepAlivePeriod(35 * time.Second)
	if err != nil {
		return nil, err
	}
	return tc, nil
}

func newLimiter(cfg ServerConfig) *rate.Limiter {
	if cfg.HttpRequestsPerSecond() == 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Limit(cfg.HttpRequestsPerSecond()), int(cfg.HttpRequestsBurst()))
}

func NewHttpServer(cfg ServerConfig, logger log.Logger, vm virtualmachine.VirtualMachine, metricRegistry metric.Registry) (*HttpServer, error) {
	server := &HttpServer{
		logger:         logger.WithTags(LogTag),
		vm:             vm,
		metricRegistry: metricRegistry,
		metrics: &metrics{
			requestTime:    metricRegistry.NewLatency("HttpServer.RequestTime.Millis", 30*time.Second),
			throttled:      metricRegistry.NewGauge("HttpServer.ThrottledRequests.Count"),
			failedRequests: metricRegistry.NewGauge("HttpServer.FailedRequests.Count"),
		},
		config:  cfg,
		limiter: newLimiter(cfg),
		started: time.Now(),
	}

	listener, err := net.Listen("tcp", cfg.HttpAddress())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to start http server on %s", cfg.HttpAddress())
	}
	server.port = listener.Addr().(*net.TCPAddr).Port
	server.httpServer = &http.Server{
		Handler: server.createRouter(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	server.cancel = cancel

	// Serve is used instead of ListenAndServe so the socket is already listening when the constructor returns
	server.Supervise(govnr.Forever(ctx, "http server", logfields.GovnrErrorer(server.logger), func() {
		if err := server.httpServer.Serve(tcpKeepAliveListener{listener.(*net.TCPListener)}); err != nil && err != http.ErrServerClosed {
			server.logger.Error("http server stopped", log.Error(err))
		}
	}))

	server.logger.Info("started http server", log.String("address", cfg.HttpAddress()), log.Int("port", server.port))
	return server, nil
}

func (s *HttpServer) Port() int {
	return s.port
}

func (s *HttpServer) GracefulShutdown(shutdownContext context.Context) {
	s.cancel()
	if err := s.httpServer.Shutdown(shutdownContext); err != nil {
		s.logger.Error("failed to stop http server gracefully", log.Error(err))
	}
}

func (s *HttpServer) createRouter() http.Handler {
	router := http.NewServeMux()
	router.Handle("/api/v1/instantiate", s.wrapApiHandler(http.MethodPost, s.instantiateHandler))
	router.Handle("/api/v1/execute", s.wrapApiHandler(http.MethodPost, s.executeHandler))
	router.Handle("/api/v1/query", s.wrapApiHandler(http.MethodPost, s.queryHandler))
	router.Handle("/api/v1/balances", s.wrapApiHandler(http.MethodGet, s.balancesHandler))
	router.Handle("/metrics", http.HandlerFunc(wrapHandlerWithCORS(s.dumpMetricsAsPrometheus)))
	router.Handle("/metrics.json", http.HandlerFunc(wrapHandlerWithCORS(s.dumpMetricsAsJson)))
	router.Handle("/status", http.HandlerFunc(wrapHandlerWithCORS(s.getStatus)))
	router.Handle("/robots.txt", http.HandlerFunc(s.robots))

	if s.config.Profiling() {
		registerPprof(router)
	}

	return router
}

type apiHandler func(ctx context.Context, r *http.Request) (interface{}, *httpErr)

// wrapApiHandler throttles, traces and times the call and writes either the result or the error as json
func (s *HttpServer) wrapApiHandler(method string, handler apiHandler) http.Handler {
	return http.HandlerFunc(wrapHandlerWithCORS(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer s.metrics.requestTime.RecordSince(start)

		ctx := trace.NewFromRequest(r.Context(), "http-api", r)
		if tracingContext, ok := trace.FromContext(ctx); ok {
			tracingContext.WriteTraceToResponse(w)
		}

		if !s.limiter.Allow() {
			s.metrics.throttled.Inc()
			s.writeErrorResponseAndLog(ctx, w, &httpErr{http.StatusTooManyRequests, "throttled", nil, "too many requests"})
			return
		}
		if r.Method != method {
			s.writeErrorResponseAndLog(ctx, w, &httpErr{http.StatusMethodNotAllowed, "bad_request", log.String("method", r.Method), "method not allowed"})
			return
		}

		result, e := handler(ctx, r)
		if e != nil {
			s.metrics.failedRequests.Inc()
			s.writeErrorResponseAndLog(ctx, w, e)
			return
		}
		s.writeJsonResponse(ctx, w, http.StatusOK, result)
	}))
}

func readInput(r *http.Request) ([]byte, *httpErr) {
	if r.Body == nil {
		return nil, &httpErr{http.StatusBadRequest, "bad_request", nil, "http request body is empty"}
	}

	bytes, err := ioutil.ReadAll(http.MaxBytesReader(nil, r.Body, MAX_REQUEST_BODY_BYTES))
	if err != nil {
		return nil, &httpErr{http.StatusBadRequest, "bad_request", log.Error(err), "http request body could not be read"}
	}
	if len(bytes) == 0 {
		return nil, &httpErr{http.StatusBadRequest, "bad_request", nil, "http request body is empty"}
	}
	return bytes, nil
}

func (s *HttpServer) writeJsonResponse(ctx context.Context, w http.ResponseWriter, code int, body interface{}) {
	var data []byte
	if raw, ok := body.(json.RawMessage); ok {
		data = raw
	} else {
		var err error
		if data, err = json.Marshal(body); err != nil {
			s.logger.Error("failed to encode response", log.Error(err), trace.LogFieldFrom(ctx))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(data); err != nil {
		s.logger.Info("error writing response", log.Error(err), trace.LogFieldFrom(ctx))
	}
}

func (s *HttpServer) writeErrorResponseAndLog(ctx context.Context, w http.ResponseWriter, m *httpErr) {
	fields := []*log.Field{trace.LogFieldFrom(ctx), log.String("code", m.errCode)}
	if m.logField != nil {
		fields = append(fields, m.logField)
	}
	s.logger.Info(m.message, fields...)

	s.writeJsonResponse(ctx, w, m.code, &errorResponse{Error: m.message, Code: m.errCode})
}

func registerPprof(router *http.ServeMux) {
	router.HandleFunc("/debug/pprof/", pprof.Index)
	router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	router.HandleFunc("/debug/pprof/profile", pprof.Profile)
	router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	router.HandleFunc("/debug/pprof/trace", pprof.Trace)
}

// Allows handler to be called via XHR requests from any host
func wrapHandlerWithCORS(f func(w http.ResponseWriter, r *http.Request)) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Methods", "*")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
		} else {
			f(w, r)
		}
	}
}

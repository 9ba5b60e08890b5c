// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package metric

import (
	"fmt"
	"github.com/codahale/hdrhistogram"
	"github.com/orbs-network/scribe/log"
	"sync"
	"time"
)

const HISTOGRAM_WINDOWS = 5

// Histogram records latencies in nanoseconds and exports them in milliseconds
type Histogram struct {
	namedMetric
	mutex         sync.Mutex
	histo         *hdrhistogram.WindowedHistogram
	overflowCount int64
}

type histogramExport struct {
	Name    string
	Min     float64
	P50     float64
	P95     float64
	P99     float64
	Max     float64
	Avg     float64
	Samples int64
}

func newHistogram(name string, max int64) *Histogram {
	return &Histogram{
		namedMetric: namedMetric{name: name},
		histo:       hdrhistogram.NewWindowed(HISTOGRAM_WINDOWS, 1, max, 3),
	}
}

func (h *Histogram) RecordSince(t time.Time) {
	h.Record(time.Since(t))
}

func (h *Histogram) Record(d time.Duration) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if err := h.histo.Current.RecordValue(int64(d)); err != nil {
		h.overflowCount++
	}
}

func (h *Histogram) Rotate() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.histo.Rotate()
}

func (h *Histogram) OverflowCount() int64 {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	return h.overflowCount
}

func (h *Histogram) String() string {
	e := h.Export().(histogramExport)
	return fmt.Sprintf(
		"metric %s: [min=%f, p50=%f, p95=%f, p99=%f, max=%f, avg=%f, samples=%d, overflows=%d]\n",
		h.name, e.Min, e.P50, e.P95, e.P99, e.Max, e.Avg, e.Samples, h.OverflowCount())
}

func (h *Histogram) Export() exportedMetric {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	histo := h.histo.Merge()
	return histogramExport{
		Name:    h.name,
		Min:     toMillis(histo.Min()),
		P50:     toMillis(histo.ValueAtQuantile(50)),
		P95:     toMillis(histo.ValueAtQuantile(95)),
		P99:     toMillis(histo.ValueAtQuantile(99)),
		Max:     toMillis(histo.Max()),
		Avg:     floatToMillis(histo.Mean()),
		Samples: histo.TotalCount(),
	}
}

func (h histogramExport) LogRow() []*log.Field {
	if h.Samples == 0 {
		return nil
	}

	return []*log.Field{
		log.String("metric", h.Name),
		log.String("metric-type", "histogram"),
		log.Float64("min", h.Min),
		log.Float64("p50", h.P50),
		log.Float64("p95", h.P95),
		log.Float64("p99", h.P99),
		log.Float64("max", h.Max),
		log.Float64("avg", h.Avg),
		log.Int64("samples", h.Samples),
	}
}

func toMillis(nanoseconds int64) float64 {
	return floatToMillis(float64(nanoseconds))
}

func floatToMillis(nanoseconds float64) float64 {
	return nanoseconds / 1e+6
}

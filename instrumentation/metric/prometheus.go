// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package metric

import (
	"fmt"
	"strconv"
	"strings"
)

/**
Format reference: https://prometheus.io/docs/instrumenting/exposition_formats/
*/
func (r *inMemoryRegistry) ExportPrometheus() string {
	var rows strings.Builder
	for _, m := range r.sorted() {
		rows.WriteString(m.exportPrometheus())
	}
	return rows.String()
}

func (g *Gauge) exportPrometheus() string {
	name := prometheusName(g.name)
	return prometheusType(name, "gauge") + fmt.Sprintf("%s %s\n", name, strconv.FormatInt(g.Value(), 10))
}

// histograms are exported as a summary since quantiles are precomputed
func (h *Histogram) exportPrometheus() string {
	e := h.Export().(histogramExport)
	name := prometheusName(h.name)

	var rows strings.Builder
	rows.WriteString(prometheusType(name, "summary"))
	for _, q := range []struct {
		quantile string
		value    float64
	}{{"0.5", e.P50}, {"0.95", e.P95}, {"0.99", e.P99}} {
		rows.WriteString(fmt.Sprintf("%s{quantile=\"%s\"} %s\n", name, q.quantile, formatFloat(q.value)))
	}
	rows.WriteString(fmt.Sprintf("%s_sum %s\n", name, formatFloat(e.Avg*float64(e.Samples))))
	rows.WriteString(fmt.Sprintf("%s_count %d\n", name, e.Samples))
	return rows.String()
}

func (r *Rate) exportPrometheus() string {
	name := prometheusName(r.name)
	return prometheusType(name, "gauge") + fmt.Sprintf("%s %s\n", name, formatFloat(r.Value()))
}

// text is not exported
func (t *Text) exportPrometheus() string {
	return ""
}

func prometheusName(name string) string {
	return strings.Replace(name, ".", "_", -1)
}

func prometheusType(name string, typeString string) string {
	return fmt.Sprintf("# TYPE %s %s\n", name, typeString)
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

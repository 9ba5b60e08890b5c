// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package metric

import (
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestRegistry_ExportPrometheus(t *testing.T) {
	r := NewRegistry()
	r.NewGauge("VirtualMachine.Committed.Count").Update(3)
	r.NewText("Version.Semantic", "v1.0.0")
	h := r.NewLatency("VirtualMachine.CallTime.Millis", time.Second)
	h.Record(5 * time.Millisecond)

	out := r.ExportPrometheus()

	require.Contains(t, out, "# TYPE VirtualMachine_Committed_Count gauge\nVirtualMachine_Committed_Count 3\n")
	require.Contains(t, out, "# TYPE VirtualMachine_CallTime_Millis summary\n")
	require.Contains(t, out, "VirtualMachine_CallTime_Millis_count 1\n")
	require.NotContains(t, out, "Version", "text metrics are not exported")
}

func TestPrometheusName(t *testing.T) {
	require.Equal(t, "OS_Process_Memory_Bytes", prometheusName("OS.Process.Memory.Bytes"))
}

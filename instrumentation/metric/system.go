// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package metric

import (
	"context"
	"fmt"
	"github.com/c9s/goprocinfo/linux"
	"github.com/orbs-network/govnr"
	"github.com/orbs-network/orbs-counting-contract/synchronization"
	"github.com/orbs-network/scribe/log"
	"os"
	"runtime"
	"time"
)

const SYSTEM_METRICS_INTERVAL = 3 * time.Second

type systemMetrics struct {
	rssBytes       *Gauge
	cpuUtilization *Gauge
	heapAlloc      *Gauge
	goroutines     *Gauge
}

type systemReporter struct {
	metrics  systemMetrics
	lastCpu  uint64
	lastProc int64
}

func NewSystemReporter(ctx context.Context, metricFactory Factory, logger log.Logger) govnr.ShutdownWaiter {
	r := &systemReporter{
		metrics: systemMetrics{
			rssBytes:       metricFactory.NewGauge("OS.Process.Memory.Bytes"),
			cpuUtilization: metricFactory.NewGauge("OS.Process.CPU.PerCent"),
			heapAlloc:      metricFactory.NewGauge("Runtime.HeapAlloc.Bytes"),
			goroutines:     metricFactory.NewGauge("Runtime.Goroutines.Count"),
		},
	}

	return synchronization.NewPeriodicalTrigger(ctx, "system metric reporter", SYSTEM_METRICS_INTERVAL, logger, func() {
		r.reportSystemMetrics(logger)
	}, nil)
}

const PAGESIZE = 4096

func (r *systemReporter) reportSystemMetrics(logger log.Logger) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	r.metrics.heapAlloc.Update(int64(mem.HeapAlloc))
	r.metrics.goroutines.Update(int64(runtime.NumGoroutine()))

	if _, err := os.Stat("/proc"); os.IsNotExist(err) {
		return
	}

	if rss, err := getRssMemory(); err != nil {
		logger.Info("failed to retrieve memory stats", log.Error(err))
	} else {
		r.metrics.rssBytes.Update(rss)
	}

	if err := r.sampleCPUUtilization(); err != nil {
		logger.Info("failed to retrieve cpu stats", log.Error(err))
	}
}

func getRssMemory() (int64, error) {
	statm, err := linux.ReadProcessStatm(fmt.Sprintf("/proc/%d/statm", os.Getpid()))
	if err != nil {
		return 0, err
	}

	return int64(statm.Resident * PAGESIZE), nil
}

func getCPUStats() (uint64, error) {
	cpu, err := linux.ReadStat("/proc/stat")
	if err != nil {
		return 0, err
	}
	e := cpu.CPUStatAll
	return e.User + e.Nice + e.System + e.Idle, nil
}

// procfs counters are cumulative since startup, utilization is the delta between two consecutive samples
func (r *systemReporter) sampleCPUUtilization() error {
	process, err := linux.ReadProcess(uint64(os.Getpid()), "/proc")
	if err != nil {
		return err
	}
	cpu, err := getCPUStats()
	if err != nil {
		return err
	}

	proc := int64(process.Stat.Utime) + process.Stat.Cutime + int64(process.Stat.Stime) + process.Stat.Cstime
	if r.lastCpu != 0 && cpu > r.lastCpu {
		percent := float64(proc-r.lastProc) / float64(cpu-r.lastCpu) * 100
		r.metrics.cpuUtilization.Update(int64(percent))
	}
	r.lastCpu, r.lastProc = cpu, proc
	return nil
}

// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package metric

import (
	"context"
	"github.com/beevik/ntp"
	"github.com/orbs-network/govnr"
	"github.com/orbs-network/orbs-counting-contract/synchronization"
	"github.com/orbs-network/scribe/log"
	"time"
)

type ntpMetrics struct {
	drift *Gauge
}

type ntpReporter struct {
	metrics ntpMetrics
	address string
}

const NTP_QUERY_INTERVAL = 30 * time.Second

// block timestamps come from the local clock, the drift gauge shows how far it is from the ntp server
func NewNtpReporter(ctx context.Context, metricFactory Factory, logger log.Logger, ntpServerAddress string) govnr.ShutdownWaiter {
	r := &ntpReporter{
		metrics: ntpMetrics{
			drift: metricFactory.NewGauge("OS.Time.Drift.Millis"),
		},
		address: ntpServerAddress,
	}

	return synchronization.NewPeriodicalTrigger(ctx, "ntp metric reporter", NTP_QUERY_INTERVAL, logger, r.report(logger), nil)
}

func (r *ntpReporter) report(logger log.Logger) func() {
	return func() {
		response, err := ntp.Query(r.address)
		if err != nil {
			logger.Info("could not query ntp server", log.String("ntp-server", r.address), log.Error(err))
			return
		}
		r.metrics.drift.Update(response.ClockOffset.Nanoseconds() / int64(time.Millisecond))
	}
}

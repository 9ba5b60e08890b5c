// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package config

import (
	"github.com/pkg/errors"
	"net"
	"time"
)

func ValidateNodeConfig(cfg NodeConfig) error {
	if _, _, err := net.SplitHostPort(cfg.HttpAddress()); err != nil {
		return errors.Wrapf(err, "http address %q is invalid", cfg.HttpAddress())
	}

	if cfg.HttpRequestsPerSecond() > 0 && cfg.HttpRequestsBurst() == 0 {
		return errors.New("http requests burst must be positive when throttling is enabled")
	}

	if err := requirePositive(cfg.MetricsReportInterval(), "metrics report interval"); err != nil {
		return err
	}

	if err := requirePositive(cfg.GracefulShutdownTimeout(), "graceful shutdown timeout"); err != nil {
		return err
	}

	for address, coins := range cfg.GenesisBalances() {
		if address == "" {
			return errors.New("genesis balance with an empty address")
		}
		if coins.IsZero() {
			return errors.Errorf("genesis balance of %s is empty", address)
		}
	}

	return nil
}

func requirePositive(d time.Duration, name string) error {
	if d <= 0 {
		return errors.Errorf("%s must be positive, got %s", name, d)
	}
	return nil
}

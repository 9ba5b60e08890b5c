// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package config

import (
	"time"
)

func defaultProductionConfig() mutableNodeConfig {
	cfg := emptyConfig()

	cfg.SetString(HTTP_ADDRESS, ":8080")
	cfg.SetUint32(HTTP_REQUESTS_PER_SECOND, 100)
	cfg.SetUint32(HTTP_REQUESTS_BURST, 200)
	cfg.SetBool(PROFILING, false)

	cfg.SetString(STATE_STORAGE_DATA_DIR, "./_data")

	cfg.SetBool(LOGGER_FULL_LOG, false)
	cfg.SetDuration(LOGGER_FILE_TRUNCATION_INTERVAL, 24*time.Hour)

	cfg.SetDuration(METRICS_REPORT_INTERVAL, 30*time.Second)
	cfg.SetString(NTP_ENDPOINT, "")

	cfg.SetDuration(GRACEFUL_SHUTDOWN_TIMEOUT, 5*time.Second)

	return cfg
}

// ForProduction returns the defaults, overridden by the values in the given json config files
func ForProduction(configFiles []string, httpAddress string) (NodeConfig, error) {
	return GetNodeConfigFromFiles(configFiles, httpAddress)
}

// ForTests keeps state in memory and never throttles
func ForTests() NodeConfig {
	cfg := defaultProductionConfig()

	cfg.SetString(HTTP_ADDRESS, "127.0.0.1:0")
	cfg.SetUint32(HTTP_REQUESTS_PER_SECOND, 0)
	cfg.SetString(STATE_STORAGE_DATA_DIR, "")
	cfg.SetBool(LOGGER_FULL_LOG, true)
	cfg.SetDuration(METRICS_REPORT_INTERVAL, time.Hour)
	cfg.SetDuration(GRACEFUL_SHUTDOWN_TIMEOUT, time.Second)

	return cfg
}

// ForTestsWithGenesis is ForTests with funded accounts
func ForTestsWithGenesis(balances map[string]string) (NodeConfig, error) {
	cfg := ForTests().(mutableNodeConfig)
	for address, coins := range balances {
		parsed, err := parseCoins(coins)
		if err != nil {
			return nil, err
		}
		cfg.SetGenesisBalance(address, parsed)
	}
	return cfg, nil
}

// WithStateStorageDataDir returns a copy of a test config that keeps state in leveldb under dataDir
func WithStateStorageDataDir(cfg NodeConfig, dataDir string) NodeConfig {
	source := cfg.(*config)
	clone := &config{
		kv:              make(map[string]NodeConfigValue),
		genesisBalances: source.genesisBalances,
	}
	for key, value := range source.kv {
		clone.kv[key] = value
	}
	return clone.SetString(STATE_STORAGE_DATA_DIR, dataDir)
}

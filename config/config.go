// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package config

import (
	"github.com/orbs-network/orbs-counting-contract/services/processor/native/types"
	"time"
)

type NodeConfig interface {
	// http api
	HttpAddress() string
	HttpRequestsPerSecond() uint32
	HttpRequestsBurst() uint32
	Profiling() bool

	// state storage
	StateStorageDataDir() string

	// genesis
	GenesisBalances() map[string]types.Coins

	// logger
	LoggerFullLog() bool
	LoggerFileTruncationInterval() time.Duration

	// metrics
	MetricsReportInterval() time.Duration
	NtpEndpoint() string

	// shutdown
	GracefulShutdownTimeout() time.Duration
}

type mutableNodeConfig interface {
	NodeConfig
	Set(key string, value NodeConfigValue) mutableNodeConfig
	SetDuration(key string, value time.Duration) mutableNodeConfig
	SetUint32(key string, value uint32) mutableNodeConfig
	SetString(key string, value string) mutableNodeConfig
	SetBool(key string, value bool) mutableNodeConfig
	SetGenesisBalance(address string, coins types.Coins) mutableNodeConfig
	MergeWithFileConfig(source string) (mutableNodeConfig, error)
}

type NodeConfigValue struct {
	Uint32Value   uint32
	DurationValue time.Duration
	StringValue   string
	BoolValue     bool
}

const (
	HTTP_ADDRESS                    = "HTTP_ADDRESS"
	HTTP_REQUESTS_PER_SECOND        = "HTTP_REQUESTS_PER_SECOND"
	HTTP_REQUESTS_BURST             = "HTTP_REQUESTS_BURST"
	PROFILING                       = "PROFILING"
	STATE_STORAGE_DATA_DIR          = "STATE_STORAGE_DATA_DIR"
	LOGGER_FULL_LOG                 = "LOGGER_FULL_LOG"
	LOGGER_FILE_TRUNCATION_INTERVAL = "LOGGER_FILE_TRUNCATION_INTERVAL"
	METRICS_REPORT_INTERVAL         = "METRICS_REPORT_INTERVAL"
	NTP_ENDPOINT                    = "NTP_ENDPOINT"
	GRACEFUL_SHUTDOWN_TIMEOUT       = "GRACEFUL_SHUTDOWN_TIMEOUT"
)

type config struct {
	kv              map[string]NodeConfigValue
	genesisBalances map[string]types.Coins
}

func emptyConfig() mutableNodeConfig {
	return &config{
		kv:              make(map[string]NodeConfigValue),
		genesisBalances: make(map[string]types.Coins),
	}
}

func (c *config) HttpAddress() string {
	return c.kv[HTTP_ADDRESS].StringValue
}

func (c *config) HttpRequestsPerSecond() uint32 {
	return c.kv[HTTP_REQUESTS_PER_SECOND].Uint32Value
}

func (c *config) HttpRequestsBurst() uint32 {
	return c.kv[HTTP_REQUESTS_BURST].Uint32Value
}

func (c *config) Profiling() bool {
	return c.kv[PROFILING].BoolValue
}

func (c *config) StateStorageDataDir() string {
	return c.kv[STATE_STORAGE_DATA_DIR].StringValue
}

func (c *config) GenesisBalances() map[string]types.Coins {
	return c.genesisBalances
}

func (c *config) LoggerFullLog() bool {
	return c.kv[LOGGER_FULL_LOG].BoolValue
}

func (c *config) LoggerFileTruncationInterval() time.Duration {
	return c.kv[LOGGER_FILE_TRUNCATION_INTERVAL].DurationValue
}

func (c *config) MetricsReportInterval() time.Duration {
	return c.kv[METRICS_REPORT_INTERVAL].DurationValue
}

func (c *config) NtpEndpoint() string {
	return c.kv[NTP_ENDPOINT].StringValue
}

func (c *config) GracefulShutdownTimeout() time.Duration {
	return c.kv[GRACEFUL_SHUTDOWN_TIMEOUT].DurationValue
}

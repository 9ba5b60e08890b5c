// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package httpserver

type ServerConfig interface {
	HttpAddress() string
	HttpRequestsPerSecond() uint32
	HttpRequestsBurst() uint32
	Profiling() bool
}

type serverConfig struct {
	httpAddress       string
	requestsPerSecond uint32
	requestsBurst     uint32
	profiling         bool
}

// NewServerConfig builds a standalone config, zero requests per second disables throttling
func NewServerConfig(httpAddress string, requestsPerSecond uint32, requestsBurst uint32, profiling bool) ServerConfig {
	return &serverConfig{
		httpAddress:       httpAddress,
		requestsPerSecond: requestsPerSecond,
		requestsBurst:     requestsBurst,
		profiling:         profiling,
	}
}

func (c *serverConfig) HttpAddress() string {
	return c.httpAddress
}

func (c *serverConfig) HttpRequestsPerSecond() uint32 {
	return c.requestsPerSecond
}

func (c *serverConfig) HttpRequestsBurst() uint32 {
	return c.requestsBurst
}

func (c *serverConfig) Profiling() bool {
	return c.profiling
}

// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package bootstrap

import (
	"context"
	"github.com/orbs-network/govnr"
	"github.com/orbs-network/orbs-counting-contract/bootstrap/httpserver"
	"github.com/orbs-network/orbs-counting-contract/config"
	"github.com/orbs-network/orbs-counting-contract/instrumentation/metric"
	stateStorageAdapter "github.com/orbs-network/orbs-counting-contract/services/statestorage/adapter"
	"github.com/orbs-network/orbs-counting-contract/services/statestorage/adapter/leveldb"
	"github.com/orbs-network/orbs-counting-contract/services/statestorage/adapter/memory"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
)

type Node struct {
	govnr.TreeSupervisor
	logger           log.Logger
	logic            NodeLogic
	httpServer       *httpserver.HttpServer
	statePersistence stateStorageAdapter.StatePersistence
	metricRegistry   metric.Registry
	ctxCancel        context.CancelFunc
}

func newStatePersistence(nodeConfig config.NodeConfig, logger log.Logger, metricRegistry metric.Registry) (stateStorageAdapter.StatePersistence, error) {
	if dataDir := nodeConfig.StateStorageDataDir(); dataDir != "" {
		logger.Info("keeping state in leveldb", log.String("data-dir", dataDir))
		return leveldb.NewStatePersistence(dataDir, metricRegistry)
	}
	logger.Info("keeping state in memory, it will be lost on shutdown")
	return memory.NewStatePersistence(metricRegistry), nil
}

func NewNode(nodeConfig config.NodeConfig, logger log.Logger) (*Node, error) {
	ctx, ctxCancel := context.WithCancel(context.Background())
	metricRegistry := metric.NewRegistry()

	statePersistence, err := newStatePersistence(nodeConfig, logger, metricRegistry)
	if err != nil {
		ctxCancel()
		return nil, errors.Wrap(err, "failed to open state persistence")
	}

	nodeLogic, err := NewNodeLogic(ctx, statePersistence, logger, metricRegistry, nodeConfig)
	if err != nil {
		ctxCancel()
		_ = statePersistence.Close()
		return nil, err
	}

	httpServer, err := httpserver.NewHttpServer(nodeConfig, logger, nodeLogic.VirtualMachine(), metricRegistry)
	if err != nil {
		ctxCancel()
		_ = statePersistence.Close()
		return nil, err
	}

	n := &Node{
		logger:           logger,
		logic:            nodeLogic,
		httpServer:       httpServer,
		statePersistence: statePersistence,
		metricRegistry:   metricRegistry,
		ctxCancel:        ctxCancel,
	}

	metricRegistry.NewText("Version.Semantic", config.GetVersion().Semantic)
	metricRegistry.NewText("Version.Commit", config.GetVersion().Commit)

	n.Supervise(httpServer)
	n.Supervise(metricRegistry.ReportEvery(ctx, nodeConfig.MetricsReportInterval(), logger))
	n.Supervise(metric.NewSystemReporter(ctx, metricRegistry, logger))
	if endpoint := nodeConfig.NtpEndpoint(); endpoint != "" {
		n.Supervise(metric.NewNtpReporter(ctx, metricRegistry, logger, endpoint))
	}

	logger.Info("node started", log.Stringable("version", config.GetVersion()), log.Int("http-port", httpServer.Port()))
	return n, nil
}

func (n *Node) GracefulShutdown(shutdownContext context.Context) {
	n.logger.Info("shutting down node")
	n.ctxCancel()
	n.httpServer.GracefulShutdown(shutdownContext)
	if err := n.statePersistence.Close(); err != nil {
		n.logger.Error("failed to close state persistence", log.Error(err))
	}
}

func (n *Node) HttpPort() int {
	return n.httpServer.Port()
}

func (n *Node) Logic() NodeLogic {
	return n.logic
}

func (n *Node) MetricRegistry() metric.Registry {
	return n.metricRegistry
}

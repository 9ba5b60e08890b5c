// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package bootstrap

import (
	"context"
	"github.com/orbs-network/orbs-counting-contract/config"
	"github.com/orbs-network/orbs-counting-contract/instrumentation/metric"
	"github.com/orbs-network/orbs-counting-contract/services/processor/native"
	"github.com/orbs-network/orbs-counting-contract/services/processor/native/repository"
	"github.com/orbs-network/orbs-counting-contract/services/statestorage"
	stateStorageAdapter "github.com/orbs-network/orbs-counting-contract/services/statestorage/adapter"
	"github.com/orbs-network/orbs-counting-contract/services/virtualmachine"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
)

type NodeLogic interface {
	VirtualMachine() virtualmachine.VirtualMachine
	StateStorage() *statestorage.Service
}

type nodeLogic struct {
	virtualMachine virtualmachine.VirtualMachine
	stateStorage   *statestorage.Service
}

func NewNodeLogic(
	ctx context.Context,
	statePersistence stateStorageAdapter.StatePersistence,
	logger log.Logger,
	metricRegistry metric.Registry,
	nodeConfig config.NodeConfig,
) (NodeLogic, error) {

	stateStorageService, err := statestorage.NewStateStorage(statePersistence, logger, metricRegistry)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load state storage")
	}

	processor := native.NewNativeProcessor(repository.Contracts, logger, metricRegistry)
	virtualMachineService := virtualmachine.NewVirtualMachine(stateStorageService, processor, logger, metricRegistry)

	if err := virtualMachineService.InitGenesis(ctx, nodeConfig.GenesisBalances()); err != nil {
		return nil, errors.Wrap(err, "failed to apply genesis balances")
	}

	return &nodeLogic{
		virtualMachine: virtualMachineService,
		stateStorage:   stateStorageService,
	}, nil
}

func (n *nodeLogic) VirtualMachine() virtualmachine.VirtualMachine {
	return n.virtualMachine
}

func (n *nodeLogic) StateStorage() *statestorage.Service {
	return n.stateStorage
}

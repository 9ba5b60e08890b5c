// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package native

import (
	"context"
	"github.com/orbs-network/orbs-counting-contract/instrumentation/logfields"
	"github.com/orbs-network/orbs-counting-contract/instrumentation/metric"
	"github.com/orbs-network/orbs-counting-contract/instrumentation/trace"
	"github.com/orbs-network/orbs-counting-contract/services/processor/native/types"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"time"
)

var LogTag = log.Service("processor-native")

var ErrContractNotDeployed = errors.New("contract code not found in repository")
var ErrContractPanicked = errors.New("contract panicked")

type Entry int

const (
	ENTRY_INSTANTIATE Entry = iota
	ENTRY_EXECUTE
	ENTRY_QUERY
)

func (e Entry) String() string {
	switch e {
	case ENTRY_INSTANTIATE:
		return "instantiate"
	case ENTRY_EXECUTE:
		return "execute"
	case ENTRY_QUERY:
		return "query"
	}
	return "unknown"
}

type ProcessCallInput struct {
	ContextId    types.Context
	ContractName primitives.ContractName
	Entry        Entry
	Env          types.Env
	Info         types.MessageInfo
	Message      []byte
}

// ProcessCallOutput holds Response for instantiate and execute, Data for query
type ProcessCallOutput struct {
	Response *types.Response
	Data     []byte
}

type Processor interface {
	RegisterContractSdkCallHandler(handler SdkCallHandler)
	HasContract(name primitives.ContractName) bool
	ProcessCall(ctx context.Context, input *ProcessCallInput) (*ProcessCallOutput, error)
}

type service struct {
	logger     log.Logger
	sdkHandler SdkCallHandler
	contracts  map[primitives.ContractName]types.Contract

	metrics *metrics
}

type metrics struct {
	processCallTime   *metric.Histogram
	deployedContracts *metric.Gauge
}

func getMetrics(m metric.Factory) *metrics {
	return &metrics{
		processCallTime:   m.NewLatency("Processor.Native.ProcessCallTime.Millis", 10*time.Second),
		deployedContracts: m.NewGauge("Processor.Native.DeployedContracts.Count"),
	}
}

func NewNativeProcessor(repository map[primitives.ContractName]types.ContractInfo, parentLogger log.Logger, metricFactory metric.Factory) Processor {
	s := &service{
		logger:    parentLogger.WithTags(LogTag),
		contracts: make(map[primitives.ContractName]types.Contract),
		metrics:   getMetrics(metricFactory),
	}

	base := types.NewBaseContract(&stateSdk{s}, &bankSdk{s}, &addressSdk{s})
	for name, info := range repository {
		s.contracts[name] = info.InitSingleton(base)
	}
	s.metrics.deployedContracts.Update(int64(len(s.contracts)))

	return s
}

// runs once on system initialization (called by the virtual machine constructor)
func (s *service) RegisterContractSdkCallHandler(handler SdkCallHandler) {
	s.sdkHandler = handler
}

func (s *service) HasContract(name primitives.ContractName) bool {
	_, found := s.contracts[name]
	return found
}

func (s *service) ProcessCall(ctx context.Context, input *ProcessCallInput) (*ProcessCallOutput, error) {
	logger := s.logger.WithTags(trace.LogFieldFrom(ctx), logfields.ContractCode(input.ContractName), log.Stringable("entry", input.Entry))

	contract, found := s.contracts[input.ContractName]
	if !found {
		return nil, errors.Wrapf(ErrContractNotDeployed, "contract %s", input.ContractName)
	}

	start := time.Now()
	defer s.metrics.processCallTime.RecordSince(start)

	output, err := s.processEntryCall(contract, input)
	if err != nil {
		logger.Info("contract returned error", log.Error(err))
		return nil, err
	}
	return output, nil
}

// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package virtualmachine

import (
	"context"
	"github.com/orbs-network/orbs-counting-contract/instrumentation/logfields"
	"github.com/orbs-network/orbs-counting-contract/instrumentation/metric"
	"github.com/orbs-network/orbs-counting-contract/instrumentation/trace"
	"github.com/orbs-network/orbs-counting-contract/services/bank"
	"github.com/orbs-network/orbs-counting-contract/services/processor/native"
	"github.com/orbs-network/orbs-counting-contract/services/processor/native/types"
	"github.com/orbs-network/orbs-counting-contract/services/statestorage/adapter"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"sort"
	"sync"
	"time"
)

var LogTag = log.Service("virtual-machine")

var (
	ErrContractNotFound    = errors.New("contract not found")
	ErrUnknownContractCode = errors.New("unknown contract code")
	ErrReadOnlyAccess      = errors.New("state is read only")
)

type StateStorage interface {
	ReadKey(ctx context.Context, contract primitives.ContractName, key string) ([]byte, bool, error)
	CommitStateDiff(ctx context.Context, height primitives.BlockHeight, ts primitives.TimestampNano, diff adapter.ChainState) error
	GetLastCommittedBlockInfo(ctx context.Context) (primitives.BlockHeight, primitives.TimestampNano)
}

type VirtualMachine interface {
	Instantiate(ctx context.Context, input *InstantiateInput) (*InstantiateOutput, error)
	Execute(ctx context.Context, input *ExecuteInput) (*ExecuteOutput, error)
	Query(ctx context.Context, input *QueryInput) (*QueryOutput, error)
	QueryAllBalances(ctx context.Context, address string) (types.Coins, error)
	InitGenesis(ctx context.Context, balances map[string]types.Coins) error
}

type InstantiateInput struct {
	CodeName primitives.ContractName
	Sender   string
	Funds    types.Coins
	Label    string
	Message  []byte
}

type InstantiateOutput struct {
	ContractAddress string
	BlockHeight     primitives.BlockHeight
	Response        *types.Response
}

type ExecuteInput struct {
	ContractAddress string
	Sender          string
	Funds           types.Coins
	Message         []byte
}

type ExecuteOutput struct {
	BlockHeight primitives.BlockHeight
	Response    *types.Response
}

type QueryInput struct {
	ContractAddress string
	Message         []byte
}

type QueryOutput struct {
	BlockHeight primitives.BlockHeight
	Data        []byte
}

type metrics struct {
	callTime       *metric.Histogram
	queryTime      *metric.Histogram
	committedCalls *metric.Gauge
	failedCalls    *metric.Gauge
	callRate       *metric.Rate
}

func newMetrics(m metric.Factory) *metrics {
	return &metrics{
		callTime:       m.NewLatency("VirtualMachine.CallTime.Millis", 10*time.Second),
		queryTime:      m.NewLatency("VirtualMachine.QueryTime.Millis", 10*time.Second),
		committedCalls: m.NewGauge("VirtualMachine.CommittedCalls.Count"),
		failedCalls:    m.NewGauge("VirtualMachine.FailedCalls.Count"),
		callRate:       m.NewRate("VirtualMachine.Calls.PerSecond"),
	}
}

type service struct {
	stateStorage StateStorage
	processor    native.Processor
	logger       log.Logger
	metrics      *metrics

	// calls that write run one at a time, queries may run together
	mutex    sync.RWMutex
	contexts *executionContextProvider
}

func NewVirtualMachine(stateStorage StateStorage, processor native.Processor, parentLogger log.Logger, metricFactory metric.Factory) VirtualMachine {
	s := &service{
		stateStorage: stateStorage,
		processor:    processor,
		logger:       parentLogger.WithTags(LogTag),
		metrics:      newMetrics(metricFactory),
		contexts:     newExecutionContextProvider(),
	}

	processor.RegisterContractSdkCallHandler(s)
	return s
}

func (s *service) Instantiate(ctx context.Context, input *InstantiateInput) (*InstantiateOutput, error) {
	if !s.processor.HasContract(input.CodeName) {
		return nil, errors.Wrapf(ErrUnknownContractCode, "%s", input.CodeName)
	}

	var address string
	height, response, err := s.runCall(ctx, input.Sender, input.Funds, func(executionContext *executionContext) (err error) {
		if address, err = executionContext.nextContractAddress(); err != nil {
			return err
		}
		executionContext.contractAddress = address
		return executionContext.registerContract(address, input.CodeName, input.Label, input.Sender)
	}, func(executionContext *executionContext) (primitives.ContractName, native.Entry, []byte) {
		return input.CodeName, native.ENTRY_INSTANTIATE, input.Message
	})
	if err != nil {
		return nil, err
	}

	return &InstantiateOutput{ContractAddress: address, BlockHeight: height, Response: response}, nil
}

func (s *service) Execute(ctx context.Context, input *ExecuteInput) (*ExecuteOutput, error) {
	var codeName primitives.ContractName
	height, response, err := s.runCall(ctx, input.Sender, input.Funds, func(executionContext *executionContext) (err error) {
		executionContext.contractAddress = input.ContractAddress
		codeName, err = executionContext.contractCode(input.ContractAddress)
		return err
	}, func(executionContext *executionContext) (primitives.ContractName, native.Entry, []byte) {
		return codeName, native.ENTRY_EXECUTE, input.Message
	})
	if err != nil {
		return nil, err
	}

	return &ExecuteOutput{BlockHeight: height, Response: response}, nil
}

func (s *service) Query(ctx context.Context, input *QueryInput) (*QueryOutput, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	start := time.Now()
	defer s.metrics.queryTime.RecordSince(start)

	height, ts := s.stateStorage.GetLastCommittedBlockInfo(ctx)
	contextId, executionContext := s.contexts.allocateExecutionContext(ctx, s.stateStorage, height, ts, ACCESS_SCOPE_READ_ONLY)
	defer s.contexts.destroyExecutionContext(contextId)

	executionContext.contractAddress = input.ContractAddress
	codeName, err := executionContext.contractCode(input.ContractAddress)
	if err != nil {
		return nil, err
	}

	output, err := s.processor.ProcessCall(ctx, &native.ProcessCallInput{
		ContextId:    contextId,
		ContractName: codeName,
		Entry:        native.ENTRY_QUERY,
		Env:          executionContext.env(),
		Message:      input.Message,
	})
	if err != nil {
		return nil, err
	}

	return &QueryOutput{BlockHeight: height, Data: output.Data}, nil
}

func (s *service) QueryAllBalances(ctx context.Context, address string) (types.Coins, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	height, ts := s.stateStorage.GetLastCommittedBlockInfo(ctx)
	contextId, executionContext := s.contexts.allocateExecutionContext(ctx, s.stateStorage, height, ts, ACCESS_SCOPE_READ_ONLY)
	defer s.contexts.destroyExecutionContext(contextId)

	return bank.NewLedger(executionContext).AllBalances(address)
}

// InitGenesis mints the initial balances as the first block, it does nothing on a chain that already has blocks
func (s *service) InitGenesis(ctx context.Context, balances map[string]types.Coins) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	lastHeight, _ := s.stateStorage.GetLastCommittedBlockInfo(ctx)
	if lastHeight > 0 || len(balances) == 0 {
		return nil
	}

	height, ts := s.nextBlock(ctx)
	contextId, executionContext := s.contexts.allocateExecutionContext(ctx, s.stateStorage, height, ts, ACCESS_SCOPE_READ_WRITE)
	defer s.contexts.destroyExecutionContext(contextId)

	addresses := make([]string, 0, len(balances))
	for address := range balances {
		addresses = append(addresses, address)
	}
	sort.Strings(addresses)

	ledger := bank.NewLedger(executionContext)
	for _, address := range addresses {
		if _, err := ValidateAddress(address); err != nil {
			return errors.Wrap(err, "genesis balance")
		}
		if err := ledger.Mint(address, balances[address]); err != nil {
			return errors.Wrapf(err, "genesis balance of %s", address)
		}
	}

	if err := s.stateStorage.CommitStateDiff(ctx, height, ts, executionContext.transientState.chainStateDiff()); err != nil {
		return err
	}
	s.logger.Info("genesis balances minted", logfields.BlockHeight(height), log.Int("accounts", len(addresses)), trace.LogFieldFrom(ctx))
	return nil
}

// every committed call is a block of its own
func (s *service) nextBlock(ctx context.Context) (primitives.BlockHeight, primitives.TimestampNano) {
	lastHeight, lastTs := s.stateStorage.GetLastCommittedBlockInfo(ctx)
	ts := primitives.TimestampNano(time.Now().UnixNano())
	if ts <= lastTs {
		ts = lastTs + 1
	}
	return lastHeight + 1, ts
}

// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package virtualmachine

import (
	"context"
	"github.com/orbs-network/orbs-counting-contract/instrumentation/logfields"
	"github.com/orbs-network/orbs-counting-contract/instrumentation/trace"
	"github.com/orbs-network/orbs-counting-contract/services/bank"
	"github.com/orbs-network/orbs-counting-contract/services/processor/native"
	"github.com/orbs-network/orbs-counting-contract/services/processor/native/types"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"time"
)

// callSetup prepares the execution context and sets the contract address the call runs on
type callSetup func(executionContext *executionContext) error

type callTarget func(executionContext *executionContext) (primitives.ContractName, native.Entry, []byte)

func (s *service) runCall(ctx context.Context, sender string, funds types.Coins, setup callSetup, target callTarget) (primitives.BlockHeight, *types.Response, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	start := time.Now()
	defer s.metrics.callTime.RecordSince(start)
	s.metrics.callRate.Measure(1)

	logger := s.logger.WithTags(trace.LogFieldFrom(ctx), logfields.Sender(sender), logfields.Funds(funds))

	height, response, err := s.runAndCommit(ctx, sender, funds, setup, target)
	if err != nil {
		s.metrics.failedCalls.Inc()
		logger.Info("call failed, state changes discarded", log.Error(err))
		return 0, nil, err
	}

	s.metrics.committedCalls.Inc()
	logger.Info("call committed", logfields.BlockHeight(height))
	return height, response, nil
}

func (s *service) runAndCommit(ctx context.Context, sender string, funds types.Coins, setup callSetup, target callTarget) (primitives.BlockHeight, *types.Response, error) {
	if _, err := ValidateAddress(sender); err != nil {
		return 0, nil, errors.Wrap(err, "sender")
	}
	funds, err := types.NewCoins(funds...)
	if err != nil {
		return 0, nil, errors.Wrap(err, "funds")
	}

	height, ts := s.nextBlock(ctx)
	contextId, executionContext := s.contexts.allocateExecutionContext(ctx, s.stateStorage, height, ts, ACCESS_SCOPE_READ_WRITE)
	defer s.contexts.destroyExecutionContext(contextId)

	if err := setup(executionContext); err != nil {
		return 0, nil, err
	}
	codeName, entry, message := target(executionContext)

	ledger := bank.NewLedger(executionContext)
	if err := ledger.Send(sender, executionContext.contractAddress, funds); err != nil {
		return 0, nil, err
	}

	output, err := s.processor.ProcessCall(ctx, &native.ProcessCallInput{
		ContextId:    contextId,
		ContractName: codeName,
		Entry:        entry,
		Env:          executionContext.env(),
		Info:         types.MessageInfo{Sender: sender, Funds: funds},
		Message:      message,
	})
	if err != nil {
		return 0, nil, err
	}

	if err := s.applyBankMessages(ledger, executionContext.contractAddress, output.Response.Messages); err != nil {
		return 0, nil, err
	}

	if err := s.stateStorage.CommitStateDiff(ctx, height, ts, executionContext.transientState.chainStateDiff()); err != nil {
		return 0, nil, err
	}
	return height, output.Response, nil
}

func (s *service) applyBankMessages(ledger *bank.Ledger, contractAddress string, messages []types.BankSend) error {
	for i, msg := range messages {
		if _, err := ValidateAddress(msg.ToAddress); err != nil {
			return errors.Wrapf(err, "bank message %d", i)
		}
		if err := ledger.Send(contractAddress, msg.ToAddress, msg.Amount); err != nil {
			return errors.Wrapf(err, "bank message %d", i)
		}
	}
	return nil
}

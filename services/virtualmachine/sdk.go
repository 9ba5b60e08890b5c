// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package virtualmachine

import (
	"encoding/json"
	"github.com/orbs-network/orbs-counting-contract/services/bank"
	"github.com/orbs-network/orbs-counting-contract/services/processor/native"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
)

func (s *service) HandleSdkCall(input *native.SdkCallInput) (*native.SdkCallOutput, error) {
	executionContext := s.contexts.loadExecutionContext(input.ContextId)
	if executionContext == nil {
		return nil, errors.Errorf("invalid execution context %d", input.ContextId)
	}

	var output []*protocol.Argument
	var err error
	switch input.OperationName {
	case native.SDK_OPERATION_NAME_STATE:
		output, err = s.handleSdkStateCall(executionContext, input.MethodName, input.InputArguments)
	case native.SDK_OPERATION_NAME_BANK:
		output, err = s.handleSdkBankCall(executionContext, input.MethodName, input.InputArguments)
	case native.SDK_OPERATION_NAME_ADDRESS:
		output, err = s.handleSdkAddressCall(executionContext, input.MethodName, input.InputArguments)
	default:
		return nil, errors.Errorf("unknown SDK call operation: %s", input.OperationName)
	}

	if err != nil {
		return nil, err
	}
	return &native.SdkCallOutput{OutputArguments: output}, nil
}

func (s *service) handleSdkStateCall(executionContext *executionContext, methodName string, args []*protocol.Argument) ([]*protocol.Argument, error) {
	contract := primitives.ContractName(executionContext.contractAddress)
	switch methodName {
	case "read":
		if len(args) != 1 || !args[0].IsTypeBytesValue() {
			return nil, errors.Errorf("invalid SDK state read args: %v", args)
		}
		value, err := executionContext.ReadKey(contract, string(args[0].BytesValue()))
		if err != nil {
			return nil, err
		}
		return []*protocol.Argument{native.BytesArgument(value)}, nil
	case "write":
		if len(args) != 2 || !args[0].IsTypeBytesValue() || !args[1].IsTypeBytesValue() {
			return nil, errors.Errorf("invalid SDK state write args: %v", args)
		}
		return nil, executionContext.WriteKey(contract, string(args[0].BytesValue()), args[1].BytesValue())
	}
	return nil, errors.Errorf("unknown SDK state call method: %s", methodName)
}

func (s *service) handleSdkBankCall(executionContext *executionContext, methodName string, args []*protocol.Argument) ([]*protocol.Argument, error) {
	switch methodName {
	case "queryAllBalances":
		if len(args) != 1 || !args[0].IsTypeStringValue() {
			return nil, errors.Errorf("invalid SDK bank queryAllBalances args: %v", args)
		}
		balances, err := bank.NewLedger(executionContext).AllBalances(args[0].StringValue())
		if err != nil {
			return nil, err
		}
		bytes, err := json.Marshal(balances)
		if err != nil {
			return nil, err
		}
		return []*protocol.Argument{native.BytesArgument(bytes)}, nil
	}
	return nil, errors.Errorf("unknown SDK bank call method: %s", methodName)
}

func (s *service) handleSdkAddressCall(executionContext *executionContext, methodName string, args []*protocol.Argument) ([]*protocol.Argument, error) {
	switch methodName {
	case "validate":
		if len(args) != 1 || !args[0].IsTypeStringValue() {
			return nil, errors.Errorf("invalid SDK address validate args: %v", args)
		}
		address, err := ValidateAddress(args[0].StringValue())
		if err != nil {
			return nil, err
		}
		return []*protocol.Argument{native.StringArgument(address)}, nil
	}
	return nil, errors.Errorf("unknown SDK address call method: %s", methodName)
}

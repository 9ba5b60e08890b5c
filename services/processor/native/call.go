// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package native

import (
	"github.com/orbs-network/orbs-counting-contract/services/processor/native/types"
	"github.com/pkg/errors"
)

func (s *service) processEntryCall(contract types.Contract, input *ProcessCallInput) (output *ProcessCallOutput, err error) {
	defer func() {
		if r := recover(); r != nil {
			output = nil
			err = errors.Wrapf(ErrContractPanicked, "%s %s: %v", input.ContractName, input.Entry, r)
		}
	}()

	switch input.Entry {
	case ENTRY_INSTANTIATE:
		response, err := contract.Instantiate(input.ContextId, input.Env, input.Info, input.Message)
		return responseOutput(response, err)
	case ENTRY_EXECUTE:
		response, err := contract.Execute(input.ContextId, input.Env, input.Info, input.Message)
		return responseOutput(response, err)
	case ENTRY_QUERY:
		data, err := contract.Query(input.ContextId, input.Env, input.Message)
		if err != nil {
			return nil, err
		}
		return &ProcessCallOutput{Data: data}, nil
	}

	return nil, errors.Errorf("unknown entry %d", input.Entry)
}

func responseOutput(response *types.Response, err error) (*ProcessCallOutput, error) {
	if err != nil {
		return nil, err
	}
	if response == nil {
		response = types.NewResponse()
	}
	return &ProcessCallOutput{Response: response}, nil
}

// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package virtualmachine

import (
	"context"
	"github.com/orbs-network/go-mock"
	"github.com/orbs-network/orbs-counting-contract/services/processor/native/types"
)

type MockVirtualMachine struct {
	mock.Mock
}

func (m *MockVirtualMachine) Instantiate(ctx context.Context, input *InstantiateInput) (*InstantiateOutput, error) {
	ret := m.Called(ctx, input)
	if out := ret.Get(0); out != nil {
		return out.(*InstantiateOutput), ret.Error(1)
	} else {
		return nil, ret.Error(1)
	}
}

func (m *MockVirtualMachine) Execute(ctx context.Context, input *ExecuteInput) (*ExecuteOutput, error) {
	ret := m.Called(ctx, input)
	if out := ret.Get(0); out != nil {
		return out.(*ExecuteOutput), ret.Error(1)
	} else {
		return nil, ret.Error(1)
	}
}

func (m *MockVirtualMachine) Query(ctx context.Context, input *QueryInput) (*QueryOutput, error) {
	ret := m.Called(ctx, input)
	if out := ret.Get(0); out != nil {
		return out.(*QueryOutput), ret.Error(1)
	} else {
		return nil, ret.Error(1)
	}
}

func (m *MockVirtualMachine) QueryAllBalances(ctx context.Context, address string) (types.Coins, error) {
	ret := m.Called(ctx, address)
	if out := ret.Get(0); out != nil {
		return out.(types.Coins), ret.Error(1)
	} else {
		return nil, ret.Error(1)
	}
}

func (m *MockVirtualMachine) InitGenesis(ctx context.Context, balances map[string]types.Coins) error {
	ret := m.Called(ctx, balances)
	return ret.Error(0)
}

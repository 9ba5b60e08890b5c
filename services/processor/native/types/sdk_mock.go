// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package types

import (
	"github.com/orbs-network/go-mock"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
)

type MockStateSdk struct {
	mock.Mock
}

func (m *MockStateSdk) ReadBytesByAddress(ctx Context, address primitives.Ripmd160Sha256) ([]byte, error) {
	ret := m.Called(ctx, address)
	if out := ret.Get(0); out != nil {
		return out.([]byte), ret.Error(1)
	} else {
		return nil, ret.Error(1)
	}
}

func (m *MockStateSdk) ReadBytesByKey(ctx Context, key string) ([]byte, error) {
	ret := m.Called(ctx, key)
	if out := ret.Get(0); out != nil {
		return out.([]byte), ret.Error(1)
	} else {
		return nil, ret.Error(1)
	}
}

func (m *MockStateSdk) WriteBytesByAddress(ctx Context, address primitives.Ripmd160Sha256, value []byte) error {
	ret := m.Called(ctx, address, value)
	return ret.Error(0)
}

func (m *MockStateSdk) WriteBytesByKey(ctx Context, key string, value []byte) error {
	ret := m.Called(ctx, key, value)
	return ret.Error(0)
}

type MockBankSdk struct {
	mock.Mock
}

func (m *MockBankSdk) QueryAllBalances(ctx Context, address string) (Coins, error) {
	ret := m.Called(ctx, address)
	if out := ret.Get(0); out != nil {
		return out.(Coins), ret.Error(1)
	} else {
		return nil, ret.Error(1)
	}
}

type MockAddressSdk struct {
	mock.Mock
}

func (m *MockAddressSdk) Validate(ctx Context, address string) (string, error) {
	ret := m.Called(ctx, address)
	return ret.Get(0).(string), ret.Error(1)
}

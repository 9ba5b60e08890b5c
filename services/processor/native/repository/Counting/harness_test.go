// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package counting

import (
	"encoding/json"
	"fmt"
	"github.com/orbs-network/go-mock"
	"github.com/orbs-network/orbs-counting-contract/services/processor/native/types"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/stretchr/testify/require"
	"testing"
)

const (
	OWNER            = "owner"
	CONTRACT_ADDRESS = "contract0"
	CTX              = types.Context(17)
)

type fakeState struct {
	values map[string][]byte
}

func (s *fakeState) ReadBytesByAddress(ctx types.Context, address primitives.Ripmd160Sha256) ([]byte, error) {
	return s.ReadBytesByKey(ctx, string(address))
}

func (s *fakeState) ReadBytesByKey(ctx types.Context, key string) ([]byte, error) {
	return append([]byte{}, s.values[key]...), nil
}

func (s *fakeState) WriteBytesByAddress(ctx types.Context, address primitives.Ripmd160Sha256, value []byte) error {
	return s.WriteBytesByKey(ctx, string(address), value)
}

func (s *fakeState) WriteBytesByKey(ctx types.Context, key string, value []byte) error {
	if len(value) == 0 {
		delete(s.values, key)
		return nil
	}
	s.values[key] = append([]byte{}, value...)
	return nil
}

type harness struct {
	state    *fakeState
	bank     *types.MockBankSdk
	address  *types.MockAddressSdk
	contract *contract
	env      types.Env
}

func newHarness() *harness {
	h := &harness{
		state:   &fakeState{values: make(map[string][]byte)},
		bank:    &types.MockBankSdk{},
		address: &types.MockAddressSdk{},
		env:     types.Env{BlockHeight: 1, ContractAddress: CONTRACT_ADDRESS},
	}
	h.contract = newContract(types.NewBaseContract(h.state, h.bank, h.address)).(*contract)
	return h
}

func (h *harness) instantiate(t testing.TB, counter uint64, minimalDonation types.Coin, resetRequiresOwner bool) {
	msg, err := json.Marshal(&InitMsg{Counter: counter, MinimalDonation: &minimalDonation, ResetRequiresOwner: &resetRequiresOwner})
	require.NoError(t, err)
	_, err = h.contract.Instantiate(CTX, h.env, types.MessageInfo{Sender: OWNER}, msg)
	require.NoError(t, err, "instantiate should succeed")
}

func (h *harness) execute(sender string, funds types.Coins, msg string) (*types.Response, error) {
	return h.contract.Execute(CTX, h.env, types.MessageInfo{Sender: sender, Funds: funds}, []byte(msg))
}

func (h *harness) requireValue(t testing.TB, expected uint64) {
	out, err := h.contract.Query(CTX, h.env, []byte(`{"value":{}}`))
	require.NoError(t, err)
	require.JSONEq(t, fmt.Sprintf(`{"value":%d}`, expected), string(out))
}

func (h *harness) expectContractBalance(balance types.Coins) {
	h.bank.When("QueryAllBalances", mock.Any, CONTRACT_ADDRESS).Return(balance, nil).Times(1)
}

func (h *harness) verifyMocks(t testing.TB) {
	ok, err := h.bank.Verify()
	require.True(t, ok, "bank mock: %v", err)
	ok, err = h.address.Verify()
	require.True(t, ok, "address mock: %v", err)
}

func coins(t testing.TB, c ...types.Coin) types.Coins {
	result, err := types.NewCoins(c...)
	require.NoError(t, err)
	return result
}

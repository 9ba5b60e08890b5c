// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package counting

import (
	"github.com/orbs-network/go-mock"
	"github.com/orbs-network/orbs-counting-contract/services/processor/native/types"
	"github.com/orbs-network/orbs-counting-contract/test"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"math"
	"testing"
)

func TestCountingContract_InstantiateStoresAllSlots(t *testing.T) {
	h := newHarness()

	res, err := h.contract.Instantiate(CTX, h.env, types.MessageInfo{Sender: OWNER}, []byte(`{"counter":5,"minimal_donation":{"denom":"atom","amount":"10"}}`))
	require.NoError(t, err)

	action, _ := res.Attribute("action")
	require.Equal(t, "instantiate", action)
	counter, _ := res.Attribute("counter")
	require.Equal(t, "5", counter)

	h.requireValue(t, 5)
	owner, err := h.contract.loadOwner(CTX)
	require.NoError(t, err)
	require.Equal(t, OWNER, owner)
	donation, err := h.contract.loadMinimalDonation(CTX)
	require.NoError(t, err)
	test.RequireCmpEqual(t, types.NewCoin(10, "atom"), donation)
	ownerOnly, err := h.contract.loadResetRequiresOwner(CTX)
	require.NoError(t, err)
	require.True(t, ownerOnly, "reset should require the owner unless told otherwise")
}

func TestCountingContract_InstantiateRejectsMalformedMessages(t *testing.T) {
	for name, msg := range map[string]string{
		"missing minimal donation": `{"counter":1}`,
		"unknown field":            `{"counter":1,"minimal_donation":{"denom":"atom","amount":"1"},"extra":true}`,
		"numeric amount":           `{"counter":1,"minimal_donation":{"denom":"atom","amount":1}}`,
		"negative counter":         `{"counter":-1,"minimal_donation":{"denom":"atom","amount":"1"}}`,
		"not json":                 `counter=1`,
		"donation without amount":  `{"counter":0,"minimal_donation":{"denom":"NEAR"}}`,
		"donation without denom":   `{"counter":0,"minimal_donation":{"amount":"10"}}`,
		"hex amount":               `{"counter":0,"minimal_donation":{"denom":"atom","amount":"0x10"}}`,
		"trailing message":         `{"counter":1,"minimal_donation":{"denom":"atom","amount":"1"}} {"counter":2}`,
	} {
		t.Run(name, func(t *testing.T) {
			h := newHarness()
			_, err := h.contract.Instantiate(CTX, h.env, types.MessageInfo{Sender: OWNER}, []byte(msg))
			require.True(t, errors.Is(err, ErrInvalidMessage), "expected invalid message, got %v", err)
			require.Empty(t, h.state.values, "nothing should be written")
		})
	}
}

func TestCountingContract_InstantiateRejectsAmountAbove128Bits(t *testing.T) {
	h := newHarness()
	_, err := h.contract.Instantiate(CTX, h.env, types.MessageInfo{Sender: OWNER}, []byte(`{"counter":1,"minimal_donation":{"denom":"atom","amount":"340282366920938463463374607431768211456"}}`))
	require.True(t, errors.Is(err, ErrArithmeticOverflow), "expected overflow, got %v", err)
}

func TestCountingContract_DonateIncrementsWhenThresholdIsMet(t *testing.T) {
	h := newHarness()
	h.instantiate(t, 0, types.NewCoin(10, "atom"), true)

	res, err := h.execute("alice", coins(t, types.NewCoin(10, "atom")), `{"donate":{}}`)
	require.NoError(t, err)
	counter, _ := res.Attribute("counter")
	require.Equal(t, "1", counter)
	sender, _ := res.Attribute("sender")
	require.Equal(t, "alice", sender)

	_, err = h.execute("bob", coins(t, types.NewCoin(3, "btc"), types.NewCoin(25, "atom")), `{"donate":{}}`)
	require.NoError(t, err)
	h.requireValue(t, 2)
}

func TestCountingContract_DonateBelowThresholdKeepsCounter(t *testing.T) {
	h := newHarness()
	h.instantiate(t, 7, types.NewCoin(10, "atom"), true)

	for _, funds := range []types.Coins{
		nil,
		coins(t, types.NewCoin(9, "atom")),
		coins(t, types.NewCoin(100, "btc")),
	} {
		res, err := h.execute("alice", funds, `{"donate":{}}`)
		require.NoError(t, err, "a small donation is accepted, it just does not count")
		counter, _ := res.Attribute("counter")
		require.Equal(t, "7", counter)
	}
	h.requireValue(t, 7)
}

func TestCountingContract_DonateWithZeroThresholdAlwaysCounts(t *testing.T) {
	h := newHarness()
	h.instantiate(t, 0, types.NewCoin(0, "atom"), true)

	_, err := h.execute("alice", nil, `{"donate":{}}`)
	require.NoError(t, err)
	h.requireValue(t, 1)
}

func TestCountingContract_DonateAtMaxCounterOverflows(t *testing.T) {
	h := newHarness()
	h.instantiate(t, math.MaxUint64, types.NewCoin(0, "atom"), true)

	_, err := h.execute("alice", nil, `{"donate":{}}`)
	require.True(t, errors.Is(err, ErrArithmeticOverflow), "expected overflow, got %v", err)
	h.requireValue(t, math.MaxUint64)
}

func TestCountingContract_ResetByOwner(t *testing.T) {
	h := newHarness()
	h.instantiate(t, 3, types.NewCoin(10, "atom"), true)

	res, err := h.execute(OWNER, nil, `{"reset":{"value":42}}`)
	require.NoError(t, err)
	action, _ := res.Attribute("action")
	require.Equal(t, "reset", action)
	h.requireValue(t, 42)
}

func TestCountingContract_ResetByStrangerIsUnauthorized(t *testing.T) {
	h := newHarness()
	h.instantiate(t, 3, types.NewCoin(10, "atom"), true)

	_, err := h.execute("mallory", nil, `{"reset":{"value":0}}`)
	var unauthorized *UnauthorizedError
	require.True(t, errors.As(err, &unauthorized), "expected unauthorized, got %v", err)
	require.Equal(t, OWNER, unauthorized.Owner)
	require.EqualError(t, err, "unauthorized - only owner can call it")
	h.requireValue(t, 3)
}

func TestCountingContract_ResetByAnyoneWhenOwnershipNotRequired(t *testing.T) {
	h := newHarness()
	h.instantiate(t, 3, types.NewCoin(10, "atom"), false)

	_, err := h.execute("mallory", nil, `{"reset":{"value":0}}`)
	require.NoError(t, err)
	h.requireValue(t, 0)
}

func TestCountingContract_WithdrawSendsWholeBalanceToOwner(t *testing.T) {
	h := newHarness()
	h.instantiate(t, 0, types.NewCoin(10, "atom"), true)
	balance := coins(t, types.NewCoin(30, "atom"), types.NewCoin(2, "btc"))
	h.expectContractBalance(balance)

	res, err := h.execute(OWNER, nil, `{"withdraw":{}}`)
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)
	require.Equal(t, OWNER, res.Messages[0].ToAddress)
	require.True(t, balance.Equal(res.Messages[0].Amount), "expected %s, got %s", balance, res.Messages[0].Amount)
	h.verifyMocks(t)
}

func TestCountingContract_WithdrawWithEmptyBalanceSendsNothing(t *testing.T) {
	h := newHarness()
	h.instantiate(t, 0, types.NewCoin(10, "atom"), true)
	h.expectContractBalance(types.Coins{})

	res, err := h.execute(OWNER, nil, `{"withdraw":{}}`)
	require.NoError(t, err)
	require.Empty(t, res.Messages)
	h.verifyMocks(t)
}

func TestCountingContract_WithdrawByStrangerIsUnauthorized(t *testing.T) {
	h := newHarness()
	h.instantiate(t, 0, types.NewCoin(10, "atom"), true)
	h.bank.Never("QueryAllBalances", mock.Any, mock.Any)

	_, err := h.execute("mallory", nil, `{"withdraw":{}}`)
	var unauthorized *UnauthorizedError
	require.True(t, errors.As(err, &unauthorized), "expected unauthorized, got %v", err)
	h.verifyMocks(t)
}

func TestCountingContract_WithdrawToClampsByLimits(t *testing.T) {
	h := newHarness()
	h.instantiate(t, 0, types.NewCoin(10, "atom"), true)
	h.address.When("Validate", mock.Any, "charity").Return("charity", nil).Times(1)
	h.expectContractBalance(coins(t, types.NewCoin(30, "atom"), types.NewCoin(2, "btc"), types.NewCoin(5, "eth")))

	res, err := h.execute(OWNER, nil, `{"withdraw_to":{"receiver":"charity","limit_funds":[{"denom":"atom","amount":"12"},{"denom":"btc","amount":"100"}]}}`)
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)
	require.Equal(t, "charity", res.Messages[0].ToAddress)
	test.RequireCmpEqual(t, coins(t, types.NewCoin(12, "atom"), types.NewCoin(2, "btc")), res.Messages[0].Amount)
	receiver, _ := res.Attribute("receiver")
	require.Equal(t, "charity", receiver)
	h.verifyMocks(t)
}

func TestCountingContract_WithdrawToWithoutLimitsSendsEverything(t *testing.T) {
	h := newHarness()
	h.instantiate(t, 0, types.NewCoin(10, "atom"), true)
	h.address.When("Validate", mock.Any, "charity").Return("charity", nil).Times(1)
	h.expectContractBalance(coins(t, types.NewCoin(30, "atom")))

	res, err := h.execute(OWNER, nil, `{"withdraw_to":{"receiver":"charity","limit_funds":[]}}`)
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)
	test.RequireCmpEqual(t, coins(t, types.NewCoin(30, "atom")), res.Messages[0].Amount)
	h.verifyMocks(t)
}

func TestCountingContract_WithdrawToInvalidReceiver(t *testing.T) {
	h := newHarness()
	h.instantiate(t, 0, types.NewCoin(10, "atom"), true)
	h.address.When("Validate", mock.Any, "Not Valid").Return("", errors.Wrap(types.ErrInvalidAddress, "bad characters")).Times(1)
	h.bank.Never("QueryAllBalances", mock.Any, mock.Any)

	_, err := h.execute(OWNER, nil, `{"withdraw_to":{"receiver":"Not Valid","limit_funds":[]}}`)
	require.True(t, errors.Is(err, ErrInvalidAddress), "expected invalid address, got %v", err)
	h.verifyMocks(t)
}

func TestCountingContract_WithdrawToPassesHostFailuresThrough(t *testing.T) {
	h := newHarness()
	h.instantiate(t, 0, types.NewCoin(10, "atom"), true)
	hostFailure := errors.New("invalid execution context")
	h.address.When("Validate", mock.Any, "charity").Return("", hostFailure).Times(1)
	h.bank.Never("QueryAllBalances", mock.Any, mock.Any)

	_, err := h.execute(OWNER, nil, `{"withdraw_to":{"receiver":"charity","limit_funds":[]}}`)
	require.False(t, errors.Is(err, ErrInvalidAddress), "a host failure is not an invalid address, got %v", err)
	require.Equal(t, hostFailure, errors.Cause(err))
	h.verifyMocks(t)
}

func TestCountingContract_ExecuteRequiresExactlyOneVariant(t *testing.T) {
	h := newHarness()
	h.instantiate(t, 0, types.NewCoin(10, "atom"), true)

	for _, msg := range []string{`{}`, `{"donate":{},"withdraw":{}}`, `{"burn":{}}`, `{"donate":null}`, `{"donate":{}} {"withdraw":{}}`} {
		_, err := h.execute(OWNER, nil, msg)
		require.True(t, errors.Is(err, ErrInvalidMessage), "expected invalid message for %s, got %v", msg, err)
	}
}

func TestCountingContract_CorruptCounterSlot(t *testing.T) {
	h := newHarness()
	h.instantiate(t, 0, types.NewCoin(10, "atom"), true)
	h.state.values[COUNTER_KEY] = []byte{1, 2, 3}

	_, err := h.contract.Query(CTX, h.env, []byte(`{"value":{}}`))
	require.True(t, errors.Is(err, ErrStorageCorrupt), "expected storage corrupt, got %v", err)
	_, err = h.execute("alice", nil, `{"donate":{}}`)
	require.True(t, errors.Is(err, ErrStorageCorrupt), "expected storage corrupt, got %v", err)
}

func TestCountingContract_QueryBeforeInstantiateIsStorageCorrupt(t *testing.T) {
	h := newHarness()
	_, err := h.contract.Query(CTX, h.env, []byte(`{"value":{}}`))
	require.True(t, errors.Is(err, ErrStorageCorrupt), "expected storage corrupt, got %v", err)
}

// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package counting

import (
	"github.com/orbs-network/orbs-counting-contract/services/processor/native/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"math"
	"testing"
)

func TestCountingContract_IncrementedDoesNotTouchState(t *testing.T) {
	h := newHarness()
	h.instantiate(t, 3, types.NewCoin(10, "atom"), true)

	out, err := h.contract.Query(CTX, h.env, []byte(`{"incremented":{"value":41}}`))
	require.NoError(t, err)
	require.JSONEq(t, `{"value":42}`, string(out))
	h.requireValue(t, 3)
}

func TestCountingContract_IncrementedOverflows(t *testing.T) {
	_, err := incremented(math.MaxUint64)
	require.True(t, errors.Is(err, ErrArithmeticOverflow), "expected overflow, got %v", err)

	resp, err := incremented(math.MaxUint64 - 1)
	require.NoError(t, err)
	require.EqualValues(t, uint64(math.MaxUint64), resp.Value)
}

func TestCountingContract_DonationThreshold(t *testing.T) {
	threshold := types.NewCoin(10, "atom")
	require.True(t, donationCounts(threshold, types.Coins{types.NewCoin(10, "atom")}))
	require.True(t, donationCounts(threshold, types.Coins{types.NewCoin(1, "btc"), types.NewCoin(11, "atom")}))
	require.False(t, donationCounts(threshold, types.Coins{types.NewCoin(9, "atom")}))
	require.False(t, donationCounts(threshold, types.Coins{types.NewCoin(50, "ATOM")}))
	require.False(t, donationCounts(threshold, nil))
	require.True(t, donationCounts(types.NewCoin(0, "atom"), nil))
}

// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package test

import (
	"github.com/orbs-network/orbs-counting-contract/services/processor/native/types"
	"github.com/stretchr/testify/require"
	"testing"
)

type recordingT struct {
	testing.TB
	failed bool
}

func (r *recordingT) Errorf(format string, args ...interface{}) {
	r.failed = true
}

func TestAssertCmpEqualComparesAmountsByValue(t *testing.T) {
	parsed, err := types.ParseUint128("15")
	require.NoError(t, err)

	r := &recordingT{TB: t}
	require.True(t, AssertCmpEqual(r, types.Coins{types.NewCoin(15, "atom")}, types.Coins{{Denom: "atom", Amount: parsed}}))
	require.False(t, r.failed)
}

func TestAssertCmpEqualReportsDifference(t *testing.T) {
	r := &recordingT{TB: t}
	require.False(t, AssertCmpEqual(r, types.Coins{types.NewCoin(15, "atom")}, types.Coins{types.NewCoin(16, "atom")}))
	require.True(t, r.failed)
}

func TestEventuallyAndConsistently(t *testing.T) {
	calls := 0
	require.True(t, Eventually(EVENTUALLY_ADAPTER_TIMEOUT, func() bool {
		calls++
		return calls == 3
	}))
	require.Equal(t, 3, calls)

	require.False(t, Consistently(CONSISTENTLY_ADAPTER_TIMEOUT, func() bool {
		calls++
		return calls < 5
	}))
}

// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package types

import (
	"encoding/json"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"math/big"
	"testing"
)

func TestUint128_ZeroValueIsZero(t *testing.T) {
	var u Uint128
	require.True(t, u.IsZero())
	require.Equal(t, "0", u.String())
	require.Equal(t, 0, u.Cmp(NewUint128(0)))
}

func TestUint128_ParseRejectsOutOfRange(t *testing.T) {
	_, err := ParseUint128("340282366920938463463374607431768211456") // 2^128
	require.True(t, errors.Is(err, ErrArithmeticOverflow), "2^128 should overflow")

	max, err := ParseUint128("340282366920938463463374607431768211455")
	require.NoError(t, err)
	require.Equal(t, "340282366920938463463374607431768211455", max.String())

	_, err = ParseUint128("-1")
	require.True(t, errors.Is(err, ErrArithmeticOverflow), "negative amounts should be rejected")

	_, err = ParseUint128("ten")
	require.Error(t, err)

	_, err = ParseUint128("")
	require.Error(t, err)
}

func TestUint128_ParseAcceptsOnlyDecimalDigits(t *testing.T) {
	for _, s := range []string{"0x10", "0X10", "+5", " 5", "5 ", "1e3", "1_000"} {
		_, err := ParseUint128(s)
		require.Error(t, err, "%q should be rejected", s)
	}

	padded, err := ParseUint128("007")
	require.NoError(t, err)
	require.Equal(t, "7", padded.String())
}

func TestUint128_AddOverflows(t *testing.T) {
	max, err := NewUint128FromBig(maxUint128)
	require.NoError(t, err)

	_, err = max.Add(NewUint128(1))
	require.True(t, errors.Is(err, ErrArithmeticOverflow))
}

func TestUint128_SubUnderflows(t *testing.T) {
	_, err := NewUint128(3).Sub(NewUint128(4))
	require.True(t, errors.Is(err, ErrArithmeticOverflow))

	diff, err := NewUint128(10).Sub(NewUint128(4))
	require.NoError(t, err)
	require.Equal(t, "6", diff.String())
}

func TestUint128_Min(t *testing.T) {
	require.Equal(t, "4", NewUint128(10).Min(NewUint128(4)).String())
	require.Equal(t, "4", NewUint128(4).Min(NewUint128(10)).String())
}

func TestUint128_BigReturnsCopy(t *testing.T) {
	u := NewUint128(7)
	u.Big().Add(u.Big(), big.NewInt(100))
	require.Equal(t, "7", u.String(), "Uint128 must not be mutated through Big()")
}

func TestUint128_JsonIsDecimalString(t *testing.T) {
	bytes, err := json.Marshal(NewCoin(15, "NEAR"))
	require.NoError(t, err)
	require.JSONEq(t, `{"denom":"NEAR","amount":"15"}`, string(bytes))

	var c Coin
	require.NoError(t, json.Unmarshal([]byte(`{"denom":"NEAR","amount":"42"}`), &c))
	require.Equal(t, "42", c.Amount.String())

	require.Error(t, json.Unmarshal([]byte(`{"denom":"NEAR","amount":42}`), &c), "numeric amounts are not accepted")
}

// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package types

import (
	"encoding/json"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	"math/big"
	"regexp"
)

var ErrArithmeticOverflow = errors.New("arithmetic overflow")

var decimalPattern = regexp.MustCompile(`^-?[0-9]+$`)

var maxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// Uint128 is an immutable unsigned amount, encoded in json as a decimal string. The zero value is 0.
type Uint128 struct {
	i *big.Int
}

func NewUint128(value uint64) Uint128 {
	return Uint128{new(big.Int).SetUint64(value)}
}

func NewUint128FromBig(value *big.Int) (Uint128, error) {
	if value.Sign() < 0 || value.Cmp(maxUint128) > 0 {
		return Uint128{}, errors.Wrapf(ErrArithmeticOverflow, "%s does not fit in 128 bits", value)
	}
	return Uint128{new(big.Int).Set(value)}, nil
}

func ParseUint128(s string) (Uint128, error) {
	if s == "" {
		return Uint128{}, errors.New("empty amount")
	}
	if !decimalPattern.MatchString(s) {
		return Uint128{}, errors.Errorf("amount %q is not a decimal number", s)
	}
	value, ok := math.ParseBig256(s)
	if !ok {
		return Uint128{}, errors.Errorf("invalid amount %q", s)
	}
	return NewUint128FromBig(value)
}

func (u Uint128) Big() *big.Int {
	if u.i == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(u.i)
}

func (u Uint128) IsZero() bool {
	return u.i == nil || u.i.Sign() == 0
}

func (u Uint128) Cmp(other Uint128) int {
	return u.Big().Cmp(other.Big())
}

func (u Uint128) Min(other Uint128) Uint128 {
	return Uint128{math.BigMin(u.Big(), other.Big())}
}

func (u Uint128) Add(other Uint128) (Uint128, error) {
	return NewUint128FromBig(new(big.Int).Add(u.Big(), other.Big()))
}

// Sub fails with ErrArithmeticOverflow when other is larger than u
func (u Uint128) Sub(other Uint128) (Uint128, error) {
	return NewUint128FromBig(new(big.Int).Sub(u.Big(), other.Big()))
}

func (u Uint128) String() string {
	return u.Big().String()
}

func (u Uint128) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

func (u *Uint128) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Wrap(err, "amount must be a decimal string")
	}
	parsed, err := ParseUint128(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"github.com/pkg/errors"
	"sort"
	"strings"
)

type Coin struct {
	Denom  string  `json:"denom"`
	Amount Uint128 `json:"amount"`
}

func NewCoin(amount uint64, denom string) Coin {
	return Coin{Denom: denom, Amount: NewUint128(amount)}
}

func (c Coin) String() string {
	return c.Amount.String() + c.Denom
}

// UnmarshalJSON requires both denom and amount, a missing amount must not read as zero
func (c *Coin) UnmarshalJSON(data []byte) error {
	var fields struct {
		Denom  *string  `json:"denom"`
		Amount *Uint128 `json:"amount"`
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&fields); err != nil {
		return err
	}
	if fields.Denom == nil {
		return errors.New("coin is missing denom")
	}
	if fields.Amount == nil {
		return errors.Errorf("coin %s is missing amount", *fields.Denom)
	}
	c.Denom = *fields.Denom
	c.Amount = *fields.Amount
	return nil
}

// Coins is kept sorted by denom, without duplicates and without zero amounts
type Coins []Coin

// NewCoins normalizes the given coins, merging amounts of the same denom
func NewCoins(coins ...Coin) (Coins, error) {
	byDenom := make(map[string]Uint128)
	for _, c := range coins {
		sum, err := byDenom[c.Denom].Add(c.Amount)
		if err != nil {
			return nil, err
		}
		byDenom[c.Denom] = sum
	}

	result := make(Coins, 0, len(byDenom))
	for denom, amount := range byDenom {
		if !amount.IsZero() {
			result = append(result, Coin{Denom: denom, Amount: amount})
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Denom < result[j].Denom })
	return result, nil
}

func (coins Coins) AmountOf(denom string) Uint128 {
	for _, c := range coins {
		if c.Denom == denom {
			return c.Amount
		}
	}
	return Uint128{}
}

func (coins Coins) IsZero() bool {
	for _, c := range coins {
		if !c.Amount.IsZero() {
			return false
		}
	}
	return true
}

func (coins Coins) Add(other Coins) (Coins, error) {
	all := make([]Coin, 0, len(coins)+len(other))
	all = append(all, coins...)
	all = append(all, other...)
	return NewCoins(all...)
}

// Sub returns ErrArithmeticOverflow when other holds more of some denom than coins
func (coins Coins) Sub(other Coins) (Coins, error) {
	byDenom := make(map[string]Uint128)
	for _, c := range coins {
		byDenom[c.Denom] = c.Amount
	}
	for _, c := range other {
		diff, err := byDenom[c.Denom].Sub(c.Amount)
		if err != nil {
			return nil, err
		}
		byDenom[c.Denom] = diff
	}

	result := make([]Coin, 0, len(byDenom))
	for denom, amount := range byDenom {
		result = append(result, Coin{Denom: denom, Amount: amount})
	}
	return NewCoins(result...)
}

func (coins Coins) Equal(other Coins) bool {
	if len(coins) != len(other) {
		return false
	}
	for i := range coins {
		if coins[i].Denom != other[i].Denom || coins[i].Amount.Cmp(other[i].Amount) != 0 {
			return false
		}
	}
	return true
}

func (coins Coins) String() string {
	parts := make([]string, len(coins))
	for i, c := range coins {
		parts[i] = c.String()
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, ","))
}

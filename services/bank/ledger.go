// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package bank

import (
	"encoding/json"
	"github.com/orbs-network/orbs-counting-contract/services/processor/native/types"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/pkg/errors"
)

const BANK_CONTRACT_NAME = primitives.ContractName("_Bank")

var ErrInsufficientFunds = errors.New("insufficient funds")
var ErrCorruptBalance = errors.New("stored balance is corrupt")

// State is the view of chain state the ledger works on, usually the transient state of a single call
type State interface {
	ReadKey(contract primitives.ContractName, key string) ([]byte, error)
	WriteKey(contract primitives.ContractName, key string, value []byte) error
}

// Ledger keeps native coin balances of addresses
type Ledger struct {
	state State
}

func NewLedger(state State) *Ledger {
	return &Ledger{state: state}
}

func (l *Ledger) AllBalances(address string) (types.Coins, error) {
	bytes, err := l.state.ReadKey(BANK_CONTRACT_NAME, address)
	if err != nil {
		return nil, err
	}
	if len(bytes) == 0 {
		return types.Coins{}, nil
	}

	var coins types.Coins
	if err := json.Unmarshal(bytes, &coins); err != nil {
		return nil, errors.Wrapf(ErrCorruptBalance, "address %s: %s", address, err)
	}
	return types.NewCoins(coins...)
}

func (l *Ledger) setBalance(address string, coins types.Coins) error {
	if coins.IsZero() {
		return l.state.WriteKey(BANK_CONTRACT_NAME, address, nil)
	}
	bytes, err := json.Marshal(coins)
	if err != nil {
		return err
	}
	return l.state.WriteKey(BANK_CONTRACT_NAME, address, bytes)
}

func (l *Ledger) Send(from string, to string, amount types.Coins) error {
	amount, err := types.NewCoins(amount...)
	if err != nil {
		return err
	}
	if amount.IsZero() {
		return nil
	}

	fromBalance, err := l.AllBalances(from)
	if err != nil {
		return err
	}
	remaining, err := fromBalance.Sub(amount)
	if err != nil {
		return errors.Wrapf(ErrInsufficientFunds, "%s holds %s, needs %s", from, fromBalance, amount)
	}
	if from == to {
		return nil
	}
	if err := l.setBalance(from, remaining); err != nil {
		return err
	}

	return l.Mint(to, amount)
}

func (l *Ledger) Mint(to string, amount types.Coins) error {
	balance, err := l.AllBalances(to)
	if err != nil {
		return err
	}
	total, err := balance.Add(amount)
	if err != nil {
		return err
	}
	return l.setBalance(to, total)
}

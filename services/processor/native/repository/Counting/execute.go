// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package counting

import (
	"github.com/orbs-network/orbs-counting-contract/services/processor/native/types"
	"github.com/pkg/errors"
	"math"
	"strconv"
)

func (c *contract) instantiate(ctx types.Context, info types.MessageInfo, counter uint64, minimalDonation types.Coin, resetRequiresOwner bool) (*types.Response, error) {
	if err := c.saveCounter(ctx, counter); err != nil {
		return nil, err
	}
	if err := c.saveMinimalDonation(ctx, minimalDonation); err != nil {
		return nil, err
	}
	if err := c.saveOwner(ctx, info.Sender); err != nil {
		return nil, err
	}
	if err := c.saveResetRequiresOwner(ctx, resetRequiresOwner); err != nil {
		return nil, err
	}

	return types.NewResponse().
		AddAttribute("action", "instantiate").
		AddAttribute("sender", info.Sender).
		AddAttribute("counter", strconv.FormatUint(counter, 10)), nil
}

func (c *contract) donate(ctx types.Context, info types.MessageInfo) (*types.Response, error) {
	minimalDonation, err := c.loadMinimalDonation(ctx)
	if err != nil {
		return nil, err
	}
	counter, err := c.loadCounter(ctx)
	if err != nil {
		return nil, err
	}

	if donationCounts(minimalDonation, info.Funds) {
		if counter == math.MaxUint64 {
			return nil, errors.Wrapf(ErrArithmeticOverflow, "counter is at %d", counter)
		}
		counter++
		if err := c.saveCounter(ctx, counter); err != nil {
			return nil, err
		}
	}

	return types.NewResponse().
		AddAttribute("action", "donate").
		AddAttribute("sender", info.Sender).
		AddAttribute("counter", strconv.FormatUint(counter, 10)), nil
}

// a single coin of the threshold denom that covers the threshold is enough, whatever else was attached
func donationCounts(minimalDonation types.Coin, funds types.Coins) bool {
	if minimalDonation.Amount.IsZero() {
		return true
	}
	for _, coin := range funds {
		if coin.Denom == minimalDonation.Denom && coin.Amount.Cmp(minimalDonation.Amount) >= 0 {
			return true
		}
	}
	return false
}

func (c *contract) reset(ctx types.Context, info types.MessageInfo, value uint64) (*types.Response, error) {
	ownerOnly, err := c.loadResetRequiresOwner(ctx)
	if err != nil {
		return nil, err
	}
	if ownerOnly {
		if _, err := c.requireOwner(ctx, info.Sender); err != nil {
			return nil, err
		}
	}

	if err := c.saveCounter(ctx, value); err != nil {
		return nil, err
	}

	return types.NewResponse().
		AddAttribute("action", "reset").
		AddAttribute("sender", info.Sender).
		AddAttribute("counter", strconv.FormatUint(value, 10)), nil
}

func (c *contract) withdraw(ctx types.Context, env types.Env, info types.MessageInfo) (*types.Response, error) {
	owner, err := c.requireOwner(ctx, info.Sender)
	if err != nil {
		return nil, err
	}

	balance, err := c.Bank.QueryAllBalances(ctx, env.ContractAddress)
	if err != nil {
		return nil, err
	}

	response := types.NewResponse()
	if !balance.IsZero() {
		response.AddMessage(types.BankSend{ToAddress: owner, Amount: balance})
	}
	return response.
		AddAttribute("action", "withdraw").
		AddAttribute("sender", owner), nil
}

func (c *contract) withdrawTo(ctx types.Context, env types.Env, info types.MessageInfo, receiver string, limitFunds types.Coins) (*types.Response, error) {
	owner, err := c.requireOwner(ctx, info.Sender)
	if err != nil {
		return nil, err
	}

	validReceiver, err := c.Address.Validate(ctx, receiver)
	if errors.Is(err, ErrInvalidAddress) {
		return nil, errors.Wrapf(err, "receiver %q", receiver)
	} else if err != nil {
		return nil, err
	}

	balance, err := c.Bank.QueryAllBalances(ctx, env.ContractAddress)
	if err != nil {
		return nil, err
	}

	if len(limitFunds) > 0 {
		if balance, err = clampToLimits(balance, limitFunds); err != nil {
			return nil, err
		}
	}

	response := types.NewResponse()
	if !balance.IsZero() {
		response.AddMessage(types.BankSend{ToAddress: validReceiver, Amount: balance})
	}
	return response.
		AddAttribute("action", "withdraw_to").
		AddAttribute("sender", owner).
		AddAttribute("receiver", validReceiver), nil
}

// a denom without a limit entry is clamped to zero
func clampToLimits(balance types.Coins, limits types.Coins) (types.Coins, error) {
	clamped := make([]types.Coin, 0, len(balance))
	for _, coin := range balance {
		clamped = append(clamped, types.Coin{Denom: coin.Denom, Amount: coin.Amount.Min(limits.AmountOf(coin.Denom))})
	}
	return types.NewCoins(clamped...)
}

func (c *contract) requireOwner(ctx types.Context, sender string) (string, error) {
	owner, err := c.loadOwner(ctx)
	if err != nil {
		return "", err
	}
	if sender != owner {
		return "", &UnauthorizedError{Owner: owner}
	}
	return owner, nil
}

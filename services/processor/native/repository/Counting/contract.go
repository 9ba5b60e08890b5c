// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package counting

import (
	"encoding/json"
	"github.com/orbs-network/orbs-counting-contract/services/processor/native/types"
	"github.com/pkg/errors"
)

const CONTRACT_NAME = "CountingContract"

var CONTRACT = types.ContractInfo{
	Name:          CONTRACT_NAME,
	InitSingleton: newContract,
}

func newContract(base *types.BaseContract) types.Contract {
	return &contract{base}
}

type contract struct{ *types.BaseContract }

///////////////////////////////////////////////////////////////////////////

func (c *contract) Instantiate(ctx types.Context, env types.Env, info types.MessageInfo, raw []byte) (*types.Response, error) {
	var msg InitMsg
	if err := decodeMessage(raw, &msg); err != nil {
		return nil, err
	}
	if msg.MinimalDonation == nil {
		return nil, errors.Wrap(ErrInvalidMessage, "missing minimal_donation")
	}

	resetRequiresOwner := true
	if msg.ResetRequiresOwner != nil {
		resetRequiresOwner = *msg.ResetRequiresOwner
	}

	return c.instantiate(ctx, info, msg.Counter, *msg.MinimalDonation, resetRequiresOwner)
}

///////////////////////////////////////////////////////////////////////////

func (c *contract) Execute(ctx types.Context, env types.Env, info types.MessageInfo, raw []byte) (*types.Response, error) {
	var msg ExecMsg
	if err := decodeMessage(raw, &msg); err != nil {
		return nil, err
	}
	if msg.variants() != 1 {
		return nil, errors.Wrapf(ErrInvalidMessage, "expected exactly one of donate, reset, withdraw, withdraw_to")
	}

	switch {
	case msg.Donate != nil:
		return c.donate(ctx, info)
	case msg.Reset != nil:
		return c.reset(ctx, info, msg.Reset.Value)
	case msg.Withdraw != nil:
		return c.withdraw(ctx, env, info)
	default:
		return c.withdrawTo(ctx, env, info, msg.WithdrawTo.Receiver, msg.WithdrawTo.LimitFunds)
	}
}

///////////////////////////////////////////////////////////////////////////

func (c *contract) Query(ctx types.Context, env types.Env, raw []byte) ([]byte, error) {
	var msg QueryMsg
	if err := decodeMessage(raw, &msg); err != nil {
		return nil, err
	}
	if msg.variants() != 1 {
		return nil, errors.Wrapf(ErrInvalidMessage, "expected exactly one of value, incremented")
	}

	var resp *ValueResp
	var err error
	if msg.Value != nil {
		resp, err = c.value(ctx)
	} else {
		resp, err = incremented(msg.Incremented.Value)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(resp)
}

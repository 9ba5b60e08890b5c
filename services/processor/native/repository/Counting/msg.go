// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package counting

import (
	"bytes"
	"encoding/json"
	"github.com/orbs-network/orbs-counting-contract/services/processor/native/types"
	"github.com/pkg/errors"
	"io"
)

type InitMsg struct {
	Counter            uint64      `json:"counter"`
	MinimalDonation    *types.Coin `json:"minimal_donation"`
	ResetRequiresOwner *bool       `json:"reset_requires_owner,omitempty"`
}

type ExecMsg struct {
	Donate     *DonateMsg     `json:"donate,omitempty"`
	Reset      *ResetMsg      `json:"reset,omitempty"`
	Withdraw   *WithdrawMsg   `json:"withdraw,omitempty"`
	WithdrawTo *WithdrawToMsg `json:"withdraw_to,omitempty"`
}

type DonateMsg struct{}

type ResetMsg struct {
	Value uint64 `json:"value"`
}

type WithdrawMsg struct{}

type WithdrawToMsg struct {
	Receiver   string      `json:"receiver"`
	LimitFunds types.Coins `json:"limit_funds"`
}

type QueryMsg struct {
	Value       *ValueQuery       `json:"value,omitempty"`
	Incremented *IncrementedQuery `json:"incremented,omitempty"`
}

type ValueQuery struct{}

type IncrementedQuery struct {
	Value uint64 `json:"value"`
}

type ValueResp struct {
	Value uint64 `json:"value"`
}

func (m *ExecMsg) variants() int {
	return countSet(m.Donate != nil, m.Reset != nil, m.Withdraw != nil, m.WithdrawTo != nil)
}

func (m *QueryMsg) variants() int {
	return countSet(m.Value != nil, m.Incremented != nil)
}

func countSet(flags ...bool) int {
	count := 0
	for _, f := range flags {
		if f {
			count++
		}
	}
	return count
}

func decodeMessage(raw []byte, msg interface{}) error {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(msg); err != nil {
		if errors.Is(err, types.ErrArithmeticOverflow) {
			return err
		}
		return errors.Wrapf(ErrInvalidMessage, "%s", err)
	}
	if err := decoder.Decode(&json.RawMessage{}); err != io.EOF {
		return errors.Wrap(ErrInvalidMessage, "unexpected data after the message")
	}
	return nil
}

// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package counting

import (
	"encoding/json"
	"github.com/orbs-network/membuffers/go"
	"github.com/orbs-network/orbs-counting-contract/services/processor/native/types"
	"github.com/pkg/errors"
)

const (
	COUNTER_KEY              = "counter"
	MINIMAL_DONATION_KEY     = "minimal_donation"
	OWNER_KEY                = "owner"
	RESET_REQUIRES_OWNER_KEY = "reset_requires_owner"
)

func (c *contract) loadSlot(ctx types.Context, key string) ([]byte, error) {
	bytes, err := c.State.ReadBytesByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(bytes) == 0 {
		return nil, errors.Wrapf(ErrStorageCorrupt, "slot %s is missing", key)
	}
	return bytes, nil
}

func (c *contract) loadCounter(ctx types.Context) (uint64, error) {
	bytes, err := c.loadSlot(ctx, COUNTER_KEY)
	if err != nil {
		return 0, err
	}
	if len(bytes) != 8 {
		return 0, errors.Wrapf(ErrStorageCorrupt, "slot %s holds %d bytes", COUNTER_KEY, len(bytes))
	}
	return membuffers.GetUint64(bytes), nil
}

func (c *contract) saveCounter(ctx types.Context, value uint64) error {
	bytes := make([]byte, 8)
	membuffers.WriteUint64(bytes, value)
	return c.State.WriteBytesByKey(ctx, COUNTER_KEY, bytes)
}

func (c *contract) loadMinimalDonation(ctx types.Context) (types.Coin, error) {
	bytes, err := c.loadSlot(ctx, MINIMAL_DONATION_KEY)
	if err != nil {
		return types.Coin{}, err
	}
	var coin types.Coin
	if err := json.Unmarshal(bytes, &coin); err != nil {
		return types.Coin{}, errors.Wrapf(ErrStorageCorrupt, "slot %s: %s", MINIMAL_DONATION_KEY, err)
	}
	return coin, nil
}

func (c *contract) saveMinimalDonation(ctx types.Context, coin types.Coin) error {
	bytes, err := json.Marshal(coin)
	if err != nil {
		return err
	}
	return c.State.WriteBytesByKey(ctx, MINIMAL_DONATION_KEY, bytes)
}

func (c *contract) loadOwner(ctx types.Context) (string, error) {
	bytes, err := c.loadSlot(ctx, OWNER_KEY)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (c *contract) saveOwner(ctx types.Context, owner string) error {
	return c.State.WriteBytesByKey(ctx, OWNER_KEY, []byte(owner))
}

func (c *contract) loadResetRequiresOwner(ctx types.Context) (bool, error) {
	bytes, err := c.loadSlot(ctx, RESET_REQUIRES_OWNER_KEY)
	if err != nil {
		return false, err
	}
	return bytes[0] == 1, nil
}

func (c *contract) saveResetRequiresOwner(ctx types.Context, required bool) error {
	value := []byte{0}
	if required {
		value[0] = 1
	}
	return c.State.WriteBytesByKey(ctx, RESET_REQUIRES_OWNER_KEY, value)
}

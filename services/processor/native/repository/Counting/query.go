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
)

func (c *contract) value(ctx types.Context) (*ValueResp, error) {
	value, err := c.loadCounter(ctx)
	if err != nil {
		return nil, err
	}
	return &ValueResp{Value: value}, nil
}

// incremented does not touch state
func incremented(value uint64) (*ValueResp, error) {
	if value == math.MaxUint64 {
		return nil, errors.Wrapf(ErrArithmeticOverflow, "cannot increment %d", value)
	}
	return &ValueResp{Value: value + 1}, nil
}

// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package counting

import (
	"fmt"
	"github.com/orbs-network/orbs-counting-contract/services/processor/native/types"
	"github.com/pkg/errors"
)

var (
	ErrInvalidAddress     = types.ErrInvalidAddress
	ErrStorageCorrupt     = errors.New("storage corrupt")
	ErrArithmeticOverflow = types.ErrArithmeticOverflow
	ErrInvalidMessage     = errors.New("invalid message")
)

// UnauthorizedError is returned when the caller is not the recorded owner
type UnauthorizedError struct {
	Owner string
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("unauthorized - only %s can call it", e.Owner)
}

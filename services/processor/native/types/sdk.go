// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package types

import (
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/pkg/errors"
)

// Context identifies the execution context of the current call inside the host
type Context uint64

type StateSdk interface {
	// read, a missing key reads as an empty value
	ReadBytesByAddress(ctx Context, address primitives.Ripmd160Sha256) ([]byte, error)
	ReadBytesByKey(ctx Context, key string) ([]byte, error)

	// write
	WriteBytesByAddress(ctx Context, address primitives.Ripmd160Sha256, value []byte) error
	WriteBytesByKey(ctx Context, key string, value []byte) error
}

type BankSdk interface {
	QueryAllBalances(ctx Context, address string) (Coins, error)
}

// ErrInvalidAddress is the cause of every rejection by AddressSdk.Validate, other errors are host failures
var ErrInvalidAddress = errors.New("invalid address")

type AddressSdk interface {
	Validate(ctx Context, address string) (string, error)
}

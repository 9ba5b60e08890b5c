// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package adapter

import (
	"github.com/orbs-network/orbs-spec/types/go/primitives"
)

// ChainState maps a contract namespace to its records, an empty value deletes the key
type ChainState map[primitives.ContractName]map[string][]byte

type StatePersistence interface {
	Write(height primitives.BlockHeight, ts primitives.TimestampNano, diff ChainState) error
	Read(contract primitives.ContractName, key string) ([]byte, bool, error)
	ReadMetadata() (primitives.BlockHeight, primitives.TimestampNano, error)
	Close() error
}

func IsZeroValue(value []byte) bool {
	return len(value) == 0
}

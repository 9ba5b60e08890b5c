// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package hash

import (
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"golang.org/x/crypto/ripemd160"
)

const (
	RIPMD160_HASH_SIZE_BYTES = 20
)

// state keys are addressed by ripmd160(sha256(key)) so every slot has a fixed size address
func CalcRipmd160Sha256(data []byte) primitives.Ripmd160Sha256 {
	r := ripemd160.New()
	r.Write(CalcSha256(data))
	return r.Sum(nil)
}

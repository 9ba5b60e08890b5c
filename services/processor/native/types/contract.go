// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package types

// Contract is the entry dispatch of a repository contract: the host hands it a raw json message and the
// contract routes it to the matching operation.
type Contract interface {
	Instantiate(ctx Context, env Env, info MessageInfo, msg []byte) (*Response, error)
	Execute(ctx Context, env Env, info MessageInfo, msg []byte) (*Response, error)
	Query(ctx Context, env Env, msg []byte) ([]byte, error)
}

type BaseContract struct {
	State   StateSdk
	Bank    BankSdk
	Address AddressSdk
}

func NewBaseContract(
	state StateSdk,
	bank BankSdk,
	address AddressSdk,
) *BaseContract {

	return &BaseContract{
		State:   state,
		Bank:    bank,
		Address: address,
	}
}

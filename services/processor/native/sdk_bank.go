// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package native

import (
	"encoding/json"
	"github.com/orbs-network/orbs-counting-contract/services/processor/native/types"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
)

const SDK_OPERATION_NAME_BANK = "Sdk.Bank"

type bankSdk struct {
	service *service
}

func (s *bankSdk) QueryAllBalances(ctx types.Context, address string) (types.Coins, error) {
	output, err := s.service.sdkHandler.HandleSdkCall(&SdkCallInput{
		ContextId:      ctx,
		OperationName:  SDK_OPERATION_NAME_BANK,
		MethodName:     "queryAllBalances",
		InputArguments: []*protocol.Argument{StringArgument(address)},
	})
	if err != nil {
		return nil, err
	}
	if len(output.OutputArguments) != 1 || !output.OutputArguments[0].IsTypeBytesValue() {
		return nil, errors.Errorf("queryAllBalances Sdk.Bank returned corrupt output value")
	}

	var coins types.Coins
	if err := json.Unmarshal(output.OutputArguments[0].BytesValue(), &coins); err != nil {
		return nil, errors.Wrap(err, "queryAllBalances Sdk.Bank returned undecodable coins")
	}
	return coins, nil
}

// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package native

import (
	"github.com/orbs-network/orbs-counting-contract/services/processor/native/types"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
)

const SDK_OPERATION_NAME_ADDRESS = "Sdk.Address"

type addressSdk struct {
	service *service
}

// Validate returns the canonical form of a valid address
func (s *addressSdk) Validate(ctx types.Context, address string) (string, error) {
	output, err := s.service.sdkHandler.HandleSdkCall(&SdkCallInput{
		ContextId:      ctx,
		OperationName:  SDK_OPERATION_NAME_ADDRESS,
		MethodName:     "validate",
		InputArguments: []*protocol.Argument{StringArgument(address)},
	})
	if err != nil {
		return "", err
	}
	if len(output.OutputArguments) != 1 || !output.OutputArguments[0].IsTypeStringValue() {
		return "", errors.Errorf("validate Sdk.Address returned corrupt output value")
	}
	return output.OutputArguments[0].StringValue(), nil
}

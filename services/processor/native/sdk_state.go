// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package native

import (
	"github.com/orbs-network/orbs-counting-contract/crypto/hash"
	"github.com/orbs-network/orbs-counting-contract/services/processor/native/types"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
)

const SDK_OPERATION_NAME_STATE = "Sdk.State"

type stateSdk struct {
	service *service
}

func (s *stateSdk) ReadBytesByAddress(ctx types.Context, address primitives.Ripmd160Sha256) ([]byte, error) {
	output, err := s.service.sdkHandler.HandleSdkCall(&SdkCallInput{
		ContextId:      ctx,
		OperationName:  SDK_OPERATION_NAME_STATE,
		MethodName:     "read",
		InputArguments: []*protocol.Argument{BytesArgument(address)},
	})
	if err != nil {
		return nil, err
	}
	if len(output.OutputArguments) != 1 || !output.OutputArguments[0].IsTypeBytesValue() {
		return nil, errors.Errorf("read Sdk.State returned corrupt output value")
	}
	return output.OutputArguments[0].BytesValue(), nil
}

func (s *stateSdk) WriteBytesByAddress(ctx types.Context, address primitives.Ripmd160Sha256, value []byte) error {
	_, err := s.service.sdkHandler.HandleSdkCall(&SdkCallInput{
		ContextId:      ctx,
		OperationName:  SDK_OPERATION_NAME_STATE,
		MethodName:     "write",
		InputArguments: []*protocol.Argument{BytesArgument(address), BytesArgument(value)},
	})
	return err
}

func (s *stateSdk) ReadBytesByKey(ctx types.Context, key string) ([]byte, error) {
	return s.ReadBytesByAddress(ctx, keyToAddress(key))
}

func (s *stateSdk) WriteBytesByKey(ctx types.Context, key string, value []byte) error {
	return s.WriteBytesByAddress(ctx, keyToAddress(key), value)
}

func keyToAddress(key string) primitives.Ripmd160Sha256 {
	return hash.CalcRipmd160Sha256([]byte(key))
}

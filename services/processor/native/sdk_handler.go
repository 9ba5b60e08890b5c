// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package native

import (
	"github.com/orbs-network/orbs-counting-contract/services/processor/native/types"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
)

// SdkCallHandler is implemented by the host, contracts reach chain state only through it
type SdkCallHandler interface {
	HandleSdkCall(input *SdkCallInput) (*SdkCallOutput, error)
}

type SdkCallInput struct {
	ContextId      types.Context
	OperationName  string
	MethodName     string
	InputArguments []*protocol.Argument
}

type SdkCallOutput struct {
	OutputArguments []*protocol.Argument
}

func BytesArgument(value []byte) *protocol.Argument {
	return (&protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_BYTES_VALUE, BytesValue: value}).Build()
}

func StringArgument(value string) *protocol.Argument {
	return (&protocol.ArgumentBuilder{Type: protocol.ARGUMENT_TYPE_STRING_VALUE, StringValue: value}).Build()
}

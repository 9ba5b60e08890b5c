// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package logfields

import (
	"context"
	"fmt"
	"github.com/orbs-network/govnr"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/scribe/log"
)

type Errorer interface {
	Error(message string, fields ...*log.Field)
}

type govnrErrorer struct {
	logger Errorer
}

func (h *govnrErrorer) Error(err error) {
	h.logger.Error("recovered panic", log.Error(err))
}

func GovnrErrorer(logger Errorer) govnr.Errorer {
	return &govnrErrorer{logger}
}

func BlockHeight(value primitives.BlockHeight) *log.Field {
	return &log.Field{Key: "block-height", Uint: uint64(value), Type: log.UintType}
}

func TimestampNano(key string, value primitives.TimestampNano) *log.Field {
	return &log.Field{Key: key, Int: int64(value), Type: log.TimeType}
}

func ContractAddress(address string) *log.Field {
	return log.String("contract-address", address)
}

func ContractCode(name primitives.ContractName) *log.Field {
	return log.Stringable("contract-code", name)
}

func Sender(address string) *log.Field {
	return log.String("sender", address)
}

func Funds(funds fmt.Stringer) *log.Field {
	return log.Stringable("funds", funds)
}

func ContextStringValue(ctx context.Context, key string) *log.Field {
	val := "not-found-in-context"
	if v := ctx.Value(key); v != nil {
		if vString, ok := v.(string); ok {
			val = vString
		} else {
			val = "found-in-context-but-not-string"
		}
	}
	return log.String(key, val)
}

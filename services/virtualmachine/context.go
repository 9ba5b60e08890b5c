// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package virtualmachine

import (
	"context"
	"github.com/orbs-network/orbs-counting-contract/services/processor/native/types"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/pkg/errors"
	"sync"
)

type accessScope int

const (
	ACCESS_SCOPE_READ_ONLY accessScope = iota
	ACCESS_SCOPE_READ_WRITE
)

type executionContext struct {
	ctx             context.Context
	contractAddress string
	blockHeight     primitives.BlockHeight
	blockTimestamp  primitives.TimestampNano
	accessScope     accessScope
	transientState  *transientState
	storage         stateReader
}

type stateReader interface {
	ReadKey(ctx context.Context, contract primitives.ContractName, key string) ([]byte, bool, error)
}

// ReadKey serves the bank ledger and the state SDK, reads are cached in the transient state
func (c *executionContext) ReadKey(contract primitives.ContractName, key string) ([]byte, error) {
	if value, found := c.transientState.getValue(contract, key); found {
		return value, nil
	}
	value, _, err := c.storage.ReadKey(c.ctx, contract, key)
	if err != nil {
		return nil, err
	}
	c.transientState.setValue(contract, key, value, false)
	return value, nil
}

func (c *executionContext) WriteKey(contract primitives.ContractName, key string, value []byte) error {
	if c.accessScope != ACCESS_SCOPE_READ_WRITE {
		return errors.Wrapf(ErrReadOnlyAccess, "write to %s", contract)
	}
	c.transientState.setValue(contract, key, value, true)
	return nil
}

func (c *executionContext) env() types.Env {
	return types.Env{
		BlockHeight:     c.blockHeight,
		BlockTimestamp:  c.blockTimestamp,
		ContractAddress: c.contractAddress,
	}
}

type executionContextProvider struct {
	mutex          sync.RWMutex
	lastContextId  types.Context
	activeContexts map[types.Context]*executionContext
}

func newExecutionContextProvider() *executionContextProvider {
	return &executionContextProvider{
		activeContexts: make(map[types.Context]*executionContext),
	}
}

func (cp *executionContextProvider) allocateExecutionContext(ctx context.Context, storage stateReader, blockHeight primitives.BlockHeight, blockTimestamp primitives.TimestampNano, accessScope accessScope) (types.Context, *executionContext) {
	cp.mutex.Lock()
	defer cp.mutex.Unlock()

	newContext := &executionContext{
		ctx:            ctx,
		blockHeight:    blockHeight,
		blockTimestamp: blockTimestamp,
		accessScope:    accessScope,
		transientState: newTransientState(),
		storage:        storage,
	}

	cp.lastContextId++
	id := cp.lastContextId
	cp.activeContexts[id] = newContext
	return id, newContext
}

func (cp *executionContextProvider) destroyExecutionContext(contextId types.Context) {
	cp.mutex.Lock()
	defer cp.mutex.Unlock()

	delete(cp.activeContexts, contextId)
}

func (cp *executionContextProvider) loadExecutionContext(contextId types.Context) *executionContext {
	cp.mutex.RLock()
	defer cp.mutex.RUnlock()

	return cp.activeContexts[contextId]
}

// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package virtualmachine

import (
	"github.com/orbs-network/orbs-counting-contract/services/statestorage/adapter"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
)

type transientState struct {
	contracts         map[primitives.ContractName]*transientContract
	contractSortOrder []primitives.ContractName
}

type transientContract struct {
	kv map[string]*transientRecord
}

type transientRecord struct {
	value   []byte
	isDirty bool
}

func newTransientState() *transientState {
	return &transientState{
		contracts:         make(map[primitives.ContractName]*transientContract),
		contractSortOrder: []primitives.ContractName{},
	}
}

func (t *transientState) getValue(contract primitives.ContractName, key string) ([]byte, bool) {
	c, found := t.contracts[contract]
	if !found {
		return nil, false
	}
	record, found := c.kv[key]
	if !found {
		return nil, false
	}
	return record.value, true
}

// a clean value never overrides a dirty one, clean values are reads cached from storage
func (t *transientState) setValue(contract primitives.ContractName, key string, value []byte, isDirty bool) {
	c, found := t.contracts[contract]
	if !found {
		c = &transientContract{kv: make(map[string]*transientRecord)}
		t.contracts[contract] = c
		t.contractSortOrder = append(t.contractSortOrder, contract)
	}
	if record, found := c.kv[key]; found && record.isDirty && !isDirty {
		return
	}
	c.kv[key] = &transientRecord{value: value, isDirty: isDirty}
}

func (t *transientState) forDirty(contract primitives.ContractName, f func(key string, value []byte)) {
	c, found := t.contracts[contract]
	if !found {
		return
	}
	for key, record := range c.kv {
		if record.isDirty {
			f(key, record.value)
		}
	}
}

func (t *transientState) chainStateDiff() adapter.ChainState {
	diff := adapter.ChainState{}
	for _, contract := range t.contractSortOrder {
		t.forDirty(contract, func(key string, value []byte) {
			if _, found := diff[contract]; !found {
				diff[contract] = map[string][]byte{}
			}
			diff[contract][key] = value
		})
	}
	return diff
}

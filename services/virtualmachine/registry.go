// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package virtualmachine

import (
	"fmt"
	"github.com/orbs-network/membuffers/go"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/pkg/errors"
)

// instances are recorded in their own namespace, next to the balances of the bank
const CONTRACTS_CONTRACT_NAME = primitives.ContractName("_Contracts")

const (
	sequenceKey    = "sequence"
	codeKeyPrefix  = "code/"
	labelKeyPrefix = "label/"
	creatorPrefix  = "creator/"
)

func contractAddressFromSequence(sequence uint64) string {
	return fmt.Sprintf("contract%d", sequence)
}

func (c *executionContext) nextContractAddress() (string, error) {
	bytes, err := c.ReadKey(CONTRACTS_CONTRACT_NAME, sequenceKey)
	if err != nil {
		return "", err
	}
	sequence := uint64(0)
	if len(bytes) == 8 {
		sequence = membuffers.GetUint64(bytes)
	} else if len(bytes) != 0 {
		return "", errors.Errorf("contract sequence holds %d bytes", len(bytes))
	}

	next := make([]byte, 8)
	membuffers.WriteUint64(next, sequence+1)
	if err := c.WriteKey(CONTRACTS_CONTRACT_NAME, sequenceKey, next); err != nil {
		return "", err
	}
	return contractAddressFromSequence(sequence), nil
}

func (c *executionContext) registerContract(address string, codeName primitives.ContractName, label string, creator string) error {
	if err := c.WriteKey(CONTRACTS_CONTRACT_NAME, codeKeyPrefix+address, []byte(codeName)); err != nil {
		return err
	}
	if err := c.WriteKey(CONTRACTS_CONTRACT_NAME, creatorPrefix+address, []byte(creator)); err != nil {
		return err
	}
	if label == "" {
		return nil
	}
	return c.WriteKey(CONTRACTS_CONTRACT_NAME, labelKeyPrefix+address, []byte(label))
}

func (c *executionContext) contractCode(address string) (primitives.ContractName, error) {
	bytes, err := c.ReadKey(CONTRACTS_CONTRACT_NAME, codeKeyPrefix+address)
	if err != nil {
		return "", err
	}
	if len(bytes) == 0 {
		return "", errors.Wrapf(ErrContractNotFound, "no contract at %s", address)
	}
	return primitives.ContractName(bytes), nil
}

// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package virtualmachine

import (
	"github.com/orbs-network/orbs-counting-contract/services/processor/native/types"
	"github.com/pkg/errors"
	"regexp"
	"strings"
)

const (
	MIN_ADDRESS_LENGTH = 3
	MAX_ADDRESS_LENGTH = 64
)

var ErrInvalidAddress = types.ErrInvalidAddress

var addressPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// ValidateAddress accepts only addresses already in canonical lowercase form and returns them unchanged
func ValidateAddress(address string) (string, error) {
	if l := len(address); l < MIN_ADDRESS_LENGTH || l > MAX_ADDRESS_LENGTH {
		return "", errors.Wrapf(ErrInvalidAddress, "%q must be %d to %d characters long", address, MIN_ADDRESS_LENGTH, MAX_ADDRESS_LENGTH)
	}
	if strings.ToLower(address) != address {
		return "", errors.Wrapf(ErrInvalidAddress, "%q is not normalized", address)
	}
	if !addressPattern.MatchString(address) {
		return "", errors.Wrapf(ErrInvalidAddress, "%q has invalid characters", address)
	}
	return address, nil
}

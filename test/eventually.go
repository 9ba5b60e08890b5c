// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package test

import (
	"github.com/orbs-network/go-mock"
	"time"
)

const (
	EVENTUALLY_ADAPTER_TIMEOUT   = 500 * time.Millisecond
	CONSISTENTLY_ADAPTER_TIMEOUT = 100 * time.Millisecond
	eventuallyIterations         = 100
	consistentlyIterations       = 10
)

func Eventually(timeout time.Duration, f func() bool) bool {
	for i := 0; i < eventuallyIterations; i++ {
		if f() {
			return true
		}
		time.Sleep(timeout / eventuallyIterations)
	}
	return false
}

func Consistently(timeout time.Duration, f func() bool) bool {
	for i := 0; i < consistentlyIterations; i++ {
		if !f() {
			return false
		}
		time.Sleep(timeout / consistentlyIterations)
	}
	return true
}

// EventuallyVerify returns the error of the first mock that did not verify in time
func EventuallyVerify(timeout time.Duration, mocks ...mock.HasVerify) error {
	var errExample error
	Eventually(timeout, func() bool {
		errExample = nil
		for _, m := range mocks {
			if ok, err := m.Verify(); !ok {
				errExample = err
				return false
			}
		}
		return true
	})
	return errExample
}

// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package test

import (
	"fmt"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/orbs-network/orbs-counting-contract/services/processor/native/types"
	"github.com/stretchr/testify/assert"
	"testing"
)

// amounts hide their big.Int, so they are compared by value; an empty balance equals a nil one
var cmpOptions = []cmp.Option{
	cmp.Comparer(func(a, b types.Uint128) bool {
		return a.Cmp(b) == 0
	}),
	cmpopts.EquateEmpty(),
}

func AssertCmpEqual(t testing.TB, expected interface{}, actual interface{}, msgAndArgs ...interface{}) bool {
	if !cmp.Equal(expected, actual, cmpOptions...) {
		diff := cmp.Diff(expected, actual, cmpOptions...)
		return assert.Fail(t, fmt.Sprintf("Not equal: \n"+
			"expected: %v\n"+
			"actual  : %v\n%s", expected, actual, diff), msgAndArgs...)
	}
	return true
}

func RequireCmpEqual(t testing.TB, expected interface{}, actual interface{}, msgAndArgs ...interface{}) {
	if AssertCmpEqual(t, expected, actual, msgAndArgs...) {
		return
	}
	t.FailNow()
}

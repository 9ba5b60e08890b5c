// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package types

import (
	"github.com/stretchr/testify/require"
	"testing"
)

func TestResponse_Attributes(t *testing.T) {
	r := NewResponse().AddAttribute("action", "donate").AddAttribute("sender", "alice")

	v, ok := r.Attribute("sender")
	require.True(t, ok)
	require.Equal(t, "alice", v)

	_, ok = r.Attribute("missing")
	require.False(t, ok)
	require.Empty(t, r.Messages)
}

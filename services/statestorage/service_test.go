// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package statestorage

import (
	"context"
	"github.com/orbs-network/orbs-counting-contract/instrumentation/metric"
	"github.com/orbs-network/orbs-counting-contract/services/statestorage/adapter"
	"github.com/orbs-network/orbs-counting-contract/services/statestorage/adapter/memory"
	"github.com/orbs-network/orbs-counting-contract/test"
	"github.com/orbs-network/orbs-counting-contract/test/with"
	"github.com/stretchr/testify/require"
	"testing"
)

func newService(t *testing.T, harness *with.LoggingHarness) *Service {
	s, err := NewStateStorage(memory.NewStatePersistence(metric.NewRegistry()), harness.Logger, metric.NewRegistry())
	require.NoError(t, err)
	return s
}

func TestCommitThenReadKey(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		test.WithContext(func(ctx context.Context) {
			s := newService(t, harness)

			err := s.CommitStateDiff(ctx, 1, 100, adapter.ChainState{"contract0": {"counter": []byte{3}}})
			require.NoError(t, err)

			value, ok, err := s.ReadKey(ctx, "contract0", "counter")
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, []byte{3}, value)

			height, ts := s.GetLastCommittedBlockInfo(ctx)
			require.EqualValues(t, 1, height)
			require.EqualValues(t, 100, ts)
		})
	})
}

func TestCommitRejectsNonConsecutiveHeight(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		test.WithContext(func(ctx context.Context) {
			s := newService(t, harness)
			require.NoError(t, s.CommitStateDiff(ctx, 1, 1, adapter.ChainState{"contract0": {"counter": []byte{1}}}))

			err := s.CommitStateDiff(ctx, 3, 3, adapter.ChainState{"contract0": {"counter": []byte{2}}})
			require.IsType(t, &HeightMismatchError{}, err)
			require.EqualValues(t, 2, err.(*HeightMismatchError).Expected)

			err = s.CommitStateDiff(ctx, 1, 1, adapter.ChainState{"contract0": {"counter": []byte{2}}})
			require.Error(t, err, "past heights must be rejected")

			value, _, _ := s.ReadKey(ctx, "contract0", "counter")
			require.Equal(t, []byte{1}, value)
		})
	})
}

func TestReadKeyRequiresContractName(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		test.WithContext(func(ctx context.Context) {
			s := newService(t, harness)

			_, _, err := s.ReadKey(ctx, "", "counter")
			require.Equal(t, ErrMissingContractName, err)
		})
	})
}

func TestServiceStartsFromPersistedHeight(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		test.WithContext(func(ctx context.Context) {
			persistence := memory.NewStatePersistence(metric.NewRegistry())
			require.NoError(t, persistence.Write(5, 50, adapter.ChainState{}))

			s, err := NewStateStorage(persistence, harness.Logger, metric.NewRegistry())
			require.NoError(t, err)

			height, _ := s.GetLastCommittedBlockInfo(ctx)
			require.EqualValues(t, 5, height)
			require.NoError(t, s.CommitStateDiff(ctx, 6, 60, adapter.ChainState{}))
		})
	})
}

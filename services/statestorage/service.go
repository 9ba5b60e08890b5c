// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package statestorage

import (
	"context"
	"fmt"
	"github.com/orbs-network/orbs-counting-contract/instrumentation/logfields"
	"github.com/orbs-network/orbs-counting-contract/instrumentation/metric"
	"github.com/orbs-network/orbs-counting-contract/instrumentation/trace"
	"github.com/orbs-network/orbs-counting-contract/services/statestorage/adapter"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"sync"
	"time"
)

var LogTag = log.Service("state-storage")

var ErrMissingContractName = errors.New("missing contract name")

type HeightMismatchError struct {
	Expected primitives.BlockHeight
	Actual   primitives.BlockHeight
}

func (e *HeightMismatchError) Error() string {
	return fmt.Sprintf("expected block height %d but got %d", e.Expected, e.Actual)
}

type metrics struct {
	readKeyTime                *metric.Histogram
	commitTime                 *metric.Histogram
	lastCommittedBlockHeight   *metric.Gauge
	lastCommittedBlockTimeNano *metric.Gauge
}

func newMetrics(m metric.Factory) *metrics {
	return &metrics{
		readKeyTime:                m.NewLatency("StateStorage.ReadKeyTime.Millis", 1*time.Second),
		commitTime:                 m.NewLatency("StateStorage.CommitStateDiffTime.Millis", 10*time.Second),
		lastCommittedBlockHeight:   m.NewGauge("StateStorage.BlockHeight"),
		lastCommittedBlockTimeNano: m.NewGauge("StateStorage.BlockTimeNano"),
	}
}

type Service struct {
	logger      log.Logger
	metrics     *metrics
	persistence adapter.StatePersistence

	mutex                       sync.RWMutex
	lastCommittedBlockHeight    primitives.BlockHeight
	lastCommittedBlockTimestamp primitives.TimestampNano
}

func NewStateStorage(persistence adapter.StatePersistence, parentLogger log.Logger, metricFactory metric.Factory) (*Service, error) {
	height, ts, err := persistence.ReadMetadata()
	if err != nil {
		return nil, errors.Wrap(err, "could not read state metadata")
	}

	s := &Service{
		logger:                      parentLogger.WithTags(LogTag),
		metrics:                     newMetrics(metricFactory),
		persistence:                 persistence,
		lastCommittedBlockHeight:    height,
		lastCommittedBlockTimestamp: ts,
	}
	s.metrics.lastCommittedBlockHeight.Update(int64(height))
	s.metrics.lastCommittedBlockTimeNano.Update(int64(ts))
	s.logger.Info("state storage loaded", logfields.BlockHeight(height))
	return s, nil
}

func (s *Service) CommitStateDiff(ctx context.Context, height primitives.BlockHeight, ts primitives.TimestampNano, diff adapter.ChainState) error {
	start := time.Now()
	defer s.metrics.commitTime.RecordSince(start)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if expected := s.lastCommittedBlockHeight + 1; expected != height {
		return &HeightMismatchError{Expected: expected, Actual: height}
	}

	if err := s.persistence.Write(height, ts, diff); err != nil {
		s.logger.Error("failed to write state diff", log.Error(err), logfields.BlockHeight(height), trace.LogFieldFrom(ctx))
		return errors.Wrapf(err, "failed to commit block %d", height)
	}

	s.lastCommittedBlockHeight = height
	s.lastCommittedBlockTimestamp = ts
	s.metrics.lastCommittedBlockHeight.Update(int64(height))
	s.metrics.lastCommittedBlockTimeNano.Update(int64(ts))
	return nil
}

// ReadKey returns a nil value and false when the key was never written
func (s *Service) ReadKey(ctx context.Context, contract primitives.ContractName, key string) ([]byte, bool, error) {
	if contract == "" {
		return nil, false, ErrMissingContractName
	}
	start := time.Now()
	defer s.metrics.readKeyTime.RecordSince(start)

	value, ok, err := s.persistence.Read(contract, key)
	if err != nil {
		return nil, false, errors.Wrapf(err, "failed to read key of contract %s", contract)
	}
	return value, ok, nil
}

func (s *Service) GetLastCommittedBlockInfo(ctx context.Context) (primitives.BlockHeight, primitives.TimestampNano) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.lastCommittedBlockHeight, s.lastCommittedBlockTimestamp
}

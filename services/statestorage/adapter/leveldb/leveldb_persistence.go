// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package leveldb

import (
	"github.com/orbs-network/membuffers/go"
	"github.com/orbs-network/orbs-counting-contract/instrumentation/metric"
	"github.com/orbs-network/orbs-counting-contract/services/statestorage/adapter"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
	"strings"
	"sync"
	"time"
)

const (
	recordPrefix    = "r/"
	heightKey       = "m/height"
	timestampKey    = "m/timestamp"
	keySeparator    = "/"
	uint64ByteCount = 8
	maxWriteTime    = 10 * time.Second
)

type metrics struct {
	numberOfKeys *metric.Gauge
	writeTime    *metric.Histogram
}

func newMetrics(m metric.Factory) *metrics {
	return &metrics{
		numberOfKeys: m.NewGauge("StateStoragePersistence.TotalNumberOfKeys.Count"),
		writeTime:    m.NewLatency("StateStoragePersistence.WriteTime.Millis", maxWriteTime),
	}
}

type LevelDbStatePersistence struct {
	metrics *metrics
	mutex   sync.RWMutex
	db      *leveldb.DB
	height  primitives.BlockHeight
	ts      primitives.TimestampNano
	keys    int64
}

func NewStatePersistence(dataDir string, metricFactory metric.Factory) (*LevelDbStatePersistence, error) {
	db, err := leveldb.OpenFile(dataDir, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open state at %s", dataDir)
	}
	return newStatePersistence(db, metricFactory)
}

// NewInMemoryStatePersistence runs leveldb over memory storage, the state is gone on Close
func NewInMemoryStatePersistence(metricFactory metric.Factory) (*LevelDbStatePersistence, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, err
	}
	return newStatePersistence(db, metricFactory)
}

func newStatePersistence(db *leveldb.DB, metricFactory metric.Factory) (*LevelDbStatePersistence, error) {
	sp := &LevelDbStatePersistence{
		metrics: newMetrics(metricFactory),
		db:      db,
	}
	if err := sp.loadMetadata(); err != nil {
		db.Close()
		return nil, err
	}
	return sp, nil
}

func (sp *LevelDbStatePersistence) loadMetadata() error {
	height, err := sp.readUint64(heightKey)
	if err != nil {
		return err
	}
	ts, err := sp.readUint64(timestampKey)
	if err != nil {
		return err
	}
	sp.height, sp.ts = primitives.BlockHeight(height), primitives.TimestampNano(ts)

	iter := sp.db.NewIterator(util.BytesPrefix([]byte(recordPrefix)), nil)
	defer iter.Release()
	for iter.Next() {
		sp.keys++
	}
	sp.metrics.numberOfKeys.Update(sp.keys)
	return iter.Error()
}

func (sp *LevelDbStatePersistence) readUint64(key string) (uint64, error) {
	value, err := sp.db.Get([]byte(key), nil)
	if err == leveldb.ErrNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if len(value) != uint64ByteCount {
		return 0, errors.Errorf("metadata %s holds %d bytes", key, len(value))
	}
	return membuffers.GetUint64(value), nil
}

func recordKey(contract primitives.ContractName, key string) []byte {
	return []byte(recordPrefix + string(contract) + keySeparator + key)
}

func encodeUint64(value uint64) []byte {
	bytes := make([]byte, uint64ByteCount)
	membuffers.WriteUint64(bytes, value)
	return bytes
}

// Write applies the whole diff and the new metadata in a single atomic batch
func (sp *LevelDbStatePersistence) Write(height primitives.BlockHeight, ts primitives.TimestampNano, diff adapter.ChainState) error {
	sp.mutex.Lock()
	defer sp.mutex.Unlock()
	start := time.Now()
	defer sp.metrics.writeTime.RecordSince(start)

	batch := new(leveldb.Batch)
	keys := sp.keys
	for contract, records := range diff {
		if strings.Contains(string(contract), keySeparator) {
			return errors.Errorf("contract name %q may not contain %q", contract, keySeparator)
		}
		for key, value := range records {
			k := recordKey(contract, key)
			exists, err := sp.db.Has(k, nil)
			if err != nil {
				return err
			}
			if adapter.IsZeroValue(value) {
				batch.Delete(k)
				if exists {
					keys--
				}
			} else {
				batch.Put(k, value)
				if !exists {
					keys++
				}
			}
		}
	}
	batch.Put([]byte(heightKey), encodeUint64(uint64(height)))
	batch.Put([]byte(timestampKey), encodeUint64(uint64(ts)))

	if err := sp.db.Write(batch, nil); err != nil {
		return errors.Wrapf(err, "failed writing state of block %d", height)
	}

	sp.height, sp.ts, sp.keys = height, ts, keys
	sp.metrics.numberOfKeys.Update(keys)
	return nil
}

func (sp *LevelDbStatePersistence) Read(contract primitives.ContractName, key string) ([]byte, bool, error) {
	sp.mutex.RLock()
	defer sp.mutex.RUnlock()

	value, err := sp.db.Get(recordKey(contract, key), nil)
	if err == leveldb.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (sp *LevelDbStatePersistence) ReadMetadata() (primitives.BlockHeight, primitives.TimestampNano, error) {
	sp.mutex.RLock()
	defer sp.mutex.RUnlock()

	return sp.height, sp.ts, nil
}

func (sp *LevelDbStatePersistence) Close() error {
	sp.mutex.Lock()
	defer sp.mutex.Unlock()

	return sp.db.Close()
}

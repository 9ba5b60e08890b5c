// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package virtualmachine

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/orbs-network/orbs-counting-contract/instrumentation/metric"
	"github.com/orbs-network/orbs-counting-contract/services/processor/native"
	"github.com/orbs-network/orbs-counting-contract/services/processor/native/repository"
	"github.com/orbs-network/orbs-counting-contract/services/processor/native/repository/Counting"
	"github.com/orbs-network/orbs-counting-contract/services/processor/native/types"
	"github.com/orbs-network/orbs-counting-contract/services/statestorage"
	"github.com/orbs-network/orbs-counting-contract/services/statestorage/adapter/memory"
	"github.com/orbs-network/orbs-counting-contract/test"
	"github.com/orbs-network/scribe/log"
	"github.com/stretchr/testify/require"
	"testing"
)

const (
	OWNER    = "owner"
	ALICE    = "alice"
	STRANGER = "stranger"
	RECEIVER = "receiver"
)

type harness struct {
	t            *testing.T
	vm           VirtualMachine
	stateStorage *statestorage.Service
	persistence  *memory.InMemoryStatePersistence
	registry     metric.Registry
}

func newHarness(t *testing.T, logger log.Logger, genesis map[string]types.Coins) *harness {
	registry := metric.NewRegistry()
	persistence := memory.NewStatePersistence(registry)
	stateStorage, err := statestorage.NewStateStorage(persistence, logger, registry)
	require.NoError(t, err)

	processor := native.NewNativeProcessor(repository.Contracts, logger, registry)
	vm := NewVirtualMachine(stateStorage, processor, logger, registry)
	require.NoError(t, vm.InitGenesis(context.Background(), genesis))

	return &harness{
		t:            t,
		vm:           vm,
		stateStorage: stateStorage,
		persistence:  persistence,
		registry:     registry,
	}
}

func coins(t *testing.T, c ...types.Coin) types.Coins {
	result, err := types.NewCoins(c...)
	require.NoError(t, err)
	return result
}

func near(amount uint64) types.Coin {
	return types.NewCoin(amount, "NEAR")
}

func (h *harness) instantiate(ctx context.Context, sender string, msg string, funds ...types.Coin) string {
	out, err := h.vm.Instantiate(ctx, &InstantiateInput{
		CodeName: counting.CONTRACT_NAME,
		Sender:   sender,
		Funds:    coins(h.t, funds...),
		Label:    "counting",
		Message:  []byte(msg),
	})
	require.NoError(h.t, err, "instantiate should succeed")
	return out.ContractAddress
}

func (h *harness) instantiateWithThreshold(ctx context.Context, counter uint64, threshold types.Coin) string {
	return h.instantiate(ctx, OWNER, fmt.Sprintf(`{"counter":%d,"minimal_donation":{"denom":"%s","amount":"%s"}}`, counter, threshold.Denom, threshold.Amount))
}

func (h *harness) execute(ctx context.Context, address string, sender string, msg string, funds ...types.Coin) (*ExecuteOutput, error) {
	return h.vm.Execute(ctx, &ExecuteInput{
		ContractAddress: address,
		Sender:          sender,
		Funds:           coins(h.t, funds...),
		Message:         []byte(msg),
	})
}

func (h *harness) query(ctx context.Context, address string, msg string) uint64 {
	out, err := h.vm.Query(ctx, &QueryInput{ContractAddress: address, Message: []byte(msg)})
	require.NoError(h.t, err, "query should succeed")

	var resp counting.ValueResp
	require.NoError(h.t, json.Unmarshal(out.Data, &resp))
	return resp.Value
}

func (h *harness) requireValue(ctx context.Context, address string, expected uint64) {
	require.EqualValues(h.t, expected, h.query(ctx, address, `{"value":{}}`), "unexpected counter value")
}

func (h *harness) requireBalance(ctx context.Context, address string, expected ...types.Coin) {
	balance, err := h.vm.QueryAllBalances(ctx, address)
	require.NoError(h.t, err)
	test.RequireCmpEqual(h.t, coins(h.t, expected...), balance, "balance of %s", address)
}

func (h *harness) lastHeight(ctx context.Context) uint64 {
	height, _ := h.stateStorage.GetLastCommittedBlockInfo(ctx)
	return uint64(height)
}

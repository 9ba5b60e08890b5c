// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/orbs-network/orbs-counting-contract/bootstrap/httpserver"
	"github.com/orbs-network/orbs-counting-contract/config"
	"github.com/orbs-network/orbs-counting-contract/test/with"
	"github.com/stretchr/testify/require"
	"io/ioutil"
	"net/http"
	"os"
	"testing"
	"time"
)

type apiClient struct {
	t    testing.TB
	port int
}

func (c *apiClient) call(method string, path string, body string) (int, []byte) {
	req, err := http.NewRequest(method, fmt.Sprintf("http://127.0.0.1:%d%s", c.port, path), bytes.NewBufferString(body))
	require.NoError(c.t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer res.Body.Close()

	data, err := ioutil.ReadAll(res.Body)
	require.NoError(c.t, err)
	return res.StatusCode, data
}

func (c *apiClient) instantiate(sender string, msg string) string {
	status, data := c.call(http.MethodPost, "/api/v1/instantiate",
		fmt.Sprintf(`{"contract":"CountingContract","sender":"%s","label":"counter","msg":%s}`, sender, msg))
	require.Equal(c.t, http.StatusOK, status, string(data))

	response := &httpserver.InstantiateResponse{}
	require.NoError(c.t, json.Unmarshal(data, response))
	require.NotEmpty(c.t, response.Address)
	return response.Address
}

func (c *apiClient) execute(contract string, sender string, funds string, msg string) (int, []byte) {
	return c.call(http.MethodPost, "/api/v1/execute",
		fmt.Sprintf(`{"contract":"%s","sender":"%s","funds":%s,"msg":%s}`, contract, sender, funds, msg))
}

func (c *apiClient) query(contract string, msg string) string {
	status, data := c.call(http.MethodPost, "/api/v1/query", fmt.Sprintf(`{"contract":"%s","msg":%s}`, contract, msg))
	require.Equal(c.t, http.StatusOK, status, string(data))
	return string(data)
}

func (c *apiClient) balances(address string) string {
	status, data := c.call(http.MethodGet, "/api/v1/balances?address="+address, "")
	require.Equal(c.t, http.StatusOK, status, string(data))
	response := &httpserver.BalancesResponse{}
	require.NoError(c.t, json.Unmarshal(data, response))
	return response.Balances.String()
}

func withNode(t *testing.T, cfg config.NodeConfig, f func(node *Node, client *apiClient)) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		node, err := NewNode(cfg, harness.Logger)
		require.NoError(t, err, "node should start")

		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			node.GracefulShutdown(ctx)
			node.WaitUntilShutdown(ctx)
		}()

		f(node, &apiClient{t: t, port: node.HttpPort()})
	})
}

func genesisConfig(t *testing.T) config.NodeConfig {
	cfg, err := config.ForTestsWithGenesis(map[string]string{
		"owner": "100earth",
		"alice": "50earth,3moon",
	})
	require.NoError(t, err)
	return cfg
}

const INIT_MSG = `{"counter":0,"minimal_donation":{"denom":"earth","amount":"5"}}`

func TestNode_DonateQueryAndWithdrawOverHttp(t *testing.T) {
	withNode(t, genesisConfig(t), func(node *Node, client *apiClient) {
		contract := client.instantiate("owner", INIT_MSG)
		require.JSONEq(t, `{"value":0}`, client.query(contract, `{"value":{}}`))

		status, data := client.execute(contract, "alice", `[{"denom":"earth","amount":"10"},{"denom":"moon","amount":"1"}]`, `{"donate":{}}`)
		require.Equal(t, http.StatusOK, status, string(data))

		status, data = client.execute(contract, "alice", `[{"denom":"earth","amount":"1"}]`, `{"donate":{}}`)
		require.Equal(t, http.StatusOK, status, string(data))

		require.JSONEq(t, `{"value":1}`, client.query(contract, `{"value":{}}`), "only the donation that met the minimum should count")
		require.JSONEq(t, `{"value":2}`, client.query(contract, `{"incremented":{"value":1}}`))
		require.Equal(t, "[11earth,1moon]", client.balances(contract))
		require.Equal(t, "[39earth,2moon]", client.balances("alice"))

		status, data = client.execute(contract, "alice", `[]`, `{"withdraw":{}}`)
		require.Equal(t, http.StatusForbidden, status, string(data))
		require.Contains(t, string(data), `"code":"unauthorized"`)

		status, data = client.execute(contract, "owner", `[]`, `{"withdraw":{}}`)
		require.Equal(t, http.StatusOK, status, string(data))

		require.Equal(t, "[]", client.balances(contract))
		require.Equal(t, "[111earth,1moon]", client.balances("owner"))

		height, _ := node.Logic().StateStorage().GetLastCommittedBlockInfo(context.Background())
		require.EqualValues(t, 5, height, "genesis, instantiate, two donations and a withdraw should each be a block")
	})
}

func TestNode_FailedCallLeavesNoTrace(t *testing.T) {
	withNode(t, genesisConfig(t), func(node *Node, client *apiClient) {
		contract := client.instantiate("owner", INIT_MSG)

		status, data := client.execute(contract, "alice", `[{"denom":"earth","amount":"500"}]`, `{"donate":{}}`)
		require.Equal(t, http.StatusBadRequest, status, string(data))
		require.Contains(t, string(data), `"code":"insufficient_funds"`)

		status, data = client.execute(contract, "owner", `[]`, `{"withdraw_to":{"receiver":"Not Valid"}}`)
		require.Equal(t, http.StatusBadRequest, status, string(data))
		require.Contains(t, string(data), `"code":"invalid_address"`)

		status, data = client.execute("contract999", "owner", `[]`, `{"donate":{}}`)
		require.Equal(t, http.StatusNotFound, status, string(data))

		require.JSONEq(t, `{"value":0}`, client.query(contract, `{"value":{}}`))
		require.Equal(t, "[50earth,3moon]", client.balances("alice"))
	})
}

func TestNode_StatusReportsCommittedHeight(t *testing.T) {
	withNode(t, genesisConfig(t), func(node *Node, client *apiClient) {
		client.instantiate("owner", INIT_MSG)

		status, data := client.call(http.MethodGet, "/status", "")
		require.Equal(t, http.StatusOK, status)

		response := &httpserver.StatusResponse{}
		require.NoError(t, json.Unmarshal(data, response))
		require.EqualValues(t, 2, response.BlockHeight.StateStorage)
		require.EqualValues(t, 1, response.Calls.Committed)
	})
}

func TestNode_StateSurvivesRestartWithLevelDb(t *testing.T) {
	dataDir, err := ioutil.TempDir("", "counting-node")
	require.NoError(t, err)
	defer os.RemoveAll(dataDir)

	cfg := config.WithStateStorageDataDir(genesisConfig(t), dataDir)

	var contract string
	withNode(t, cfg, func(node *Node, client *apiClient) {
		contract = client.instantiate("owner", INIT_MSG)
		status, data := client.execute(contract, "alice", `[{"denom":"earth","amount":"5"}]`, `{"donate":{}}`)
		require.Equal(t, http.StatusOK, status, string(data))
	})

	withNode(t, cfg, func(node *Node, client *apiClient) {
		require.JSONEq(t, `{"value":1}`, client.query(contract, `{"value":{}}`))
		require.Equal(t, "[45earth,3moon]", client.balances("alice"), "genesis should not be minted twice")

		second := client.instantiate("owner", INIT_MSG)
		require.NotEqual(t, contract, second, "contract addresses should not be reused after a restart")
	})
}

// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package config

import (
	"github.com/stretchr/testify/require"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileConfig_Empty(t *testing.T) {
	cfg, err := newEmptyFileConfig(`{}`)

	require.NotNil(t, cfg)
	require.NoError(t, err)
}

func TestFileConfig_SetsValuesByType(t *testing.T) {
	cfg, err := newEmptyFileConfig(`{
		"http-address": ":9090",
		"http-requests-per-second": 12,
		"profiling": true,
		"state-storage-data-dir": "/tmp/counting",
		"metrics-report-interval": "15s",
		"logger-file-truncation-interval": "1h"
	}`)
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.HttpAddress())
	require.EqualValues(t, 12, cfg.HttpRequestsPerSecond())
	require.True(t, cfg.Profiling())
	require.Equal(t, "/tmp/counting", cfg.StateStorageDataDir())
	require.Equal(t, 15*time.Second, cfg.MetricsReportInterval())
	require.Equal(t, time.Hour, cfg.LoggerFileTruncationInterval())
}

func TestFileConfig_GenesisBalances(t *testing.T) {
	cfg, err := newEmptyFileConfig(`{"genesis-balances": {"alice": "100atom,5btc", "bob": "7NEAR"}}`)
	require.NoError(t, err)

	balances := cfg.GenesisBalances()
	require.Len(t, balances, 2)
	require.Equal(t, "[100atom,5btc]", balances["alice"].String())
	require.Equal(t, "[7NEAR]", balances["bob"].String())
}

func TestFileConfig_RejectsBadValues(t *testing.T) {
	for name, source := range map[string]string{
		"bad duration":     `{"metrics-report-interval": "soon"}`,
		"negative number":  `{"http-requests-burst": -1}`,
		"bad coin":         `{"genesis-balances": {"alice": "atom100"}}`,
		"coins not string": `{"genesis-balances": {"alice": 100}}`,
		"unknown object":   `{"http-address": {"host": "x"}}`,
		"not json":         `http-address=:80`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := newEmptyFileConfig(source)
			require.Error(t, err)
		})
	}
}

func TestGetNodeConfigFromFiles_MergesOverDefaults(t *testing.T) {
	dir, err := ioutil.TempDir("", "config")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	first := filepath.Join(dir, "first.json")
	second := filepath.Join(dir, "second.json")
	require.NoError(t, ioutil.WriteFile(first, []byte(`{"http-requests-burst": 3, "logger-full-log": true}`), 0644))
	require.NoError(t, ioutil.WriteFile(second, []byte(`{"http-requests-burst": 4}`), 0644))

	cfg, err := GetNodeConfigFromFiles([]string{first, second}, ":7070")
	require.NoError(t, err)

	require.EqualValues(t, 4, cfg.HttpRequestsBurst(), "later files should win")
	require.True(t, cfg.LoggerFullLog())
	require.Equal(t, ":7070", cfg.HttpAddress(), "flag should override files")
	require.EqualValues(t, 100, cfg.HttpRequestsPerSecond(), "defaults should survive")
}

func TestGetNodeConfigFromFiles_MissingFile(t *testing.T) {
	_, err := GetNodeConfigFromFiles([]string{"/does/not/exist.json"}, "")
	require.Error(t, err)
}

func TestConvertKeyName(t *testing.T) {
	require.Equal(t, HTTP_REQUESTS_PER_SECOND, convertKeyName("http-requests-per-second"))
}

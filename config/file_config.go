// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package config

import (
	"encoding/json"
	"fmt"
	"github.com/orbs-network/orbs-counting-contract/services/processor/native/types"
	"github.com/pkg/errors"
	"io/ioutil"
	"regexp"
	"strconv"
	"strings"
	"time"
)

func newEmptyFileConfig(source string) (mutableNodeConfig, error) {
	return newFileConfig(emptyConfig(), source)
}

func newFileConfig(parent mutableNodeConfig, source string) (mutableNodeConfig, error) {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(source), &data); err != nil {
		return nil, err
	}

	if err := populateConfig(parent, data); err != nil {
		return nil, err
	}

	return parent, nil
}

func GetNodeConfigFromFiles(configFiles []string, httpAddress string) (mutableNodeConfig, error) {
	cfg := defaultProductionConfig()

	for _, configFile := range configFiles {
		contents, err := ioutil.ReadFile(configFile)
		if err != nil {
			return nil, errors.Wrapf(err, "could not read config file %s", configFile)
		}

		if cfg, err = cfg.MergeWithFileConfig(string(contents)); err != nil {
			return nil, errors.Wrapf(err, "could not parse config file %s", configFile)
		}
	}

	if httpAddress != "" {
		cfg.SetString(HTTP_ADDRESS, httpAddress)
	}

	return cfg, nil
}

func convertKeyName(key string) string {
	return strings.ToUpper(strings.Replace(key, "-", "_", -1))
}

func parseUint32(f64 float64) (uint32, error) {
	s := fmt.Sprintf("%.0f", f64)
	if i, err := strconv.ParseUint(s, 10, 32); err == nil {
		return uint32(i), nil
	} else {
		return 0, err
	}
}

var coinPattern = regexp.MustCompile(`^([0-9]+)([a-zA-Z][a-zA-Z0-9/._-]*)$`)

// parseCoins reads a comma separated list such as "100atom,5btc"
func parseCoins(value string) (types.Coins, error) {
	var coins []types.Coin
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		match := coinPattern.FindStringSubmatch(part)
		if match == nil {
			return nil, errors.Errorf("invalid coin %q", part)
		}
		amount, err := types.ParseUint128(match[1])
		if err != nil {
			return nil, errors.Wrapf(err, "invalid coin %q", part)
		}
		coins = append(coins, types.Coin{Denom: match[2], Amount: amount})
	}
	return types.NewCoins(coins...)
}

func parseGenesisBalances(cfg mutableNodeConfig, value interface{}) error {
	balances, ok := value.(map[string]interface{})
	if !ok {
		return errors.Errorf("expected an object of address to coins")
	}
	for address, coins := range balances {
		coinsString, ok := coins.(string)
		if !ok {
			return errors.Errorf("expected coins of %s as a string", address)
		}
		parsed, err := parseCoins(coinsString)
		if err != nil {
			return err
		}
		cfg.SetGenesisBalance(address, parsed)
	}
	return nil
}

func populateConfig(cfg mutableNodeConfig, data map[string]interface{}) error {
	for key, value := range data {
		var err error

		switch v := value.(type) {
		case bool:
			cfg.SetBool(convertKeyName(key), v)
		case float64:
			var numericValue uint32
			if numericValue, err = parseUint32(v); err == nil {
				cfg.SetUint32(convertKeyName(key), numericValue)
			}
		case string:
			if duration, parseErr := time.ParseDuration(v); parseErr == nil && isDurationKey(key) {
				cfg.SetDuration(convertKeyName(key), duration)
			} else if isDurationKey(key) {
				err = parseErr
			} else {
				cfg.SetString(convertKeyName(key), v)
			}
		case map[string]interface{}:
			if key == "genesis-balances" {
				err = parseGenesisBalances(cfg, v)
			} else {
				err = errors.Errorf("unsupported object value")
			}
		default:
			err = errors.Errorf("unsupported value type %T", value)
		}

		if err != nil {
			return fmt.Errorf("could not decode value for config key %s: %s", key, err)
		}
	}

	return nil
}

func isDurationKey(key string) bool {
	return strings.HasSuffix(key, "-interval") || strings.HasSuffix(key, "-timeout")
}

// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package httpserver

import (
	"context"
	"encoding/json"
	"github.com/orbs-network/orbs-counting-contract/services/bank"
	"github.com/orbs-network/orbs-counting-contract/services/processor/native/repository/Counting"
	"github.com/orbs-network/orbs-counting-contract/services/processor/native/types"
	"github.com/orbs-network/orbs-counting-contract/services/statestorage"
	"github.com/orbs-network/orbs-counting-contract/services/virtualmachine"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"net/http"
)

type InstantiateRequest struct {
	Contract string          `json:"contract"`
	Sender   string          `json:"sender"`
	Funds    types.Coins     `json:"funds"`
	Label    string          `json:"label"`
	Msg      json.RawMessage `json:"msg"`
}

type InstantiateResponse struct {
	Address     string          `json:"address"`
	BlockHeight uint64          `json:"block_height"`
	Response    *types.Response `json:"response"`
}

type ExecuteRequest struct {
	Contract string          `json:"contract"`
	Sender   string          `json:"sender"`
	Funds    types.Coins     `json:"funds"`
	Msg      json.RawMessage `json:"msg"`
}

type ExecuteResponse struct {
	BlockHeight uint64          `json:"block_height"`
	Response    *types.Response `json:"response"`
}

type QueryRequest struct {
	Contract string          `json:"contract"`
	Msg      json.RawMessage `json:"msg"`
}

type BalancesResponse struct {
	Address  string      `json:"address"`
	Balances types.Coins `json:"balances"`
}

func decodeRequest(r *http.Request, request interface{}) *httpErr {
	bytes, e := readInput(r)
	if e != nil {
		return e
	}
	if err := json.Unmarshal(bytes, request); err != nil {
		return &httpErr{http.StatusBadRequest, "bad_request", log.Error(err), "http request is not a valid json object"}
	}
	return nil
}

func requireMessage(msg json.RawMessage) *httpErr {
	if len(msg) == 0 {
		return &httpErr{http.StatusBadRequest, "invalid_message", nil, "request carries no msg"}
	}
	return nil
}

func (s *HttpServer) instantiateHandler(ctx context.Context, r *http.Request) (interface{}, *httpErr) {
	request := &InstantiateRequest{}
	if e := decodeRequest(r, request); e != nil {
		return nil, e
	}
	if e := requireMessage(request.Msg); e != nil {
		return nil, e
	}

	output, err := s.vm.Instantiate(ctx, &virtualmachine.InstantiateInput{
		CodeName: primitives.ContractName(request.Contract),
		Sender:   request.Sender,
		Funds:    request.Funds,
		Label:    request.Label,
		Message:  request.Msg,
	})
	if err != nil {
		return nil, translateError(err)
	}

	return &InstantiateResponse{
		Address:     output.ContractAddress,
		BlockHeight: uint64(output.BlockHeight),
		Response:    output.Response,
	}, nil
}

func (s *HttpServer) executeHandler(ctx context.Context, r *http.Request) (interface{}, *httpErr) {
	request := &ExecuteRequest{}
	if e := decodeRequest(r, request); e != nil {
		return nil, e
	}
	if e := requireMessage(request.Msg); e != nil {
		return nil, e
	}

	output, err := s.vm.Execute(ctx, &virtualmachine.ExecuteInput{
		ContractAddress: request.Contract,
		Sender:          request.Sender,
		Funds:           request.Funds,
		Message:         request.Msg,
	})
	if err != nil {
		return nil, translateError(err)
	}

	return &ExecuteResponse{
		BlockHeight: uint64(output.BlockHeight),
		Response:    output.Response,
	}, nil
}

func (s *HttpServer) queryHandler(ctx context.Context, r *http.Request) (interface{}, *httpErr) {
	request := &QueryRequest{}
	if e := decodeRequest(r, request); e != nil {
		return nil, e
	}
	if e := requireMessage(request.Msg); e != nil {
		return nil, e
	}

	output, err := s.vm.Query(ctx, &virtualmachine.QueryInput{
		ContractAddress: request.Contract,
		Message:         request.Msg,
	})
	if err != nil {
		return nil, translateError(err)
	}

	return json.RawMessage(output.Data), nil
}

func (s *HttpServer) balancesHandler(ctx context.Context, r *http.Request) (interface{}, *httpErr) {
	address := r.URL.Query().Get("address")
	if address == "" {
		return nil, &httpErr{http.StatusBadRequest, "invalid_address", nil, "address query parameter is missing"}
	}

	balances, err := s.vm.QueryAllBalances(ctx, address)
	if err != nil {
		return nil, translateError(err)
	}
	if balances == nil {
		balances = types.Coins{}
	}

	return &BalancesResponse{Address: address, Balances: balances}, nil
}

// translateError maps a failed call onto an http status and a stable error code
func translateError(err error) *httpErr {
	var unauthorized *counting.UnauthorizedError
	var heightMismatch *statestorage.HeightMismatchError

	switch {
	case errors.As(err, &unauthorized):
		return &httpErr{http.StatusForbidden, "unauthorized", log.String("owner", unauthorized.Owner), err.Error()}
	case errors.Is(err, counting.ErrInvalidAddress), errors.Is(err, virtualmachine.ErrInvalidAddress):
		return &httpErr{http.StatusBadRequest, "invalid_address", log.Error(err), err.Error()}
	case errors.Is(err, counting.ErrArithmeticOverflow):
		return &httpErr{http.StatusBadRequest, "arithmetic_overflow", log.Error(err), err.Error()}
	case errors.Is(err, bank.ErrInsufficientFunds):
		return &httpErr{http.StatusBadRequest, "insufficient_funds", log.Error(err), err.Error()}
	case errors.Is(err, counting.ErrInvalidMessage):
		return &httpErr{http.StatusBadRequest, "invalid_message", log.Error(err), err.Error()}
	case errors.Is(err, virtualmachine.ErrContractNotFound), errors.Is(err, virtualmachine.ErrUnknownContractCode):
		return &httpErr{http.StatusNotFound, "contract_not_found", log.Error(err), err.Error()}
	case errors.Is(err, counting.ErrStorageCorrupt), errors.Is(err, bank.ErrCorruptBalance):
		return &httpErr{http.StatusInternalServerError, "storage_corrupt", log.Error(err), err.Error()}
	case errors.As(err, &heightMismatch):
		return &httpErr{http.StatusInternalServerError, "internal", log.Error(err), "state storage rejected the commit"}
	default:
		return &httpErr{http.StatusInternalServerError, "internal", log.Error(err), err.Error()}
	}
}

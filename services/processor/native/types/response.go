// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package types

type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// BankSend is a transfer instruction from the contract address, executed by the host after the call succeeds
type BankSend struct {
	ToAddress string `json:"to_address"`
	Amount    Coins  `json:"amount"`
}

type Response struct {
	Attributes []Attribute `json:"attributes"`
	Messages   []BankSend  `json:"messages"`
}

func NewResponse() *Response {
	return &Response{
		Attributes: []Attribute{},
		Messages:   []BankSend{},
	}
}

func (r *Response) AddAttribute(key string, value string) *Response {
	r.Attributes = append(r.Attributes, Attribute{Key: key, Value: value})
	return r
}

func (r *Response) AddMessage(msg BankSend) *Response {
	r.Messages = append(r.Messages, msg)
	return r
}

func (r *Response) Attribute(key string) (string, bool) {
	for _, a := range r.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

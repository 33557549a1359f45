// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

var _ EndpointRequester = (*endpointRequester)(nil)

type EndpointRequester interface {
	SendRequest(ctx context.Context, method string, params interface{}, reply interface{}, options ...Option) error
}

type endpointRequester struct {
	uri    string
	client *http.Client
}

// NewEndpointRequester returns a requester posting JSON-RPC calls to [uri].
// A nil [client] uses http.DefaultClient.
func NewEndpointRequester(uri string, client *http.Client) EndpointRequester {
	if client == nil {
		client = http.DefaultClient
	}
	return &endpointRequester{
		uri:    strings.TrimSuffix(uri, "/"),
		client: client,
	}
}

func (e *endpointRequester) SendRequest(
	ctx context.Context,
	method string,
	params interface{},
	reply interface{},
	options ...Option,
) error {
	uri, err := url.Parse(e.uri)
	if err != nil {
		return err
	}
	return SendJSONRequest(
		ctx,
		e.client,
		uri,
		method,
		params,
		reply,
		options...,
	)
}

// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package client talks to the REST API of a sharded chain. Reads are routed
// to the shard that owns the address they concern.
package client

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ava-labs/chainsdk/chains"
	"github.com/ava-labs/chainsdk/ids"
	"github.com/ava-labs/chainsdk/utils/logging"
	"github.com/ava-labs/chainsdk/utils/rpc"
)

var (
	_ Client = (*client)(nil)

	errNotSharded = errors.New("chain is not sharded")
)

// Client is the node API used by the wallet, the finality tracker and the
// state readers.
type Client interface {
	// Shards returns the configured shard ids in routing order.
	Shards() []string
	// ShardForAddress returns the shard owning [addr]. The second return value
	// is false when no shards are configured, in which case requests go to the
	// master endpoint.
	ShardForAddress(addr ids.Address) (string, bool)

	GetAccountData(ctx context.Context, addr ids.Address) (Response[AccountData], error)
	GetContractData(ctx context.Context, addr ids.Address, withState, withTrees bool) (Response[ContractData], error)
	GetContractStateTraverse(ctx context.Context, addr ids.Address) (Response[StateData], error)
	// GetExecutedTransaction is dispatched to [shard] rather than being
	// derived from an address.
	GetExecutedTransaction(ctx context.Context, shard string, id ids.ID, requireFinal bool) (Response[ExecutedTransaction], error)
	PutTransaction(ctx context.Context, payload []byte) (Response[TransactionPointer], error)

	GetAvlValue(ctx context.Context, addr ids.Address, treeID int32, key []byte) (Response[AvlValue], error)
	GetAvlSize(ctx context.Context, addr ids.Address, treeID int32) (Response[AvlSize], error)
	// GetAvlNext returns up to [n] entries strictly after [key], or from the
	// smallest key when [key] is nil.
	GetAvlNext(ctx context.Context, addr ids.Address, treeID int32, key []byte, n int) (Response[[]AvlEntry], error)
}

type client struct {
	log        logging.Logger
	baseURL    string
	shards     []string
	httpClient *http.Client
}

// NewClient returns a client for the node at [baseURL]. A nil [httpClient]
// uses http.DefaultClient.
func NewClient(log logging.Logger, baseURL string, shards []string, httpClient *http.Client) Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &client{
		log:        log,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		shards:     shards,
		httpClient: httpClient,
	}
}

// NewClientForChain builds a client from a sharded chain descriptor, using
// its primary endpoint.
func NewClientForChain(log logging.Logger, chain *chains.Descriptor, httpClient *http.Client) (Client, error) {
	if !chain.IsSharded() || chain.Sharded == nil {
		return nil, fmt.Errorf("%w: %s", errNotSharded, chain)
	}
	return NewClient(log, chain.PrimaryRPC(), chain.Sharded.Shards, httpClient), nil
}

func (c *client) Shards() []string {
	return c.shards
}

func (c *client) ShardForAddress(addr ids.Address) (string, bool) {
	return ShardForAddress(addr, c.shards)
}

// ShardForAddress maps [addr] onto one of [shards]. The mapping only depends
// on the routing key of the address and the number of shards.
func ShardForAddress(addr ids.Address, shards []string) (string, bool) {
	if len(shards) == 0 {
		return "", false
	}
	key := int64(addr.RoutingKey())
	if key < 0 {
		key = -key
	}
	return shards[key%int64(len(shards))], true
}

func (c *client) GetAccountData(ctx context.Context, addr ids.Address) (Response[AccountData], error) {
	resp, err := get[AccountData](ctx, c, c.addressHost(addr)+"/blockchain/account/"+addr.String(), nil)
	if err == nil && resp.Data != nil {
		resp.Data.Address = addr
	}
	return resp, err
}

func (c *client) GetContractData(ctx context.Context, addr ids.Address, withState, withTrees bool) (Response[ContractData], error) {
	output := StateNone
	switch {
	case withState && withTrees:
		output = StateDefault
	case withState:
		output = StateBinary
	}
	query := url.Values{"stateOutput": []string{string(output)}}
	return get[ContractData](ctx, c, c.contractURL(addr), query)
}

func (c *client) GetContractStateTraverse(ctx context.Context, addr ids.Address) (Response[StateData], error) {
	body := traverseRequest{
		Path: []traverseStep{{Type: "field", Name: "state"}},
	}
	return send[StateData](ctx, c, http.MethodPost, c.contractURL(addr), body)
}

func (c *client) GetExecutedTransaction(ctx context.Context, shard string, id ids.ID, requireFinal bool) (Response[ExecutedTransaction], error) {
	query := url.Values{"requireFinal": []string{strconv.FormatBool(requireFinal)}}
	return get[ExecutedTransaction](ctx, c, c.shardHost(shard)+"/blockchain/transaction/"+id.String(), query)
}

func (c *client) PutTransaction(ctx context.Context, payload []byte) (Response[TransactionPointer], error) {
	return send[TransactionPointer](ctx, c, http.MethodPut, c.baseURL+"/chain/transactions", putTransactionRequest{
		Payload: payload,
	})
}

func (c *client) GetAvlValue(ctx context.Context, addr ids.Address, treeID int32, key []byte) (Response[AvlValue], error) {
	return get[AvlValue](ctx, c, c.avlURL(addr, treeID)+"/"+hex.EncodeToString(key), nil)
}

func (c *client) GetAvlSize(ctx context.Context, addr ids.Address, treeID int32) (Response[AvlSize], error) {
	return get[AvlSize](ctx, c, c.avlURL(addr, treeID), nil)
}

func (c *client) GetAvlNext(ctx context.Context, addr ids.Address, treeID int32, key []byte, n int) (Response[[]AvlEntry], error) {
	uri := c.avlURL(addr, treeID) + "/next"
	if key != nil {
		uri += "/" + hex.EncodeToString(key)
	}
	query := url.Values{"n": []string{strconv.Itoa(n)}}
	return get[[]AvlEntry](ctx, c, uri, query)
}

func (c *client) shardHost(shard string) string {
	if shard == "" || len(c.shards) == 0 {
		return c.baseURL
	}
	return c.baseURL + "/shards/" + shard
}

func (c *client) addressHost(addr ids.Address) string {
	shard, _ := c.ShardForAddress(addr)
	return c.shardHost(shard)
}

func (c *client) contractURL(addr ids.Address) string {
	return c.addressHost(addr) + "/blockchain/contracts/" + addr.String()
}

func (c *client) avlURL(addr ids.Address, treeID int32) string {
	return fmt.Sprintf("%s/avl/%d", c.contractURL(addr), treeID)
}

func get[T any](ctx context.Context, c *client, uri string, query url.Values) (Response[T], error) {
	if len(query) > 0 {
		uri += "?" + query.Encode()
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return Response[T]{}, fmt.Errorf("failed to create request: %w", err)
	}
	return do[T](c, request)
}

func send[T any](ctx context.Context, c *client, method, uri string, body any) (Response[T], error) {
	requestBody, err := json.Marshal(body)
	if err != nil {
		return Response[T]{}, fmt.Errorf("failed to encode request: %w", err)
	}
	request, err := http.NewRequestWithContext(ctx, method, uri, bytes.NewReader(requestBody))
	if err != nil {
		return Response[T]{}, fmt.Errorf("failed to create request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	return do[T](c, request)
}

func do[T any](c *client, request *http.Request) (Response[T], error) {
	request.Header.Set("Accept", "application/json, text/plain, */*")

	//nolint:bodyclose // body is closed via rpc.CleanlyCloseBody
	resp, err := c.httpClient.Do(request)
	if err != nil {
		return Response[T]{}, fmt.Errorf("failed to issue request: %w", err)
	}
	defer rpc.CleanlyCloseBody(resp.Body)

	result := Response[T]{StatusCode: resp.StatusCode}
	if resp.StatusCode != http.StatusOK {
		c.log.Debug("node returned non-success status",
			zap.String("method", request.Method),
			zap.String("uri", rpc.Redact(request.URL.String())),
			zap.Int("status", resp.StatusCode),
		)
		return result, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return result, fmt.Errorf("failed to read response: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return result, nil
	}
	var data T
	if err := json.Unmarshal(body, &data); err != nil {
		return result, fmt.Errorf("failed to decode response: %w", err)
	}
	result.Data = &data
	return result, nil
}

// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/chainsdk/chains"
	"github.com/ava-labs/chainsdk/ids"
	"github.com/ava-labs/chainsdk/utils/logging"
)

var testShards = []string{"Shard0", "Shard1", "Shard2"}

func addressWithKey(b0, b1, b2, b3 byte) ids.Address {
	addr := ids.Address{byte(ids.PublicContractAddress)}
	addr[17], addr[18], addr[19], addr[20] = b0, b1, b2, b3
	return addr
}

func TestShardForAddress(t *testing.T) {
	tests := []struct {
		name     string
		addr     ids.Address
		shards   []string
		expected string
		ok       bool
	}{
		{
			name:   "no shards",
			addr:   addressWithKey(0, 0, 0, 7),
			shards: nil,
		},
		{
			name:     "positive key",
			addr:     addressWithKey(0, 0, 0, 7),
			shards:   testShards,
			expected: "Shard1",
			ok:       true,
		},
		{
			name:     "negative key uses absolute value",
			addr:     addressWithKey(0xff, 0xff, 0xff, 0xfb), // -5
			shards:   testShards,
			expected: "Shard2",
			ok:       true,
		},
		{
			name:     "min int32 does not overflow",
			addr:     addressWithKey(0x80, 0, 0, 0), // 2147483648 % 3 == 2
			shards:   testShards,
			expected: "Shard2",
			ok:       true,
		},
		{
			name:     "single shard",
			addr:     addressWithKey(0x12, 0x34, 0x56, 0x78),
			shards:   []string{"Shard0"},
			expected: "Shard0",
			ok:       true,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			shard, ok := ShardForAddress(test.addr, test.shards)
			require.Equal(test.ok, ok)
			require.Equal(test.expected, shard)
		})
	}
}

func TestShardForAddressIsDeterministic(t *testing.T) {
	require := require.New(t)

	c := NewClient(logging.NoLog{}, "http://localhost", testShards, nil)
	for i := 0; i < 1024; i++ {
		var addr ids.Address
		for j := range addr {
			addr[j] = byte(i*31 + j*7)
		}
		first, ok := c.ShardForAddress(addr)
		require.True(ok)
		second, ok := c.ShardForAddress(addr)
		require.True(ok)
		require.Equal(first, second)
		require.Contains(testShards, first)
	}
}

type recorded struct {
	method string
	path   string
	query  string
	body   []byte
}

func newTestNode(t *testing.T, routes func(r *mux.Router)) (*httptest.Server, *[]recorded) {
	calls := &[]recorded{}
	r := mux.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			body, _ := io.ReadAll(req.Body)
			*calls = append(*calls, recorded{
				method: req.Method,
				path:   req.URL.Path,
				query:  req.URL.RawQuery,
				body:   body,
			})
			next.ServeHTTP(w, req)
		})
	})
	routes(r)
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server, calls
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestGetAccountDataRoutesToShard(t *testing.T) {
	require := require.New(t)

	addr := addressWithKey(0, 0, 0, 7) // Shard1
	server, calls := newTestNode(t, func(r *mux.Router) {
		r.HandleFunc("/shards/{shard}/blockchain/account/{address}", func(w http.ResponseWriter, req *http.Request) {
			vars := mux.Vars(req)
			require.Equal("Shard1", vars["shard"])
			require.Equal(addr.String(), vars["address"])
			writeJSON(w, map[string]any{"nonce": 42})
		}).Methods(http.MethodGet)
	})

	c := NewClient(logging.NoLog{}, server.URL, testShards, nil)
	resp, err := c.GetAccountData(context.Background(), addr)
	require.NoError(err)
	require.True(resp.OK())
	require.Equal(uint64(42), resp.Data.Nonce)
	require.Equal(addr, resp.Data.Address)
	require.Len(*calls, 1)
}

func TestNoShardsUsesMaster(t *testing.T) {
	require := require.New(t)

	addr := addressWithKey(0, 0, 0, 7)
	server, calls := newTestNode(t, func(r *mux.Router) {
		r.HandleFunc("/blockchain/contracts/{address}", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, map[string]any{
				"type": "PUBLIC",
				"abi":  base64.StdEncoding.EncodeToString([]byte{1, 2}),
			})
		}).Methods(http.MethodGet)
	})

	c := NewClient(logging.NoLog{}, server.URL+"/", nil, nil)
	resp, err := c.GetContractData(context.Background(), addr, false, false)
	require.NoError(err)
	require.True(resp.OK())
	require.Equal(PublicContract, resp.Data.Type)
	require.Equal([]byte{1, 2}, resp.Data.ABI)
	require.Equal("stateOutput=NONE", (*calls)[0].query)
}

func TestGetContractDataStateOutput(t *testing.T) {
	tests := []struct {
		withState bool
		withTrees bool
		expected  string
	}{
		{withState: true, withTrees: true, expected: "stateOutput=DEFAULT"},
		{withState: true, withTrees: false, expected: "stateOutput=BINARY"},
		{withState: false, withTrees: true, expected: "stateOutput=NONE"},
		{withState: false, withTrees: false, expected: "stateOutput=NONE"},
	}
	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			require := require.New(t)

			server, calls := newTestNode(t, func(r *mux.Router) {
				r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					writeJSON(w, map[string]any{"type": "SYSTEM"})
				})
			})
			c := NewClient(logging.NoLog{}, server.URL, testShards, nil)
			_, err := c.GetContractData(context.Background(), addressWithKey(0, 0, 0, 1), test.withState, test.withTrees)
			require.NoError(err)
			require.Equal(test.expected, (*calls)[0].query)
		})
	}
}

func TestNonSuccessIsData(t *testing.T) {
	require := require.New(t)

	server, _ := newTestNode(t, func(r *mux.Router) {
		r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
	})

	c := NewClient(logging.NoLog{}, server.URL, testShards, nil)
	resp, err := c.GetExecutedTransaction(context.Background(), "Shard2", ids.ID{1}, true)
	require.NoError(err)
	require.False(resp.OK())
	require.True(resp.NotFound())
	require.Nil(resp.Data)
}

func TestGetExecutedTransaction(t *testing.T) {
	require := require.New(t)

	id := ids.ID{0xaa}
	child := ids.ID{0xbb}
	server, calls := newTestNode(t, func(r *mux.Router) {
		r.HandleFunc("/shards/{shard}/blockchain/transaction/{id}", func(w http.ResponseWriter, req *http.Request) {
			require.Equal("Shard0", mux.Vars(req)["shard"])
			writeJSON(w, map[string]any{
				"identifier":         id.String(),
				"executionSucceeded": true,
				"finalized":          true,
				"events": []map[string]any{
					{"identifier": child.String(), "destinationShard": "Shard2"},
				},
			})
		}).Methods(http.MethodGet)
	})

	c := NewClient(logging.NoLog{}, server.URL, testShards, nil)
	resp, err := c.GetExecutedTransaction(context.Background(), "Shard0", id, true)
	require.NoError(err)
	require.True(resp.OK())
	require.Equal(id, resp.Data.Identifier)
	require.True(resp.Data.ExecutionSucceeded)
	require.Equal([]EventPointer{{Identifier: child, DestinationShard: "Shard2"}}, resp.Data.Events)
	require.Equal("requireFinal=true", (*calls)[0].query)
}

func TestGetContractStateTraverse(t *testing.T) {
	require := require.New(t)

	addr := addressWithKey(0, 0, 0, 3) // Shard0
	server, calls := newTestNode(t, func(r *mux.Router) {
		r.HandleFunc("/shards/Shard0/blockchain/contracts/{address}", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, map[string]any{"data": base64.StdEncoding.EncodeToString([]byte{9, 8, 7})})
		}).Methods(http.MethodPost)
	})

	c := NewClient(logging.NoLog{}, server.URL, testShards, nil)
	resp, err := c.GetContractStateTraverse(context.Background(), addr)
	require.NoError(err)
	require.True(resp.OK())
	require.Equal([]byte{9, 8, 7}, resp.Data.Data)
	require.JSONEq(`{"path":[{"type":"field","name":"state"}]}`, string((*calls)[0].body))
}

func TestPutTransaction(t *testing.T) {
	require := require.New(t)

	id := ids.ID{0x01, 0x02}
	server, calls := newTestNode(t, func(r *mux.Router) {
		r.HandleFunc("/chain/transactions", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, map[string]any{
				"identifier":         id.String(),
				"destinationShardId": "Shard1",
			})
		}).Methods(http.MethodPut)
	})

	c := NewClient(logging.NoLog{}, server.URL, testShards, nil)
	resp, err := c.PutTransaction(context.Background(), []byte{0xde, 0xad})
	require.NoError(err)
	require.True(resp.OK())
	require.Equal(TransactionPointer{Identifier: id, DestinationShardID: "Shard1"}, *resp.Data)
	require.JSONEq(`{"payload":"3q0="}`, string((*calls)[0].body))
}

func TestAvlEndpoints(t *testing.T) {
	require := require.New(t)

	addr := addressWithKey(0, 0, 0, 5) // Shard2
	server, calls := newTestNode(t, func(r *mux.Router) {
		s := r.PathPrefix("/shards/Shard2/blockchain/contracts/{address}/avl/{tree}").Subrouter()
		s.HandleFunc("/next", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, []map[string]string{{"key": "AQ==", "value": "Ag=="}})
		})
		s.HandleFunc("/next/{key}", func(w http.ResponseWriter, req *http.Request) {
			require.Equal("01", mux.Vars(req)["key"])
			writeJSON(w, []map[string]string{})
		})
		s.HandleFunc("/{key}", func(w http.ResponseWriter, req *http.Request) {
			if mux.Vars(req)["key"] == "ff" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			writeJSON(w, map[string]string{"data": "Cg=="})
		})
		s.HandleFunc("", func(w http.ResponseWriter, req *http.Request) {
			require.Equal("4", mux.Vars(req)["tree"])
			writeJSON(w, map[string]int{"size": 17})
		})
	})

	ctx := context.Background()
	c := NewClient(logging.NoLog{}, server.URL, testShards, nil)

	size, err := c.GetAvlSize(ctx, addr, 4)
	require.NoError(err)
	require.Equal(17, size.Data.Size)

	value, err := c.GetAvlValue(ctx, addr, 4, []byte{0x0a})
	require.NoError(err)
	require.Equal([]byte{0x0a}, value.Data.Data)

	missing, err := c.GetAvlValue(ctx, addr, 4, []byte{0xff})
	require.NoError(err)
	require.True(missing.NotFound())

	first, err := c.GetAvlNext(ctx, addr, 4, nil, 10)
	require.NoError(err)
	require.Equal([]AvlEntry{{Key: []byte{1}, Value: []byte{2}}}, *first.Data)

	next, err := c.GetAvlNext(ctx, addr, 4, []byte{1}, 10)
	require.NoError(err)
	require.Empty(*next.Data)

	require.Equal("n=10", (*calls)[3].query)
	require.Equal("/shards/Shard2/blockchain/contracts/"+addr.String()+"/avl/4/next/01", (*calls)[4].path)
}

func TestNewClientForChain(t *testing.T) {
	require := require.New(t)

	c, err := NewClientForChain(logging.NoLog{}, chains.PartisiaTestnet, nil)
	require.NoError(err)
	require.Equal([]string{"Shard0", "Shard1", "Shard2"}, c.Shards())

	_, err = NewClientForChain(logging.NoLog{}, chains.BSC, nil)
	require.ErrorIs(err, errNotSharded)
}

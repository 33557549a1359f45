// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"
	"math/big"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/chainsdk/ids"
	"github.com/ava-labs/chainsdk/pbc/client"
	"github.com/ava-labs/chainsdk/utils/logging"
)

var (
	tokenContract = ids.Address{0x02, 0x01}
	alice         = ids.Address{0x00, 0xa1}
	bob           = ids.Address{0x00, 0xb0}

	balancesSpec = AvlTreeOf(Simple(Address), Simple(U128))
)

func u128(v byte) []byte {
	b := make([]byte, 16)
	b[0] = v
	return b
}

func newTestReader(t *testing.T, c client.Client) *AvlReader {
	r, err := NewAvlReader(logging.NoLog{}, c, tokenContract, 3, balancesSpec)
	require.NoError(t, err)
	return r
}

func TestNewAvlReaderRequiresTree(t *testing.T) {
	_, err := NewAvlReader(logging.NoLog{}, nil, tokenContract, 3, Simple(U8))
	require.ErrorIs(t, err, errMissingSpec)
}

func TestAvlGet(t *testing.T) {
	tests := []struct {
		name          string
		response      client.Response[client.AvlValue]
		expectedFound bool
		expectedErr   error
	}{
		{
			name: "found",
			response: client.Response[client.AvlValue]{
				StatusCode: http.StatusOK,
				Data:       &client.AvlValue{Data: u128(42)},
			},
			expectedFound: true,
		},
		{
			name: "not found",
			response: client.Response[client.AvlValue]{
				StatusCode: http.StatusNotFound,
			},
		},
		{
			name: "server error",
			response: client.Response[client.AvlValue]{
				StatusCode: http.StatusInternalServerError,
			},
			expectedErr: errUnexpectedStatus,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)
			ctrl := gomock.NewController(t)

			c := client.NewMockClient(ctrl)
			c.EXPECT().GetAvlValue(gomock.Any(), tokenContract, int32(3), alice.Bytes()).Return(test.response, nil)

			v, found, err := newTestReader(t, c).Get(context.Background(), alice)
			require.ErrorIs(err, test.expectedErr)
			require.Equal(test.expectedFound, found)
			if test.expectedFound {
				require.Zero(big.NewInt(42).Cmp(v.(*big.Int)))
			} else {
				require.Nil(v)
			}
		})
	}
}

func TestAvlGetRejectsBadKey(t *testing.T) {
	ctrl := gomock.NewController(t)

	_, _, err := newTestReader(t, client.NewMockClient(ctrl)).Get(context.Background(), true)
	require.ErrorIs(t, err, errWrongType)
}

func TestAvlAll(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	c := client.NewMockClient(ctrl)
	gomock.InOrder(
		c.EXPECT().GetAvlSize(gomock.Any(), tokenContract, int32(3)).Return(client.Response[client.AvlSize]{
			StatusCode: http.StatusOK,
			Data:       &client.AvlSize{Size: 2},
		}, nil),
		c.EXPECT().GetAvlNext(gomock.Any(), tokenContract, int32(3), []byte(nil), 2).Return(client.Response[[]client.AvlEntry]{
			StatusCode: http.StatusOK,
			Data: &[]client.AvlEntry{
				{Key: alice.Bytes(), Value: u128(1)},
				{Key: bob.Bytes(), Value: u128(2)},
			},
		}, nil),
	)

	entries, err := newTestReader(t, c).All(context.Background())
	require.NoError(err)
	require.Len(entries, 2)
	require.Equal(alice, entries[0].Key)
	require.Zero(big.NewInt(1).Cmp(entries[0].Value.(*big.Int)))
	require.Equal(bob, entries[1].Key)
	require.Zero(big.NewInt(2).Cmp(entries[1].Value.(*big.Int)))
}

func TestAvlAllEmptyTree(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	c := client.NewMockClient(ctrl)
	c.EXPECT().GetAvlSize(gomock.Any(), tokenContract, int32(3)).Return(client.Response[client.AvlSize]{
		StatusCode: http.StatusOK,
		Data:       &client.AvlSize{},
	}, nil)

	entries, err := newTestReader(t, c).All(context.Background())
	require.NoError(err)
	require.Empty(entries)
}

func TestAvlNext(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	c := client.NewMockClient(ctrl)
	c.EXPECT().GetAvlNext(gomock.Any(), tokenContract, int32(3), alice.Bytes(), 5).Return(client.Response[[]client.AvlEntry]{
		StatusCode: http.StatusOK,
		Data: &[]client.AvlEntry{
			{Key: bob.Bytes(), Value: u128(2)},
		},
	}, nil)

	entries, err := newTestReader(t, c).Next(context.Background(), alice, 5)
	require.NoError(err)
	require.Len(entries, 1)
	require.Equal(bob, entries[0].Key)
}

func TestAvlNextBadEntry(t *testing.T) {
	ctrl := gomock.NewController(t)

	c := client.NewMockClient(ctrl)
	c.EXPECT().GetAvlNext(gomock.Any(), tokenContract, int32(3), []byte(nil), 1).Return(client.Response[[]client.AvlEntry]{
		StatusCode: http.StatusOK,
		Data: &[]client.AvlEntry{
			{Key: []byte{0x01}, Value: u128(2)},
		},
	}, nil)

	_, err := newTestReader(t, c).First(context.Background(), 1)
	require.ErrorIs(t, err, ErrInsufficientLength)
}

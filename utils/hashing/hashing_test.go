// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package hashing

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeHash256(t *testing.T) {
	require := require.New(t)

	// sha256("abc")
	expected := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	require.Equal(expected, hex.EncodeToString(ComputeHash256([]byte("abc"))))
	require.Equal(expected, hex.EncodeToString(ComputeHash256Buffers([]byte("a"), []byte("bc"))))
	require.Equal(expected, hex.EncodeToString(ComputeHash256Buffers([]byte("abc"), nil)))
}

func TestToHash256(t *testing.T) {
	require := require.New(t)

	_, err := ToHash256(make([]byte, 31))
	require.ErrorIs(err, ErrInvalidHashLen)

	h, err := ToHash256(ComputeHash256(nil))
	require.NoError(err)
	require.Equal(ComputeHash256Array(nil), h)
	require.Len(Checksum([]byte("abc"), 4), 4)
}

// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package secp256k1

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/chainsdk/utils/hashing"
)

func TestSignRecover(t *testing.T) {
	require := require.New(t)

	key, err := NewPrivateKey()
	require.NoError(err)

	hash := hashing.ComputeHash256([]byte("shard routing"))
	sig, err := key.SignHash(hash)
	require.NoError(err)
	require.Len(sig, SignatureLen)
	require.LessOrEqual(sig[SignatureLen-1], byte(1))

	pk, err := RecoverPublicKeyFromHash(hash, sig)
	require.NoError(err)
	require.Equal(key.PublicKey().Bytes(), pk.Bytes())
	require.True(key.PublicKey().VerifyHash(hash, sig))

	other := hashing.ComputeHash256([]byte("other"))
	require.False(key.PublicKey().VerifyHash(other, sig))
}

func TestPrivateKeyRoundTrip(t *testing.T) {
	require := require.New(t)

	key, err := PrivateKeyFromHex("0x0101010101010101010101010101010101010101010101010101010101010101")
	require.NoError(err)
	require.Len(key.Bytes(), PrivateKeyLen)
	require.Len(key.PublicKey().Bytes(), PublicKeyLen)
	require.Len(key.PublicKey().UncompressedBytes(), UncompressedPublicKeyLen)
	require.Equal(byte(0x04), key.PublicKey().UncompressedBytes()[0])

	parsed, err := ToPublicKey(key.PublicKey().Bytes())
	require.NoError(err)
	require.Equal(key.PublicKey().UncompressedBytes(), parsed.UncompressedBytes())

	_, err = ToPrivateKey([]byte{1, 2})
	require.ErrorIs(err, errInvalidPrivateKey)

	_, err = PrivateKeyFromHex("zz")
	require.ErrorIs(err, errInvalidPrivateKey)
}

func TestRecoverRejectsBadLength(t *testing.T) {
	_, err := RecoverPublicKeyFromHash(make([]byte, 32), make([]byte, 64))
	require.ErrorIs(t, err, ErrInvalidSig)
}

// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tx

import (
	"errors"
	"fmt"

	"github.com/ava-labs/chainsdk/ids"
	"github.com/ava-labs/chainsdk/utils/crypto/secp256k1"
	"github.com/ava-labs/chainsdk/utils/hashing"
	"github.com/ava-labs/chainsdk/utils/wrappers"
)

var errShortSignedTx = errors.New("signed transaction is too short")

// SigningHash is the digest that gets signed for [serialized] on the chain
// identified by [chainID]:
//
//	sha256(serialized | len(chainID) (4, BE) | chainID)
func SigningHash(serialized []byte, chainID string) []byte {
	p := wrappers.Packer{
		MaxSize: wrappers.IntLen + len(chainID),
	}
	p.PackStr(chainID)
	return hashing.ComputeHash256Buffers(serialized, p.Bytes)
}

// Sign returns the signed payload accepted by the node:
//
//	recovery id (1) | r (32) | s (32) | serialized transaction
func Sign(key *secp256k1.PrivateKey, t *Transaction, chainID string) ([]byte, error) {
	serialized, err := t.Bytes()
	if err != nil {
		return nil, err
	}
	sig, err := key.SignHash(SigningHash(serialized, chainID))
	if err != nil {
		return nil, fmt.Errorf("couldn't sign transaction: %w", err)
	}

	signed := make([]byte, 0, secp256k1.SignatureLen+len(serialized))
	signed = append(signed, sig[secp256k1.SignatureLen-1])
	signed = append(signed, sig[:secp256k1.SignatureLen-1]...)
	return append(signed, serialized...), nil
}

// Recover parses a signed payload and returns the account that signed it.
func Recover(signed []byte, chainID string) (ids.Address, *Transaction, error) {
	if len(signed) < secp256k1.SignatureLen {
		return ids.EmptyAddress, nil, fmt.Errorf("%w: %d bytes", errShortSignedTx, len(signed))
	}
	serialized := signed[secp256k1.SignatureLen:]
	t, err := Parse(serialized)
	if err != nil {
		return ids.EmptyAddress, nil, err
	}

	sig := make([]byte, secp256k1.SignatureLen)
	copy(sig, signed[1:secp256k1.SignatureLen])
	sig[secp256k1.SignatureLen-1] = signed[0]
	pk, err := secp256k1.RecoverPublicKeyFromHash(SigningHash(serialized, chainID), sig)
	if err != nil {
		return ids.EmptyAddress, nil, err
	}
	return Address(pk), t, nil
}

// Address returns the account address controlled by [pk].
func Address(pk *secp256k1.PublicKey) ids.Address {
	return ids.AccountFromPublicKey(pk.UncompressedBytes())
}

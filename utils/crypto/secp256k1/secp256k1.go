// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package secp256k1

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	stdecdsa "crypto/ecdsa"

	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/ava-labs/chainsdk/utils/hashing"
)

const (
	// SignatureLen is the number of bytes in a secp2561k recoverable signature
	SignatureLen = 65

	// PrivateKeyLen is the number of bytes in a secp2561k recoverable private
	// key
	PrivateKeyLen = 32

	// PublicKeyLen is the number of bytes in a compressed secp2561k public key
	PublicKeyLen = 33

	// UncompressedPublicKeyLen is the number of bytes in an uncompressed
	// secp2561k public key
	UncompressedPublicKeyLen = 65

	// from the decred library:
	// compactSigMagicOffset is a value used when creating the compact signature
	// recovery code inherited from Bitcoin and has no meaning, but has been
	// retained for compatibility.  For historical purposes, it was originally
	// picked to avoid a binary representation that would allow compact
	// signatures to be mistaken for other components.
	compactSigMagicOffset = 27
)

var (
	ErrInvalidSig        = errors.New("invalid signature")
	errCompressed        = errors.New("wasn't expecting a compressed key")
	errMutatedSig        = errors.New("signature was mutated from its original format")
	errInvalidPrivateKey = errors.New("invalid private key")
)

func NewPrivateKey() (*PrivateKey, error) {
	k, err := secp256k1.GeneratePrivateKey()
	return &PrivateKey{sk: k}, err
}

func ToPrivateKey(b []byte) (*PrivateKey, error) {
	if len(b) != PrivateKeyLen {
		return nil, fmt.Errorf("%w: expected %d bytes but got %d", errInvalidPrivateKey, PrivateKeyLen, len(b))
	}
	return &PrivateKey{
		sk:    secp256k1.PrivKeyFromBytes(b),
		bytes: b,
	}, nil
}

// PrivateKeyFromHex parses a 32 byte hex private key with an optional 0x
// prefix.
func PrivateKeyFromHex(s string) (*PrivateKey, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidPrivateKey, err)
	}
	return ToPrivateKey(b)
}

func ToPublicKey(b []byte) (*PublicKey, error) {
	key, err := secp256k1.ParsePubKey(b)
	return &PublicKey{
		pk: key,
	}, err
}

// RecoverPublicKeyFromHash returns the public key from a 65 byte signature in
// [r || s || v] format.
func RecoverPublicKeyFromHash(hash, sig []byte) (*PublicKey, error) {
	if err := verifySignatureFormat(sig); err != nil {
		return nil, err
	}

	rawSig, err := sigToRawSig(sig)
	if err != nil {
		return nil, err
	}

	rawPubkey, compressed, err := ecdsa.RecoverCompact(rawSig, hash)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSig, err)
	}

	if compressed {
		return nil, errCompressed
	}
	return &PublicKey{pk: rawPubkey}, nil
}

type PublicKey struct {
	pk *secp256k1.PublicKey
}

// VerifyHash returns true if [sig] over [hash] recovers to this key.
func (k *PublicKey) VerifyHash(hash, sig []byte) bool {
	pk, err := RecoverPublicKeyFromHash(hash, sig)
	if err != nil {
		return false
	}
	return pk.pk.IsEqual(k.pk)
}

// ToECDSA returns the ecdsa representation of this public key
func (k *PublicKey) ToECDSA() *stdecdsa.PublicKey {
	return k.pk.ToECDSA()
}

// Bytes returns the 33 byte compressed encoding
func (k *PublicKey) Bytes() []byte {
	return k.pk.SerializeCompressed()
}

// UncompressedBytes returns the 65 byte 0x04 prefixed encoding
func (k *PublicKey) UncompressedBytes() []byte {
	return k.pk.SerializeUncompressed()
}

type PrivateKey struct {
	sk    *secp256k1.PrivateKey
	pk    *PublicKey
	bytes []byte
}

func (k *PrivateKey) PublicKey() *PublicKey {
	if k.pk == nil {
		k.pk = &PublicKey{pk: k.sk.PubKey()}
	}
	return k.pk
}

// Sign hashes [msg] with sha256 and signs the digest
func (k *PrivateKey) Sign(msg []byte) ([]byte, error) {
	return k.SignHash(hashing.ComputeHash256(msg))
}

// SignHash returns a recoverable signature in [r || s || v] format, where v is
// the recovery id (0 or 1).
func (k *PrivateKey) SignHash(hash []byte) ([]byte, error) {
	sig := ecdsa.SignCompact(k.sk, hash, false) // returns [v || r || s]
	return rawSigToSig(sig)
}

// ToECDSA returns the ecdsa representation of this private key
func (k *PrivateKey) ToECDSA() *stdecdsa.PrivateKey {
	return k.sk.ToECDSA()
}

func (k *PrivateKey) Bytes() []byte {
	if k.bytes == nil {
		k.bytes = k.sk.Serialize()
	}
	return k.bytes
}

// raw sig has format [v || r || s] whereas the sig has format [r || s || v]
func rawSigToSig(sig []byte) ([]byte, error) {
	if len(sig) != SignatureLen {
		return nil, ErrInvalidSig
	}
	recCode := sig[0]
	copy(sig, sig[1:])
	sig[SignatureLen-1] = recCode - compactSigMagicOffset
	return sig, nil
}

// sig has format [r || s || v] whereas the raw sig has format [v || r || s]
func sigToRawSig(sig []byte) ([]byte, error) {
	if len(sig) != SignatureLen {
		return nil, ErrInvalidSig
	}
	newSig := make([]byte, SignatureLen)
	newSig[0] = sig[SignatureLen-1] + compactSigMagicOffset
	copy(newSig[1:], sig)
	return newSig, nil
}

// verifies the signature format in format [r || s || v]
func verifySignatureFormat(sig []byte) error {
	if len(sig) != SignatureLen {
		return ErrInvalidSig
	}

	var s secp256k1.ModNScalar
	s.SetByteSlice(sig[32:64])
	if s.IsOverHalfOrder() {
		return errMutatedSig
	}
	return nil
}

// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wrappers

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPackerLayoutIsBigEndian(t *testing.T) {
	require := require.New(t)

	p := Packer{MaxSize: math.MaxInt32}
	p.PackLong(5)
	p.PackInt(0x01020304)
	p.PackByte(0xff)
	p.PackBytes([]byte{0xaa, 0xbb})
	require.False(p.Errored())

	require.Equal([]byte{
		0, 0, 0, 0, 0, 0, 0, 5,
		1, 2, 3, 4,
		0xff,
		0, 0, 0, 2, 0xaa, 0xbb,
	}, p.Bytes)

	u := Packer{Bytes: p.Bytes}
	require.Equal(uint64(5), u.UnpackLong())
	require.Equal(uint32(0x01020304), u.UnpackInt())
	require.Equal(byte(0xff), u.UnpackByte())
	require.Equal([]byte{0xaa, 0xbb}, u.UnpackBytes())
	require.Zero(u.Remaining())
	require.False(u.Errored())
}

func TestPackerMaxSize(t *testing.T) {
	require := require.New(t)

	p := Packer{MaxSize: 4}
	p.PackLong(1)
	require.True(p.Errored())
	require.ErrorIs(p.Err(), ErrInsufficientLength)
}

func TestUnpackerInsufficientLength(t *testing.T) {
	require := require.New(t)

	p := Packer{Bytes: []byte{0, 0, 0, 9, 1}}
	require.Nil(p.UnpackBytes())
	require.ErrorIs(p.First(), ErrInsufficientLength)
}

func TestPackerBool(t *testing.T) {
	require := require.New(t)

	p := Packer{MaxSize: 2}
	p.PackBool(true)
	p.PackBool(false)
	require.Equal([]byte{1, 0}, p.Bytes)

	u := Packer{Bytes: []byte{2}}
	require.False(u.UnpackBool())
	require.ErrorIs(u.Err(), errBadBool)
}

func TestErrsJoin(t *testing.T) {
	require := require.New(t)

	errA := errors.New("a")
	errB := errors.New("b")

	var errs Errs
	require.NoError(errs.Err())
	errs.Add(nil, errA, nil, errB)
	require.True(errs.Errored())
	require.ErrorIs(errs.Err(), errA)
	require.ErrorIs(errs.Err(), errB)
	require.Equal(errA, errs.First())
}

// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contract

import (
	"errors"
	"fmt"
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/ava-labs/chainsdk/utils/numeric"
)

var (
	errOverflow       = errors.New("value overflows argument type")
	errInvalidAddress = errors.New("invalid address")
	errWrongLength    = errors.New("wrong length")
	errNotList        = errors.New("expected a list")

	bigIntType = reflect.TypeOf((*big.Int)(nil))
)

// convert turns a caller supplied value into the Go type the ABI encoder
// expects for [t]. Numbers of any type accepted by numeric.Wrap are
// converted to their integer wire form.
func convert(t abi.Type, v any) (any, error) {
	switch t.T {
	case abi.IntTy, abi.UintTy:
		return convertInteger(t, v)
	case abi.AddressTy:
		return convertAddress(v)
	case abi.FixedBytesTy:
		b, err := toBytes(v)
		if err != nil {
			return nil, err
		}
		if len(b) != t.Size {
			return nil, fmt.Errorf("%w: got %d bytes, expected %d", errWrongLength, len(b), t.Size)
		}
		array := reflect.New(t.GetType()).Elem()
		reflect.Copy(array, reflect.ValueOf(b))
		return array.Interface(), nil
	case abi.BytesTy:
		return toBytes(v)
	case abi.SliceTy, abi.ArrayTy:
		return convertList(t, v)
	default:
		return v, nil
	}
}

func convertInteger(t abi.Type, v any) (any, error) {
	d, err := numeric.Wrap(v)
	if err != nil {
		return nil, err
	}
	i, err := numeric.ToBigInt(d)
	if err != nil {
		return nil, err
	}
	if t.T == abi.UintTy && i.Sign() < 0 {
		return nil, fmt.Errorf("%w: %s", numeric.ErrNegative, i)
	}
	if t.GetType() == bigIntType {
		return i, nil
	}

	target := reflect.New(t.GetType()).Elem()
	switch t.T {
	case abi.IntTy:
		if !i.IsInt64() || target.OverflowInt(i.Int64()) {
			return nil, fmt.Errorf("%w: %s into %s", errOverflow, i, t)
		}
		target.SetInt(i.Int64())
	default:
		if !i.IsUint64() || target.OverflowUint(i.Uint64()) {
			return nil, fmt.Errorf("%w: %s into %s", errOverflow, i, t)
		}
		target.SetUint(i.Uint64())
	}
	return target.Interface(), nil
}

func convertAddress(v any) (common.Address, error) {
	switch v := v.(type) {
	case common.Address:
		return v, nil
	case *common.Address:
		if v == nil {
			return common.Address{}, errInvalidAddress
		}
		return *v, nil
	case string:
		if !common.IsHexAddress(v) {
			return common.Address{}, fmt.Errorf("%w: %q", errInvalidAddress, v)
		}
		return common.HexToAddress(v), nil
	default:
		return common.Address{}, fmt.Errorf("%w: %T", errInvalidAddress, v)
	}
}

func toBytes(v any) ([]byte, error) {
	switch v := v.(type) {
	case []byte:
		return v, nil
	case hexutil.Bytes:
		return v, nil
	case common.Hash:
		return v.Bytes(), nil
	case string:
		return hexutil.Decode(v)
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Array && rv.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(b), rv)
			return b, nil
		}
		return nil, fmt.Errorf("unsupported bytes value %T", v)
	}
}

func convertList(t abi.Type, v any) (any, error) {
	if v == nil {
		return nil, fmt.Errorf("%w for %s, got nil", errNotList, t)
	}
	rv := reflect.ValueOf(v)
	if rv.Type() == t.GetType() {
		return v, nil
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w for %s, got %T", errNotList, t, v)
	}

	n := rv.Len()
	var list reflect.Value
	switch t.T {
	case abi.ArrayTy:
		if n != t.Size {
			return nil, fmt.Errorf("%w: got %d elements, expected %d", errWrongLength, n, t.Size)
		}
		list = reflect.New(t.GetType()).Elem()
	default:
		list = reflect.MakeSlice(t.GetType(), n, n)
	}
	for i := 0; i < n; i++ {
		elem, err := convert(*t.Elem, rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		elemValue := reflect.ValueOf(elem)
		if !elemValue.IsValid() || !elemValue.Type().AssignableTo(list.Type().Elem()) {
			return nil, fmt.Errorf("element %d: %T is not a %s", i, elem, t.Elem)
		}
		list.Index(i).Set(elemValue)
	}
	return list.Interface(), nil
}

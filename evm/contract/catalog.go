// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package contract builds typed accessors for the functions of an ABI.
package contract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/ava-labs/chainsdk/cache/lru"
)

const catalogCacheSize = 128

var (
	ErrUnknownFunction = errors.New("unknown function")
	ErrMissingArgument = errors.New("missing argument")

	errMalformedABI = errors.New("malformed ABI")

	catalogs = lru.NewCache[common.Hash, *Catalog](catalogCacheSize)
)

// Args are the named arguments of a call. Inputs without a name are looked
// up by their position, formatted in base 10.
type Args map[string]any

// Catalog is the set of accessors derived from one ABI. It is immutable once
// parsed.
type Catalog struct {
	Views   map[string]*View
	Methods map[string]*Method

	// order lists the accessor names in declaration order.
	order []string
}

type abiEntry struct {
	Type            string `json:"type"`
	Name            string `json:"name"`
	StateMutability string `json:"stateMutability"`
	Constant        bool   `json:"constant"`
}

// Parse returns the catalog of [abiJSON]. Catalogs are cached by the hash of
// their source.
func Parse(abiJSON []byte) (*Catalog, error) {
	key := crypto.Keccak256Hash(abiJSON)
	return catalogs.GetOrPut(key, func() (*Catalog, error) {
		return parse(abiJSON)
	})
}

func parse(abiJSON []byte) (*Catalog, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(abiJSON, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", errMalformedABI, err)
	}

	c := &Catalog{
		Views:   make(map[string]*View),
		Methods: make(map[string]*Method),
	}
	occurrences := make(map[string]int)
	for i, entryJSON := range raw {
		var entry abiEntry
		if err := json.Unmarshal(entryJSON, &entry); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", errMalformedABI, i, err)
		}
		if entry.Type != "" && entry.Type != "function" {
			continue
		}

		// Each entry is parsed on its own so that overloads keep their
		// declaration order.
		single := bytes.Join([][]byte{[]byte("["), entryJSON, []byte("]")}, nil)
		parsed, err := abi.JSON(bytes.NewReader(single))
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d (%s): %w", errMalformedABI, i, entry.Name, err)
		}
		method, ok := parsed.Methods[entry.Name]
		if !ok {
			return nil, fmt.Errorf("%w: entry %d (%s) is not a function", errMalformedABI, i, entry.Name)
		}

		name := c.uniqueName(entry.Name, occurrences)
		f := function{
			name:   name,
			method: method,
			keys:   inputKeys(method.Inputs),
		}
		if readOnly(entry) {
			c.Views[name] = &View{function: f}
		} else {
			c.Methods[name] = &Method{function: f}
		}
		c.order = append(c.order, name)
	}
	return c, nil
}

// uniqueName returns [raw] for its first occurrence and raw_k for the k-th
// repeated occurrence. Names are unique across views and methods.
func (c *Catalog) uniqueName(raw string, occurrences map[string]int) string {
	k := occurrences[raw]
	occurrences[raw]++

	name := raw
	if k > 0 {
		name = raw + "_" + strconv.Itoa(k)
	}
	for c.has(name) {
		k++
		name = raw + "_" + strconv.Itoa(k)
	}
	return name
}

func (c *Catalog) has(name string) bool {
	_, isView := c.Views[name]
	_, isMethod := c.Methods[name]
	return isView || isMethod
}

func readOnly(entry abiEntry) bool {
	switch entry.StateMutability {
	case "view", "pure":
		return true
	case "":
		return entry.Constant
	default:
		return false
	}
}

func inputKeys(inputs abi.Arguments) []string {
	keys := make([]string, len(inputs))
	for i, input := range inputs {
		if input.Name == "" {
			keys[i] = strconv.Itoa(i)
		} else {
			keys[i] = input.Name
		}
	}
	return keys
}

// Names returns every accessor name in declaration order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}

func (c *Catalog) View(name string) (*View, error) {
	v, ok := c.Views[name]
	if !ok {
		return nil, fmt.Errorf("%w: view %q", ErrUnknownFunction, name)
	}
	return v, nil
}

func (c *Catalog) Method(name string) (*Method, error) {
	m, ok := c.Methods[name]
	if !ok {
		return nil, fmt.Errorf("%w: method %q", ErrUnknownFunction, name)
	}
	return m, nil
}

// function is the shared descriptor of views and methods.
type function struct {
	name   string
	method abi.Method
	keys   []string
}

func (f *function) Name() string {
	return f.name
}

// Signature returns the canonical signature, such as transfer(address,uint256).
func (f *function) Signature() string {
	return f.method.Sig
}

// Inputs returns the argument keys in positional order.
func (f *function) Inputs() []string {
	keys := make([]string, len(f.keys))
	copy(keys, f.keys)
	return keys
}

// Pack encodes the call of the function with [args].
func (f *function) Pack(args Args) ([]byte, error) {
	positional := make([]interface{}, len(f.keys))
	for i, key := range f.keys {
		v, ok := args[key]
		if !ok {
			return nil, fmt.Errorf("%w: %s of %s", ErrMissingArgument, key, f.method.Sig)
		}
		converted, err := convert(f.method.Inputs[i].Type, v)
		if err != nil {
			return nil, fmt.Errorf("argument %s of %s: %w", key, f.method.Sig, err)
		}
		positional[i] = converted
	}
	input, err := f.method.Inputs.Pack(positional...)
	if err != nil {
		return nil, fmt.Errorf("couldn't pack %s: %w", f.method.Sig, err)
	}
	return append(append([]byte{}, f.method.ID...), input...), nil
}

// Unpack decodes the return data of the function.
func (f *function) Unpack(data []byte) ([]interface{}, error) {
	return f.method.Outputs.Unpack(data)
}

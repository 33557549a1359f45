// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pbc

import (
	"context"
	"fmt"

	"github.com/ava-labs/chainsdk/ids"
	"github.com/ava-labs/chainsdk/pbc/client"
	"github.com/ava-labs/chainsdk/pbc/state"
)

// ContractState is the decoded state of a contract at the time it was read.
type ContractState struct {
	Address ids.Address
	Type    client.ContractType
	Raw     []byte
	Value   any

	schema  *state.TypeSpec
	service *Service
}

// Struct returns the state as a struct, if the schema describes one.
func (s *ContractState) Struct() (*state.StructValue, bool) {
	v, ok := s.Value.(*state.StructValue)
	return v, ok
}

// Field returns the top level field [name] of a struct state.
func (s *ContractState) Field(name string) (any, error) {
	v, ok := s.Struct()
	if !ok {
		return nil, fmt.Errorf("%w: state of %s is a %s", errUnknownField, s.Address, s.schema)
	}
	value, ok := v.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", errUnknownField, s.schema, name)
	}
	return value, nil
}

// Tree returns a reader of the AVL tree stored in the top level field
// [name]. Trees are read live, not from the snapshot.
func (s *ContractState) Tree(name string) (*state.AvlReader, error) {
	value, err := s.Field(name)
	if err != nil {
		return nil, err
	}
	id, ok := value.(state.AvlTreeID)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", errNotTree, s.schema, name)
	}
	for _, f := range s.schema.Named.Fields {
		if f.Name == name {
			return state.NewAvlReader(s.service.log, s.service.client, s.Address, id, f.Type)
		}
	}
	return nil, fmt.Errorf("%w: %s.%s", errUnknownField, s.schema, name)
}

// View reads a value out of the state of the contract at Address.
type View struct {
	Address ids.Address
	Schema  *state.TypeSpec
	// Read extracts the result. If nil, the decoded state is returned.
	Read func(ctx context.Context, s *ContractState) (any, error)
}

func (v View) run(ctx context.Context, s *ContractState) (any, error) {
	if v.Read == nil {
		return s.Value, nil
	}
	return v.Read(ctx, s)
}

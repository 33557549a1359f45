// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package finality

import (
	"context"
	"fmt"
)

// Verify reads an already finalized transaction tree once more, one entry at
// a time and depth first, and reports the first entry that is missing or
// that failed.
func (t *Tracker) Verify(ctx context.Context, root Pointer) error {
	w := &walk{
		tracker: t,
		root:    root,
	}
	stack := []node{{pointer: root}}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if err := w.visit(n); err != nil {
			return err
		}

		resp, err := t.client.GetExecutedTransaction(ctx, n.pointer.Shard, n.pointer.Identifier, true)
		if err != nil {
			return fmt.Errorf("couldn't fetch %s: %w", n.pointer, err)
		}
		if !resp.OK() {
			if n.depth == 0 {
				return fmt.Errorf("%w: %s", ErrTransactionNotFound, n.pointer.Identifier)
			}
			return fmt.Errorf("%w: %s", ErrEventNotFound, n.pointer.Identifier)
		}
		if !resp.Data.ExecutionSucceeded {
			return newFailedError(n.pointer, resp.Data)
		}
		stack = push(stack, n.children(resp.Data.Events))
	}
	return nil
}

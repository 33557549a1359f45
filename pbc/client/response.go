// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import "net/http"

// Response is the envelope returned by every node read. A non-2xx status is
// reported here rather than as an error, and Data is nil whenever the node
// did not return a decodable body.
type Response[T any] struct {
	StatusCode int
	Data       *T
}

// OK returns true if the node answered with 200 and a body.
func (r Response[T]) OK() bool {
	return r.StatusCode == http.StatusOK && r.Data != nil
}

// NotFound returns true if the node reported that the resource does not
// exist (yet).
func (r Response[T]) NotFound() bool {
	return r.StatusCode == http.StatusNotFound
}

// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lru

import (
	"strconv"
	"testing"

	"github.com/ava-labs/chainsdk/ids"
)

func BenchmarkCacheGetOrPut(b *testing.B) {
	sizes := []int{16, 1024}
	for _, size := range sizes {
		b.Run(strconv.Itoa(size), func(b *testing.B) {
			cache := NewCache[ids.Address, int](size)
			keys := make([]ids.Address, 2*size)
			for i := range keys {
				keys[i][20] = byte(i)
				keys[i][19] = byte(i >> 8)
			}

			b.ResetTimer()
			for n := 0; n < b.N; n++ {
				key := keys[n%len(keys)]
				_, _ = cache.GetOrPut(key, func() (int, error) {
					return n, nil
				})
			}
		})
	}
}

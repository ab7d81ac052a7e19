// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import "sync/atomic"

// boundedAllocator caps the total number of bytes the daemon will hand
// out to the core, the Go analogue of the source's fixed heap arena
// (spec.md §2 rationale: memory use is explicitly bounded, not left to an
// unconstrained allocator). coap.Allocator has no free call, so the count
// only ever grows: Go's GC reclaims the memory once the last reference is
// dropped, but those bytes stay charged against budget for the lifetime
// of the allocator.
type boundedAllocator struct {
	budget    int64
	allocated atomic.Int64
}

// newBoundedAllocator returns an Allocator that refuses any request that
// would take the total bytes granted so far past budget. budget <= 0
// means unlimited.
func newBoundedAllocator(budget int64) *boundedAllocator {
	return &boundedAllocator{budget: budget}
}

// Alloc implements coap.Allocator.
func (a *boundedAllocator) Alloc(n int) ([]byte, bool) {
	if a.budget <= 0 {
		return make([]byte, n), true
	}
	if a.allocated.Add(int64(n)) > a.budget {
		a.allocated.Add(-int64(n))
		return nil, false
	}
	return make([]byte, n), true
}

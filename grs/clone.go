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

package grs

import "github.com/nsdl-go/grs/coap"

// normalizePath trims a single leading '/' and a single trailing '/' from
// path, matching spec.md §4.1. It does not allocate: Go string slicing is
// the idiomatic equivalent of the source's non-owning view into the same
// buffer. Only one byte at each end is trimmed; zero-length and
// single-character inputs pass through, possibly yielding an empty string.
func normalizePath(path string) string {
	if len(path) > 0 && path[0] == '/' {
		path = path[1:]
	}
	if len(path) > 0 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	return path
}

// cloneResource deep-copies desc into a store-owned record. Every byte
// reachable from the result is independent of desc (spec.md §3 invariant
//2, Testable Property 3): desc remains owned by the caller and the store
// never aliases it.
//
// allocator is honored for the path and payload copies so a budget-limited
// Allocator (Config.MaxResources in spirit, or a bounded-arena Allocator in
// tests) can exercise the OOM path; on a hosted Go runtime backed by
// make([]byte, n) this never fails.
func cloneResource(desc Resource, normalize bool, alloc coap.Allocator) (*storedResource, error) {
	path := desc.Path
	if normalize {
		path = normalizePath(path)
	}

	pathBuf, ok := alloc.Alloc(len(path))
	if !ok {
		return nil, errOOM
	}
	copy(pathBuf, path)

	out := &storedResource{
		path:       string(pathBuf),
		mode:       desc.Mode,
		accessMask: desc.AccessMask,
		handler:    desc.Handler,
	}

	if len(desc.Payload) > 0 {
		payloadBuf, ok := alloc.Alloc(len(desc.Payload))
		if !ok {
			return nil, errOOM
		}
		copy(payloadBuf, desc.Payload)
		out.payload = payloadBuf
	}

	if desc.Params != nil {
		p := *desc.Params
		out.params = &p
	}

	return out, nil
}

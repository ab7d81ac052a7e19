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

// store is an ordered collection of resources, the Go analogue of the
// source's NS_LIST_DEFINE linked list. Lookups are a linear scan: the
// target deployment holds tens of resources at most, and a hash table
// costs more code and memory than it saves (spec.md §4.2).
type store struct {
	resources []*storedResource
}

// insert appends r at the head of the collection, matching the source's
// insertion order for both explicit Create and dispatcher auto-create
// (spec.md §4.5 Step 4c: "insert at the head of the list").
func (s *store) insert(r *storedResource) {
	s.resources = append([]*storedResource{r}, s.resources...)
}

// findExact returns the resource whose path is byte-equal to path, or nil.
func (s *store) findExact(path string) *storedResource {
	for _, r := range s.resources {
		if r.path == path {
			return r
		}
	}
	return nil
}

// findSubresource returns any resource whose path begins with path
// followed immediately by a '/', used only for cascading deletion. Tie
// break among multiple matches is the first one found, since callers loop
// until no match remains (spec.md §4.2).
func (s *store) findSubresource(path string) *storedResource {
	prefix := path + "/"
	for _, r := range s.resources {
		if len(r.path) >= len(prefix) && r.path[:len(prefix)] == prefix {
			return r
		}
	}
	return nil
}

// remove unlinks r from the collection. It is a no-op if r is not present.
func (s *store) remove(r *storedResource) {
	for i, candidate := range s.resources {
		if candidate == r {
			s.resources = append(s.resources[:i], s.resources[i+1:]...)
			return
		}
	}
}

// enumerate returns the current resources in insertion (head-first) order.
// The returned slice aliases the store's internal slice and must not be
// retained across a mutating call.
func (s *store) enumerate() []*storedResource {
	return s.resources
}

// len reports the number of resources currently held, mirroring the
// source's resource_root_count invariant check (Testable Property 1).
func (s *store) len() int {
	return len(s.resources)
}

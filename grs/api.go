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

import grserrors "github.com/nsdl-go/grs/errors"

// Create clones desc into the store. It fails with ErrInvalidPath if the
// normalized path is empty, or ErrExists if a resource with the same
// normalized path is already present (spec.md §4.4).
//
// On success, desc.Params.Registered is set to NotRegistered as a side
// effect on the caller's own descriptor, preserved from the source
// (spec.md §4.4: "marks params.registered = NOT_REGISTERED on the caller
// descriptor").
func (c *Context) Create(desc Resource) error {
	path := normalizePath(desc.Path)
	if path == "" {
		return grserrors.ErrInvalidPath
	}
	if c.store.findExact(path) != nil {
		return grserrors.ErrExists
	}
	if c.cfg.MaxResources > 0 && c.store.len() >= c.cfg.MaxResources {
		return grserrors.ErrOOM
	}

	desc.Path = path
	stored, err := cloneResource(desc, false, c.alloc)
	if err != nil {
		return err
	}

	if desc.Params != nil {
		desc.Params.Registered = NotRegistered
	}

	c.store.insert(stored)
	return nil
}

// Update replaces the payload, access mask, and handler of the resource at
// desc.Path, found by exact normalized match. It returns ErrNotFound if no
// resource matches.
//
// Update does not replace Params (spec.md §9 quirk 2, a known gap carried
// over from the source, not silently fixed here). If the new payload
// allocation fails, the resource is left with an empty payload rather than
// rolled back to its pre-update bytes (spec.md §9 quirk 3); callers that
// need atomicity should retry with Create+Delete instead.
func (c *Context) Update(desc Resource) error {
	path := normalizePath(desc.Path)
	r := c.store.findExact(path)
	if r == nil {
		return grserrors.ErrNotFound
	}

	r.payload = nil
	if len(desc.Payload) > 0 {
		buf, ok := c.alloc.Alloc(len(desc.Payload))
		if !ok {
			return grserrors.ErrOOM
		}
		copy(buf, desc.Payload)
		r.payload = buf
	}

	r.accessMask = desc.AccessMask
	r.handler = desc.Handler
	return nil
}

// Delete removes the resource at the exact normalized path, then
// repeatedly removes any sub-resource (a resource whose path begins with
// path followed by '/') until none remain, cascading per spec.md §4.4.
// It returns ErrNotFound if no resource matches the exact path.
func (c *Context) Delete(path string) error {
	path = normalizePath(path)
	r := c.store.findExact(path)
	if r == nil {
		return grserrors.ErrNotFound
	}
	c.store.remove(r)

	for {
		sub := c.store.findSubresource(path)
		if sub == nil {
			break
		}
		c.store.remove(sub)
	}
	return nil
}

// List returns an independent snapshot of every path currently in the
// store, in enumeration order. Each Listing is an owned copy; mutating the
// returned slice or its elements never affects the store.
func (c *Context) List() []Listing {
	resources := c.store.enumerate()
	out := make([]Listing, len(resources))
	for i, r := range resources {
		out[i] = Listing{Path: r.path}
	}
	return out
}

// Iterate calls fn once for each resource currently in the store, in
// enumeration order, stopping early if fn returns false. It replaces the
// source's get_first/get_next cursor (a single piece of process-wide
// state) with a restartable iteration that never retains state between
// calls (spec.md §9: "do not preserve the module-level cursor except for
// backward compatibility").
func (c *Context) Iterate(fn func(Listing) bool) {
	for _, r := range c.store.enumerate() {
		if !fn(Listing{Path: r.path}) {
			return
		}
	}
}

// Len reports the number of resources currently held, mirroring the
// source's resource_root_count invariant check (Testable Property 1).
func (c *Context) Len() int {
	return c.store.len()
}

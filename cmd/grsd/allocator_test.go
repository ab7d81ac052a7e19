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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundedAllocator_Unlimited(t *testing.T) {
	a := newBoundedAllocator(0)
	buf, ok := a.Alloc(1 << 20)
	assert.True(t, ok)
	assert.Len(t, buf, 1<<20)
}

func TestBoundedAllocator_RefusesOverBudget(t *testing.T) {
	a := newBoundedAllocator(16)

	buf, ok := a.Alloc(10)
	assert.True(t, ok)
	assert.Len(t, buf, 10)

	_, ok = a.Alloc(10)
	assert.False(t, ok, "second allocation should exceed the 16 byte budget")

	_, ok = a.Alloc(6)
	assert.True(t, ok, "exactly filling the remaining budget should succeed")
}

func TestBoundedAllocator_RollsBackRefusedRequest(t *testing.T) {
	a := newBoundedAllocator(10)

	_, ok := a.Alloc(20)
	assert.False(t, ok)

	buf, ok := a.Alloc(10)
	assert.True(t, ok, "a refused request must not permanently consume budget")
	assert.Len(t, buf, 10)
}

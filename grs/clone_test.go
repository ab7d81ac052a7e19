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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	grserrors "github.com/nsdl-go/grs/errors"
)

type boundedAllocator struct {
	remaining int
}

func (a *boundedAllocator) Alloc(n int) ([]byte, bool) {
	if a.remaining <= 0 {
		return nil, false
	}
	a.remaining--
	return make([]byte, n), true
}

func TestNormalizePath(t *testing.T) {
	cases := map[string]string{
		"":        "",
		"/":       "",
		"a":       "a",
		"/a":      "a",
		"a/":      "a",
		"/a/":     "a",
		"a/b":     "a/b",
		"/a/b/":   "a/b",
		"//a/b//": "/a/b/",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizePath(in), "normalizePath(%q)", in)
	}
}

func TestCloneResource_CopiesPathAndPayload(t *testing.T) {
	path := []byte("sensors/temp")
	payload := []byte("21.5")
	desc := Resource{Path: string(path), Payload: payload}

	out, err := cloneResource(desc, false, &boundedAllocator{remaining: 2})
	require.NoError(t, err)
	assert.Equal(t, "sensors/temp", out.path)
	assert.Equal(t, []byte("21.5"), out.payload)

	payload[0] = 'X'
	assert.Equal(t, byte('2'), out.payload[0])
}

func TestCloneResource_NormalizesWhenRequested(t *testing.T) {
	out, err := cloneResource(Resource{Path: "/a/b/"}, true, &boundedAllocator{remaining: 1})
	require.NoError(t, err)
	assert.Equal(t, "a/b", out.path)
}

func TestCloneResource_PathAllocFails(t *testing.T) {
	_, err := cloneResource(Resource{Path: "a"}, false, &boundedAllocator{remaining: 0})
	assert.ErrorIs(t, err, grserrors.ErrOOM)
}

func TestCloneResource_PayloadAllocFails(t *testing.T) {
	_, err := cloneResource(Resource{Path: "a", Payload: []byte("x")}, false, &boundedAllocator{remaining: 1})
	assert.ErrorIs(t, err, grserrors.ErrOOM)
}

func TestCloneResource_CopiesParams(t *testing.T) {
	params := &Params{ResourceType: "temp"}
	out, err := cloneResource(Resource{Path: "a", Params: params}, false, &boundedAllocator{remaining: 1})
	require.NoError(t, err)
	require.NotNil(t, out.params)
	assert.Equal(t, "temp", out.params.ResourceType)

	params.ResourceType = "mutated"
	assert.Equal(t, "temp", out.params.ResourceType)
}

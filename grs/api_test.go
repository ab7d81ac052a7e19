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

package grs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nsdl-go/grs/coap"
	grserrors "github.com/nsdl-go/grs/errors"
	"github.com/nsdl-go/grs/grs"
)

func newTestContext(t *testing.T) *grs.Context {
	t.Helper()
	ctx, err := grs.New(&fakeCodec{}, &fakeTransport{}, &fakeAllocator{})
	require.NoError(t, err)
	return ctx
}

func TestCreate_InvalidPath(t *testing.T) {
	ctx := newTestContext(t)
	err := ctx.Create(grs.Resource{Path: "", Mode: grs.Static})
	assert.ErrorIs(t, err, grserrors.ErrInvalidPath)
}

func TestCreate_Exists(t *testing.T) {
	ctx := newTestContext(t)
	require.NoError(t, ctx.Create(grs.Resource{Path: "a/b", Mode: grs.Static}))
	err := ctx.Create(grs.Resource{Path: "a/b", Mode: grs.Static})
	assert.ErrorIs(t, err, grserrors.ErrExists)
}

func TestCreate_ThenFindExact(t *testing.T) {
	ctx := newTestContext(t)
	require.NoError(t, ctx.Create(grs.Resource{
		Path:       "sensors/temp",
		Mode:       grs.Static,
		AccessMask: grs.AccessGet,
		Payload:    []byte("21.5"),
	}))

	listings := ctx.List()
	require.Len(t, listings, 1)
	assert.Equal(t, "sensors/temp", listings[0].Path)
}

func TestCreate_NormalizesPath(t *testing.T) {
	ctx := newTestContext(t)
	require.NoError(t, ctx.Create(grs.Resource{Path: "/a/b/", Mode: grs.Static}))

	listings := ctx.List()
	require.Len(t, listings, 1)
	assert.Equal(t, "a/b", listings[0].Path)
}

func TestCreate_DescriptorNotAliased(t *testing.T) {
	codec := &recordingCodec{}
	ctx, err := grs.New(codec, &fakeTransport{}, &fakeAllocator{})
	require.NoError(t, err)

	payload := []byte("original")
	require.NoError(t, ctx.Create(grs.Resource{Path: "a", Mode: grs.Static, AccessMask: grs.AccessGet, Payload: payload}))

	payload[0] = 'X'

	req := &coap.Header{Type: coap.Confirmable, Code: coap.GET, URIPath: "a"}
	require.NoError(t, ctx.Dispatch(req, newTestAddr()))

	require.Len(t, codec.built, 1)
	assert.Equal(t, []byte("original"), codec.built[0].Payload)
}

func TestUpdate_NotFound(t *testing.T) {
	ctx := newTestContext(t)
	err := ctx.Update(grs.Resource{Path: "missing", Payload: []byte("x")})
	assert.ErrorIs(t, err, grserrors.ErrNotFound)
}

func TestUpdate_ReplacesPayload(t *testing.T) {
	codec := &recordingCodec{}
	ctx, err := grs.New(codec, &fakeTransport{}, &fakeAllocator{})
	require.NoError(t, err)
	require.NoError(t, ctx.Create(grs.Resource{Path: "a", Mode: grs.Static, AccessMask: grs.AccessGet, Payload: []byte("old")}))
	require.NoError(t, ctx.Update(grs.Resource{Path: "a", AccessMask: grs.AccessGet, Payload: []byte("new")}))

	req := &coap.Header{Type: coap.Confirmable, Code: coap.GET, URIPath: "a", MessageID: 7}
	require.NoError(t, ctx.Dispatch(req, newTestAddr()))

	require.Len(t, codec.built, 1)
	assert.Equal(t, []byte("new"), codec.built[0].Payload)
}

func TestDelete_Cascades(t *testing.T) {
	ctx := newTestContext(t)
	for _, p := range []string{"a/b", "a/b/1", "a/b/2", "a/c"} {
		require.NoError(t, ctx.Create(grs.Resource{Path: p, Mode: grs.Static, AccessMask: grs.AccessGet | grs.AccessDelete}))
	}

	require.NoError(t, ctx.Delete("a/b"))

	var remaining []string
	ctx.Iterate(func(l grs.Listing) bool {
		remaining = append(remaining, l.Path)
		return true
	})
	assert.ElementsMatch(t, []string{"a/c"}, remaining)
}

func TestDelete_NotFound(t *testing.T) {
	ctx := newTestContext(t)
	err := ctx.Delete("missing")
	assert.ErrorIs(t, err, grserrors.ErrNotFound)
}

func TestList_IndependentCopies(t *testing.T) {
	ctx := newTestContext(t)
	require.NoError(t, ctx.Create(grs.Resource{Path: "a", Mode: grs.Static}))

	listings := ctx.List()
	listings[0].Path = "mutated"

	fresh := ctx.List()
	assert.Equal(t, "a", fresh[0].Path)
}

func TestLen_MatchesResourceCount(t *testing.T) {
	ctx := newTestContext(t)
	assert.Equal(t, 0, ctx.Len())

	require.NoError(t, ctx.Create(grs.Resource{Path: "a", Mode: grs.Static}))
	require.NoError(t, ctx.Create(grs.Resource{Path: "b", Mode: grs.Static}))
	assert.Equal(t, 2, ctx.Len())

	require.NoError(t, ctx.Delete("a"))
	assert.Equal(t, 1, ctx.Len())
}

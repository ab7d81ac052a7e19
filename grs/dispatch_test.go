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
	"github.com/nsdl-go/grs/grs"
)

// scenario 1: static GET returns the stored payload as 2.05 CONTENT.
func TestDispatch_StaticGETReturnsContent(t *testing.T) {
	transport := &fakeTransport{}
	ctx, err := grs.New(&fakeCodec{}, transport, &fakeAllocator{})
	require.NoError(t, err)
	require.NoError(t, ctx.Create(grs.Resource{
		Path:       "sensors/temp",
		Mode:       grs.Static,
		AccessMask: grs.AccessGet,
		Payload:    []byte("21.5"),
	}))

	req := &coap.Header{Type: coap.Confirmable, Code: coap.GET, URIPath: "sensors/temp", MessageID: 1}
	require.NoError(t, ctx.Dispatch(req, newTestAddr()))

	require.Len(t, transport.sent, 1)
	assert.Equal(t, []byte("21.5"), transport.sent[0].buf)
}

// scenario 2: DELETE on a resource whose access mask forbids it yields
// 4.05 METHOD_NOT_ALLOWED and leaves the resource in place.
func TestDispatch_StaticDeleteDenied(t *testing.T) {
	transport := &fakeTransport{}
	codec := &recordingCodec{}
	ctx, err := grs.New(codec, transport, &fakeAllocator{})
	require.NoError(t, err)
	require.NoError(t, ctx.Create(grs.Resource{
		Path:       "sensors/temp",
		Mode:       grs.Static,
		AccessMask: grs.AccessGet,
	}))

	req := &coap.Header{Type: coap.Confirmable, Code: coap.DELETE, URIPath: "sensors/temp", MessageID: 2}
	require.NoError(t, ctx.Dispatch(req, newTestAddr()))

	require.Len(t, codec.built, 1)
	assert.Equal(t, coap.MethodNotAllowed, codec.built[0].Code)
	assert.Equal(t, 1, ctx.Len())
}

// scenario 3: deleting a parent cascades to every sub-resource, leaving
// only a sibling path behind.
func TestDispatch_DeleteCascades(t *testing.T) {
	transport := &fakeTransport{}
	codec := &recordingCodec{}
	ctx, err := grs.New(codec, transport, &fakeAllocator{})
	require.NoError(t, err)
	for _, p := range []string{"a/b", "a/b/1", "a/b/2", "a/c"} {
		require.NoError(t, ctx.Create(grs.Resource{Path: p, Mode: grs.Static, AccessMask: grs.AccessGet | grs.AccessDelete}))
	}

	req := &coap.Header{Type: coap.Confirmable, Code: coap.DELETE, URIPath: "a/b", MessageID: 3}
	require.NoError(t, ctx.Dispatch(req, newTestAddr()))

	require.Len(t, codec.built, 1)
	assert.Equal(t, coap.Deleted, codec.built[0].Code)

	var remaining []string
	ctx.Iterate(func(l grs.Listing) bool {
		remaining = append(remaining, l.Path)
		return true
	})
	assert.ElementsMatch(t, []string{"a/c"}, remaining)
}

// scenario 4: PUT to an unknown path auto-creates it as 2.01 CREATED, and
// a subsequent GET returns the PUT's payload as 2.05 CONTENT.
func TestDispatch_AutoCreateViaPUT(t *testing.T) {
	transport := &fakeTransport{}
	codec := &recordingCodec{}
	ctx, err := grs.New(codec, transport, &fakeAllocator{})
	require.NoError(t, err)

	put := &coap.Header{Type: coap.Confirmable, Code: coap.PUT, URIPath: "new/thing", MessageID: 4, Payload: []byte("hi")}
	require.NoError(t, ctx.Dispatch(put, newTestAddr()))
	require.Len(t, codec.built, 1)
	assert.Equal(t, coap.Created, codec.built[0].Code)

	get := &coap.Header{Type: coap.Confirmable, Code: coap.GET, URIPath: "new/thing", MessageID: 5}
	require.NoError(t, ctx.Dispatch(get, newTestAddr()))
	require.Len(t, codec.built, 2)
	assert.Equal(t, coap.Content, codec.built[1].Code)
	assert.Equal(t, []byte("hi"), codec.built[1].Payload)
}

// scenario 5: GET .well-known/core returns a link-format listing with the
// APPLICATION_LINK_FORMAT content-type.
func TestDispatch_WellKnownCore(t *testing.T) {
	transport := &fakeTransport{}
	codec := &recordingCodec{}
	ctx, err := grs.New(codec, transport, &fakeAllocator{})
	require.NoError(t, err)
	require.NoError(t, ctx.Create(grs.Resource{Path: "sensors/temp", Mode: grs.Static, AccessMask: grs.AccessGet}))

	req := &coap.Header{Type: coap.Confirmable, Code: coap.GET, URIPath: ".well-known/core", MessageID: 6}
	require.NoError(t, ctx.Dispatch(req, newTestAddr()))

	require.Len(t, codec.built, 1)
	assert.Equal(t, coap.Content, codec.built[0].Code)
	assert.Equal(t, coap.ContentFormatLinkFormat, codec.built[0].ContentFormat)
	assert.Contains(t, string(codec.built[0].Payload), "sensors/temp")
}

// scenario 6: a RESET-typed message produces no response, and the request
// is still "freed" (cleanup runs regardless of the path taken).
func TestDispatch_ResetEmitsNoResponse(t *testing.T) {
	transport := &fakeTransport{}
	ctx, err := grs.New(&fakeCodec{}, transport, &fakeAllocator{})
	require.NoError(t, err)

	req := &coap.Header{Type: coap.Reset, Code: coap.GET, URIPath: "sensors/temp", MessageID: 7, Blockwise: true, Payload: []byte("stale")}
	require.NoError(t, ctx.Dispatch(req, newTestAddr()))

	assert.Empty(t, transport.sent)
	assert.Nil(t, req.Payload)
}

// Dispatcher idempotence: two GETs on the same static resource yield
// byte-identical responses.
func TestDispatch_IdempotentGET(t *testing.T) {
	transport := &fakeTransport{}
	ctx, err := grs.New(&fakeCodec{}, transport, &fakeAllocator{})
	require.NoError(t, err)
	require.NoError(t, ctx.Create(grs.Resource{
		Path:       "a",
		Mode:       grs.Static,
		AccessMask: grs.AccessGet,
		Payload:    []byte("same"),
	}))

	first := &coap.Header{Type: coap.Confirmable, Code: coap.GET, URIPath: "a", MessageID: 8}
	second := &coap.Header{Type: coap.Confirmable, Code: coap.GET, URIPath: "a", MessageID: 8}
	require.NoError(t, ctx.Dispatch(first, newTestAddr()))
	require.NoError(t, ctx.Dispatch(second, newTestAddr()))

	require.Len(t, transport.sent, 2)
	assert.Equal(t, transport.sent[0].buf, transport.sent[1].buf)
}

// A dynamic resource's handler owns its own response; the dispatcher
// itself emits nothing when access is granted.
func TestDispatch_DynamicHandlerInvoked(t *testing.T) {
	transport := &fakeTransport{}
	ctx, err := grs.New(&fakeCodec{}, transport, &fakeAllocator{})
	require.NoError(t, err)

	invoked := false
	require.NoError(t, ctx.Create(grs.Resource{
		Path:       "actuators/valve",
		Mode:       grs.Dynamic,
		AccessMask: grs.AccessPost,
		Handler:    &fakeHandler{onServe: func() { invoked = true }},
	}))

	req := &coap.Header{Type: coap.Confirmable, Code: coap.POST, URIPath: "actuators/valve", MessageID: 9}
	require.NoError(t, ctx.Dispatch(req, newTestAddr()))

	assert.True(t, invoked)
	assert.Empty(t, transport.sent)
}

// A dynamic resource's access mask is still enforced before the handler
// is invoked.
func TestDispatch_DynamicHandlerDenied(t *testing.T) {
	transport := &fakeTransport{}
	codec := &recordingCodec{}
	ctx, err := grs.New(codec, transport, &fakeAllocator{})
	require.NoError(t, err)

	invoked := false
	require.NoError(t, ctx.Create(grs.Resource{
		Path:       "actuators/valve",
		Mode:       grs.Dynamic,
		AccessMask: grs.AccessGet,
		Handler:    &fakeHandler{onServe: func() { invoked = true }},
	}))

	req := &coap.Header{Type: coap.Confirmable, Code: coap.POST, URIPath: "actuators/valve", MessageID: 10}
	require.NoError(t, ctx.Dispatch(req, newTestAddr()))

	assert.False(t, invoked)
	require.Len(t, codec.built, 1)
	assert.Equal(t, coap.MethodNotAllowed, codec.built[0].Code)
}

// GET on an unknown path 404s rather than auto-creating.
func TestDispatch_GETOnMissingPathNotFound(t *testing.T) {
	transport := &fakeTransport{}
	codec := &recordingCodec{}
	ctx, err := grs.New(codec, transport, &fakeAllocator{})
	require.NoError(t, err)

	req := &coap.Header{Type: coap.Confirmable, Code: coap.GET, URIPath: "missing", MessageID: 11}
	require.NoError(t, ctx.Dispatch(req, newTestAddr()))

	require.Len(t, codec.built, 1)
	assert.Equal(t, coap.NotFound, codec.built[0].Code)
}

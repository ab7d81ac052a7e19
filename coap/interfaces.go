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

package coap

// Codec builds and tears down wire-format CoAP messages. The core never
// serializes bytes itself; it asks the codec for the size it needs, then
// asks the codec to fill a buffer it owns.
type Codec interface {
	// NeededSize returns the number of bytes Build will need to serialize
	// hdr, or an error if hdr cannot be serialized.
	NeededSize(hdr *Header) (int, error)

	// Build serializes hdr for addr into buf, which must be at least
	// NeededSize(hdr) bytes.
	Build(addr Addr, buf []byte, hdr *Header) error

	// Release frees any resources the codec associated with hdr when it
	// was parsed or built (e.g. pooled option buffers). Idempotent.
	Release(hdr *Header)
}

// Transport sends a serialized message to a peer. Implementations are
// expected to be non-blocking, or to absorb their own latency; the core
// holds no state across a Send call beyond the transient buffer.
type Transport interface {
	// Send transmits buf to addr over proto. The boolean return mirrors
	// the source convention where the callback returns zero (false) on
	// failure; err carries additional detail when available.
	Send(proto Protocol, buf []byte, addr Addr) (bool, error)
}

// Allocator is the injected memory source for buffers the core owns. On a
// hosted Go runtime this is typically backed by make([]byte, n), but a
// bounded implementation lets tests exercise the core's allocation-failure
// paths (see grs.Config.MaxResources).
type Allocator interface {
	// Alloc returns a buffer of n bytes, or ok=false if none is available.
	Alloc(n int) (buf []byte, ok bool)
}

// Handler is implemented by hosts to serve a DYNAMIC resource. The
// dispatcher invokes it after an access-control check passes; the handler
// is responsible for building and sending its own response via the
// injected Transport and Codec.
type Handler interface {
	ServeCoAP(req *Header, addr Addr)
}

// RegistrationBuilder renders the link-format listing of registered
// resources used by the .well-known/core discovery endpoint. The core
// treats this as the one external call it makes into surrounding
// directory/registration logic.
type RegistrationBuilder interface {
	// BuildBody fills hdr.Payload with a link-format rendering of the
	// current store. updating distinguishes an initial registration
	// render from a later re-render (e.g. after a resource changed).
	BuildBody(hdr *Header, updating bool) error
}

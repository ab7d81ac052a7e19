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
	"github.com/nsdl-go/grs/coap"
)

// fakeAllocator backs every buffer with make([]byte, n); budget, if
// nonzero, caps the number of allocations it will grant before refusing,
// exercising the OOM paths spec.md describes.
type fakeAllocator struct {
	budget int
	used   int
}

func (a *fakeAllocator) Alloc(n int) ([]byte, bool) {
	if a.budget > 0 && a.used >= a.budget {
		return nil, false
	}
	a.used++
	return make([]byte, n), true
}

// fakeCodec treats NeededSize/Build as a pass-through: it reports the
// payload length as the size needed and copies the payload verbatim. The
// real wire format is an external collaborator's concern (spec.md §1); the
// core only needs to exercise the codec/transport handoff.
type fakeCodec struct {
	released []*coap.Header
}

func (c *fakeCodec) NeededSize(hdr *coap.Header) (int, error) {
	return len(hdr.Payload), nil
}

func (c *fakeCodec) Build(addr coap.Addr, buf []byte, hdr *coap.Header) error {
	copy(buf, hdr.Payload)
	return nil
}

func (c *fakeCodec) Release(hdr *coap.Header) {
	c.released = append(c.released, hdr)
}

// fakeTransport records the address and a copy of every buffer handed to
// send, so tests can assert on what the dispatcher emitted.
type fakeTransport struct {
	sent []sentMessage
	fail bool
}

type sentMessage struct {
	addr coap.Addr
	buf  []byte
}

func (t *fakeTransport) Send(proto coap.Protocol, buf []byte, addr coap.Addr) (bool, error) {
	if t.fail {
		return false, nil
	}
	cp := make([]byte, len(buf))
	copy(cp, buf)
	t.sent = append(t.sent, sentMessage{addr: addr, buf: cp})
	return true, nil
}

func newTestAddr() coap.Addr {
	return coap.Addr{Network: "udp", Address: "[2001:db8::1]:5683"}
}

// recordingCodec keeps a copy of every header it was asked to Build, so
// tests can assert on the response's Code/ContentFormat/Payload rather
// than just its serialized bytes.
type recordingCodec struct {
	built []*coap.Header
}

func (c *recordingCodec) NeededSize(hdr *coap.Header) (int, error) {
	return len(hdr.Payload), nil
}

func (c *recordingCodec) Build(addr coap.Addr, buf []byte, hdr *coap.Header) error {
	cp := *hdr
	c.built = append(c.built, &cp)
	copy(buf, hdr.Payload)
	return nil
}

func (c *recordingCodec) Release(hdr *coap.Header) {}

// fakeHandler implements coap.Handler, calling onServe (if set) when
// invoked. It never sends a response itself; dispatch tests only need to
// assert whether the handler ran.
type fakeHandler struct {
	onServe func()
}

func (h *fakeHandler) ServeCoAP(req *coap.Header, addr coap.Addr) {
	if h.onServe != nil {
		h.onServe()
	}
}

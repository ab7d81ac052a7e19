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
	"github.com/nsdl-go/grs/coap"
	"github.com/nsdl-go/grs/grs/internal/linkformat"
)

// linkFormatBuilder is the default coap.RegistrationBuilder, used when the
// host does not supply its own. It renders .well-known/core from the
// Context's own store, standing in for the "external registration-body
// builder" spec.md §4.7 treats as a collaborator.
type linkFormatBuilder struct {
	ctx *Context
}

func newLinkFormatBuilder(ctx *Context) *linkFormatBuilder {
	return &linkFormatBuilder{ctx: ctx}
}

// BuildBody fills hdr.Payload with a link-format rendering of every
// resource currently in the store. updating is accepted to satisfy
// coap.RegistrationBuilder but unused: this renderer always reflects the
// current store, so there is no distinction between an initial and a
// later re-render.
func (b *linkFormatBuilder) BuildBody(hdr *coap.Header, updating bool) error {
	resources := b.ctx.store.enumerate()
	entries := make([]linkformat.Entry, len(resources))
	for i, r := range resources {
		e := linkformat.Entry{Path: r.path}
		if r.params != nil {
			e.ResourceType = r.params.ResourceType
			e.InterfaceDescription = r.params.InterfaceDescription
			e.ContentType = r.params.MIMEContentType
			e.Observable = r.params.Observable
		}
		entries[i] = e
	}
	hdr.Payload = linkformat.Render(entries)
	return nil
}

// handleWellKnown answers a request for the discovery path (spec.md §4.7).
// It is self-contained: it builds its own response, sends it, and the
// caller (Dispatch) is still responsible for freeing the request per
// Step 6, since Go has no destructor to invoke here.
func (c *Context) handleWellKnown(req *coap.Header, addr coap.Addr) error {
	c.lastStatus = coap.Content
	resp := &coap.Header{
		Code: coap.Content,
		// spec.md §4.7 step 1 and the source both fix the discovery
		// response to ACK regardless of the request's type, unlike
		// the general responseType(req.Type) mirroring dispatch uses
		// elsewhere.
		Type:          coap.Acknowledgement,
		MessageID:     req.MessageID,
		Token:         req.Token,
		ContentFormat: coap.ContentFormatLinkFormat,
	}

	if err := c.registration.BuildBody(resp, false); err != nil {
		c.logger.Warn("well-known/core registration build failed", "error", err)
		return err
	}

	if err := c.send(addr, resp); err != nil {
		c.logger.Warn("well-known/core send failed", "error", err)
		return err
	}
	return nil
}

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
	"fmt"
	"time"

	"github.com/nsdl-go/grs/coap"
	"github.com/nsdl-go/grs/grs"
	"github.com/nsdl-go/grs/logging"
)

// seedDemoResources registers the small resource tree this daemon serves
// out of the box: a STATIC sensor reading and a DYNAMIC handler that
// timestamps its own responses, exercising both of spec.md §4's resource
// modes end to end.
func seedDemoResources(ctx *grs.Context, codec coap.Codec, transport coap.Transport, alloc coap.Allocator, logger *logging.Logger) error {
	if err := ctx.Create(grs.Resource{
		Path:       "sensors/temp",
		Mode:       grs.Static,
		AccessMask: grs.AccessGet,
		Payload:    []byte("21.5"),
		Params: &grs.Params{
			ResourceType:         "temperature-c",
			InterfaceDescription: "sensor",
			CoAPContentType:      coap.ContentFormatText,
		},
	}); err != nil {
		return fmt.Errorf("grsd: seed sensors/temp: %w", err)
	}

	clock := &clockHandler{logger: logger}
	clock.bind(codec, transport, alloc)
	if err := ctx.Create(grs.Resource{
		Path:       "sensors/clock",
		Mode:       grs.Dynamic,
		AccessMask: grs.AccessGet,
		Handler:    clock,
		Params: &grs.Params{
			ResourceType:         "clock",
			InterfaceDescription: "sensor",
		},
	}); err != nil {
		return fmt.Errorf("grsd: seed sensors/clock: %w", err)
	}

	return nil
}

// clockHandler is a DYNAMIC resource (spec.md §4.5 Step 4a): the
// dispatcher invokes ServeCoAP directly after its own access-control
// check passes, and the handler is responsible for building and sending
// its own response.
type clockHandler struct {
	codec     coap.Codec
	transport coap.Transport
	alloc     coap.Allocator
	logger    *logging.Logger
}

// bind supplies the collaborators main() constructed, since a Handler is
// registered before the Context exists to hand them back.
func (h *clockHandler) bind(codec coap.Codec, transport coap.Transport, alloc coap.Allocator) {
	h.codec = codec
	h.transport = transport
	h.alloc = alloc
}

func (h *clockHandler) ServeCoAP(req *coap.Header, addr coap.Addr) {
	body := []byte(time.Now().UTC().Format(time.RFC3339))

	respType := coap.NonConfirmable
	if req.Type == coap.Confirmable {
		respType = coap.Acknowledgement
	}
	resp := &coap.Header{
		Type:          respType,
		Code:          coap.Content,
		MessageID:     req.MessageID,
		Token:         req.Token,
		ContentFormat: coap.ContentFormatText,
		Payload:       body,
	}

	n, err := h.codec.NeededSize(resp)
	if err != nil {
		h.logger.Warn("clock handler: needed size", "error", err)
		return
	}
	buf, ok := h.alloc.Alloc(n)
	if !ok {
		h.logger.Warn("clock handler: allocation refused")
		return
	}
	defer h.codec.Release(resp)

	if err := h.codec.Build(addr, buf, resp); err != nil {
		h.logger.Warn("clock handler: build", "error", err)
		return
	}
	if ok, err := h.transport.Send(coap.ProtocolCoAP, buf, addr); err != nil || !ok {
		h.logger.Warn("clock handler: send failed", "error", err)
	}
}

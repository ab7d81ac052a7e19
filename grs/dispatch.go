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
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/nsdl-go/grs/coap"
	"github.com/nsdl-go/grs/logging"
	"github.com/nsdl-go/grs/metrics"
)

// responseType mirrors spec.md §4.5 Step 5: an ACK for a CONFIRMABLE
// request, NON_CONFIRMABLE otherwise.
func responseType(reqType coap.Type) coap.Type {
	if reqType == coap.Confirmable {
		return coap.Acknowledgement
	}
	return coap.NonConfirmable
}

// Dispatch classifies req and either invokes a DYNAMIC resource's Handler
// or satisfies it directly from a STATIC resource's payload, implementing
// all six steps of spec.md §4.5.
//
// Dispatch is not safe to call concurrently, and a DYNAMIC resource's
// Handler must not call back into Dispatch: the scheduling model is
// single-threaded and cooperative (spec.md §5), and nothing here defends
// against re-entrancy.
func (c *Context) Dispatch(req *coap.Header, addr coap.Addr) error {
	ctx := context.Background()

	if c.tracer != nil {
		var span trace.Span
		ctx, span = c.tracer.Start(ctx, "grs.Dispatch")
		defer span.End()
		if c.logger != nil {
			logging.NewContextLogger(ctx, c.logger).Debug("dispatching",
				"method", req.Code.String(), "path", req.URIPath)
		}
	}

	start := time.Now()
	var finish func(metrics.DispatchObservation)
	if c.recorder != nil {
		finish = c.recorder.StartRequest(ctx)
	}

	c.lastStatus = 0
	err := c.dispatch(req, addr)

	if finish != nil {
		status := c.lastStatus
		statusStr := ""
		if status != 0 {
			statusStr = status.String()
		}
		finish(metrics.DispatchObservation{
			Method:       req.Code.String(),
			Path:         req.URIPath,
			Status:       statusStr,
			Duration:     time.Since(start),
			RequestBytes: len(req.Payload),
			Err:          err != nil || status.Class() >= 4,
		})
	}
	return err
}

// dispatch implements spec.md §4.5 Steps 1-6. It always runs to
// completion; cleanup (Step 6) happens via a deferred release of the
// request's blockwise buffer, matching "the dispatcher always releases the
// request header before returning, regardless of path taken" (spec.md §7).
func (c *Context) dispatch(req *coap.Header, addr coap.Addr) error {
	defer c.cleanup(req)

	// Step 1 - method filter.
	if !req.Code.IsRequest() {
		return c.respond(req, addr, 0)
	}

	// Step 2 - discovery shortcut.
	if req.URIPath == c.cfg.DiscoveryPath {
		return c.handleWellKnown(req, addr)
	}

	// Step 3 - lookup.
	r := c.store.findExact(req.URIPath)

	if r == nil {
		// Step 4c - miss.
		return c.dispatchMiss(req, addr)
	}

	if r.mode == Dynamic {
		return c.dispatchDynamic(req, addr, r)
	}
	return c.dispatchStatic(req, addr, r)
}

// dispatchDynamic implements Step 4a.
func (c *Context) dispatchDynamic(req *coap.Header, addr coap.Addr, r *storedResource) error {
	if !r.accessMask.allows(req.Code) {
		c.logger.Debug("dynamic resource denied", "path", req.URIPath, "method", req.Code)
		return c.respond(req, addr, coap.MethodNotAllowed)
	}
	if r.handler != nil {
		r.handler.ServeCoAP(req, addr)
	}
	// The handler owns its own response; the dispatcher emits none.
	return nil
}

// dispatchStatic implements Step 4b's access-control and effect table.
func (c *Context) dispatchStatic(req *coap.Header, addr coap.Addr, r *storedResource) error {
	if !r.accessMask.allows(req.Code) {
		c.logger.Debug("static resource denied", "path", req.URIPath, "method", req.Code)
		return c.respond(req, addr, coap.MethodNotAllowed)
	}

	switch req.Code {
	case coap.GET:
		return c.respondContent(req, addr, r)

	case coap.POST, coap.PUT:
		r.payload = nil
		if len(req.Payload) > 0 {
			buf, ok := c.alloc.Alloc(len(req.Payload))
			if !ok {
				c.logger.Warn("payload replacement allocation failed", "path", req.URIPath)
				return c.respond(req, addr, coap.InternalServerError)
			}
			copy(buf, req.Payload)
			r.payload = buf
		}
		if req.ContentFormat != 0 {
			if r.params == nil {
				r.params = &Params{}
			}
			r.params.CoAPContentType = req.ContentFormat
		}
		return c.respond(req, addr, coap.Changed)

	case coap.DELETE:
		// c.Delete normalizes req.URIPath before lookup, but an
		// auto-created path was stored un-normalized by dispatchMiss
		// (quirk 1 below). A DELETE carrying a leading "/" on such a
		// path disagrees with the stored key in findExact and surfaces
		// as 5.00 here rather than 2.02 — a known edge case, not fixed,
		// per the same quirk-1 carryover.
		if err := c.Delete(req.URIPath); err != nil {
			return c.respond(req, addr, coap.InternalServerError)
		}
		return c.respond(req, addr, coap.Deleted)

	default:
		return c.respond(req, addr, coap.Forbidden)
	}
}

// dispatchMiss implements Step 4c: auto-create on POST/PUT to an unknown
// path, NOT_FOUND otherwise.
//
// Deliberately not path-normalized, unlike explicit Create (spec.md §9
// quirk 1, carried over from the source rather than silently fixed): the
// request path is stored exactly as the codec resolved it.
func (c *Context) dispatchMiss(req *coap.Header, addr coap.Addr) error {
	if req.Code != coap.POST && req.Code != coap.PUT {
		return c.respond(req, addr, coap.NotFound)
	}

	if c.cfg.MaxResources > 0 && c.store.len() >= c.cfg.MaxResources {
		return c.respond(req, addr, coap.InternalServerError)
	}

	desc := Resource{
		Path:       req.URIPath,
		Mode:       Static,
		AccessMask: c.cfg.DefaultAutoCreateAccess,
		Payload:    req.Payload,
	}
	stored, err := cloneResource(desc, false, c.alloc)
	if err != nil {
		c.logger.Warn("auto-create allocation failed", "path", req.URIPath)
		return c.respond(req, addr, coap.InternalServerError)
	}
	c.store.insert(stored)

	return c.respond(req, addr, coap.Created)
}

// respond implements Step 5 for every path that has no payload to attach.
// A zero status means "still empty" (spec.md: "an unsupported code in Step
// 1"), which becomes InternalServerError.
func (c *Context) respond(req *coap.Header, addr coap.Addr, status coap.Code) error {
	return c.respondWith(req, addr, status, nil, 0)
}

// respondContent implements the CONTENT branch of Step 5, attaching the
// resource's payload and content-type if set.
func (c *Context) respondContent(req *coap.Header, addr coap.Addr, r *storedResource) error {
	contentType := coap.ContentFormat(0)
	if r.params != nil {
		contentType = r.params.CoAPContentType
	}
	return c.respondWith(req, addr, coap.Content, r.payload, contentType)
}

// respondWith is the common tail of Step 5: build the response header,
// mirror message id/token/type, emit nothing for RESET/ACK requests, and
// hand the result to send (§4.6).
func (c *Context) respondWith(req *coap.Header, addr coap.Addr, status coap.Code, payload []byte, contentType coap.ContentFormat) error {
	if req.Type == coap.Reset || req.Type == coap.Acknowledgement {
		return nil
	}

	if status == 0 {
		status = coap.InternalServerError
	}
	c.lastStatus = status

	resp := &coap.Header{
		Code:      status,
		Type:      responseType(req.Type),
		MessageID: req.MessageID,
	}
	if len(req.Token) > 0 {
		resp.Token = req.Token
	}

	if status == coap.Content {
		if contentType != 0 {
			resp.ContentFormat = contentType
		}
		if len(payload) > 0 {
			resp.Payload = payload
		}
	}

	return c.send(addr, resp)
}

// cleanup implements Step 6: release the request's blockwise reassembly
// buffer if it carried one. The parsed header itself needs no explicit
// release in Go; the garbage collector reclaims it once unreferenced,
// unlike the source's manual sn_coap_parser_release_allocated_coap_msg_mem.
func (c *Context) cleanup(req *coap.Header) {
	if req.Blockwise {
		req.Payload = nil
	}
}

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

// Package grs is a generic CoAP resource store and request dispatcher for
// constrained-device resource servers. It holds a flat collection of
// addressable resources identified by URI paths, classifies incoming CoAP
// requests, either invokes a user-supplied handler (DYNAMIC resource) or
// satisfies the request directly from stored bytes (STATIC resource),
// builds the appropriate CoAP response, and manages resource lifecycle
// including implicit creation via PUT/POST to unknown paths and cascading
// deletion of sub-resources.
//
// The CoAP codec, the CoAP transaction layer (duplicate detection,
// retransmission, blockwise reassembly), the registration-body builder,
// and the transport are external collaborators, consumed through the
// interfaces in package coap.
//
// A *Context is not safe for concurrent Dispatch calls: the scheduling
// model is single-threaded and cooperative, mirroring the embedded target
// this package is modeled on. Nothing in Context defends against a dynamic
// resource's Handler re-entering Dispatch.
//
//	ctx, err := grs.New(codec, transport, allocator)
//	if err != nil {
//		return err
//	}
//	defer ctx.Close()
//
//	if err := ctx.Create(grs.Resource{
//		Path:       "sensors/temp",
//		Mode:       grs.Static,
//		AccessMask: grs.AccessGet,
//		Payload:    []byte("21.5"),
//	}); err != nil {
//		return err
//	}
//
//	ctx.Dispatch(req, addr)
package grs

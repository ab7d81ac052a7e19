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

import "github.com/nsdl-go/grs/coap"

// Mode distinguishes a resource whose bytes are served from the store
// (Static) from one served by a host-supplied Handler (Dynamic).
type Mode uint8

const (
	Static Mode = iota
	Dynamic
)

// AccessMask is a bit set over the four CoAP request methods a resource
// accepts. Bit values match spec.md §6: GET=1, POST=2, PUT=4, DELETE=8.
type AccessMask uint8

const (
	AccessGet    AccessMask = 1 << 0
	AccessPost   AccessMask = 1 << 1
	AccessPut    AccessMask = 1 << 2
	AccessDelete AccessMask = 1 << 3
)

// DefaultAutoCreateAccess is the access mask given to a resource born from
// the dispatcher's auto-create branch (spec.md §4.5 Step 4c) when no
// override is configured. POST is deliberately left out: a second POST to
// an auto-created path then answers 4.05 instead of silently recreating it,
// matching the source's SN_GRS_DEFAULT_ACCESS constant.
const DefaultAutoCreateAccess = AccessGet | AccessPut | AccessDelete

// allows reports whether mask permits code, the CoAP request method being
// attempted.
func (mask AccessMask) allows(code coap.Code) bool {
	switch code {
	case coap.GET:
		return mask&AccessGet != 0
	case coap.POST:
		return mask&AccessPost != 0
	case coap.PUT:
		return mask&AccessPut != 0
	case coap.DELETE:
		return mask&AccessDelete != 0
	default:
		return false
	}
}

// Registration tracks whether an external registration/directory layer has
// picked up a resource. The core never interprets this beyond carrying it;
// it exists so surrounding registration logic (outside this package) has
// somewhere to record its own state (spec.md §3 params.registered).
type Registration uint8

const (
	NotRegistered Registration = iota
	Registered
)

// Params is optional resource metadata consumed by discovery and by
// surrounding registration logic; none of it is interpreted by the
// dispatcher itself.
type Params struct {
	ResourceType         string
	InterfaceDescription string
	MIMEContentType      int
	CoAPContentType      coap.ContentFormat
	Observable           bool
	Registered           Registration
}

// Resource is the caller-facing resource descriptor passed to Create and
// Update. It is read-only to the store: every byte the store retains is an
// independent copy (see cloneResource), so mutating a Resource after
// passing it to Create has no effect on the stored copy.
type Resource struct {
	Path       string
	Mode       Mode
	AccessMask AccessMask
	Payload    []byte
	Handler    coap.Handler
	Params     *Params
}

// storedResource is the store-owned, deep-copied record backing a Resource
// once it has been cloned in. Go's garbage collector removes the need for
// an explicit destructor/free pair the source required, but cloneResource
// still must not leave a partially-built record reachable on a simulated
// allocation failure (see clone.go).
type storedResource struct {
	path       string
	mode       Mode
	accessMask AccessMask
	payload    []byte
	handler    coap.Handler
	params     *Params
}

// Listing is an independent, caller-owned copy of one store entry, returned
// by (*Context).List. Mutating a Listing never affects the store (Testable
// Property 3: no byte of the caller descriptor, nor of what the store
// hands back, is shared after the call returns).
type Listing struct {
	Path string
}

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

import "fmt"

// Code is a CoAP message code: a request method or a response status,
// encoded as (class<<5)|detail per RFC 7252 §3.
type Code uint8

// NewCode builds a Code from its class and detail digits, e.g. NewCode(2, 5)
// for "2.05".
func NewCode(class, detail uint8) Code {
	return Code(class<<5 | (detail & 0x1f))
}

// Class returns the code's class digit (the part before the dot).
func (c Code) Class() uint8 { return uint8(c) >> 5 }

// Detail returns the code's detail digits (the part after the dot).
func (c Code) Detail() uint8 { return uint8(c) & 0x1f }

// IsRequest reports whether the code is one of the four request methods.
func (c Code) IsRequest() bool {
	return c >= GET && c <= DELETE
}

// String renders the code in "class.detail" form, e.g. "2.05".
func (c Code) String() string {
	return fmt.Sprintf("%d.%02d", c.Class(), c.Detail())
}

// Request method codes.
const (
	GET    Code = 1 // 0.01
	POST   Code = 2 // 0.02
	PUT    Code = 3 // 0.03
	DELETE Code = 4 // 0.04
)

// Response codes used by the dispatcher.
const (
	Created             Code = 65  // 2.01
	Deleted             Code = 66  // 2.02
	Valid               Code = 67  // 2.03
	Changed             Code = 68  // 2.04
	Content             Code = 69  // 2.05
	BadRequest          Code = 128 // 4.00
	Unauthorized        Code = 129 // 4.01
	Forbidden           Code = 131 // 4.03
	NotFound            Code = 132 // 4.04
	MethodNotAllowed    Code = 133 // 4.05
	InternalServerError Code = 160 // 5.00
	NotImplemented      Code = 161 // 5.01
)

// ContentFormat is a numeric CoAP Content-Format identifier (RFC 7252 §12.3).
type ContentFormat uint16

// ContentFormats relevant to this module. Most content is opaque to the
// core and the numeric value is only ever mirrored, never interpreted.
const (
	ContentFormatText        ContentFormat = 0
	ContentFormatLinkFormat  ContentFormat = 40
	ContentFormatOctetStream ContentFormat = 42
	ContentFormatJSON        ContentFormat = 50
)

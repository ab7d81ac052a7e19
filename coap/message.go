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

// Type is a CoAP message type.
type Type uint8

const (
	Confirmable     Type = 0 // CON, requires an ACK or RST
	NonConfirmable  Type = 1 // NON, fire-and-forget
	Acknowledgement Type = 2 // ACK
	Reset           Type = 3 // RST
)

func (t Type) String() string {
	switch t {
	case Confirmable:
		return "CON"
	case NonConfirmable:
		return "NON"
	case Acknowledgement:
		return "ACK"
	case Reset:
		return "RST"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Token is the CoAP token field: 0-8 opaque bytes echoed back from a
// request to its response, used by clients to match responses without
// relying solely on the message ID.
type Token []byte

// Option is a single CoAP option as decoded by the codec. The core never
// interprets individual option numbers beyond URIPath/ContentFormat, which
// the codec resolves into the Header fields below; Options carries anything
// else the codec chose to preserve verbatim.
type Option struct {
	Number uint16
	Value  []byte
}

// Protocol identifies the underlying transport protocol a Transport sends
// over. The core always uses ProtocolCoAP; other values exist so a single
// Transport implementation can also be reused by collaborators that move
// non-CoAP traffic (e.g. a registration channel).
type Protocol uint8

const ProtocolCoAP Protocol = 1

// Addr identifies a peer. It intentionally does not alias net.Addr so the
// core has no dependency on a particular network stack; DTLS, UDP, or a
// simulated transport in tests can all satisfy it with a string.
type Addr struct {
	Network string // e.g. "udp", "dtls"
	Address string // e.g. "[2001:db8::1]:5683"
}

func (a Addr) String() string {
	if a.Network == "" {
		return a.Address
	}
	return a.Network + "://" + a.Address
}

// Header is a parsed CoAP message. The same type represents both an
// inbound request and an outbound response, matching the single
// header structure CoAP implementations typically decode into and build
// from.
type Header struct {
	Type      Type
	Code      Code
	MessageID uint16
	Token     Token
	Options   []Option
	Payload   []byte

	// URIPath is the request's Uri-Path options joined with '/', already
	// resolved by the codec. Only meaningful on a request.
	URIPath string

	// ContentFormat is the resolved Content-Format option, 0 if absent.
	ContentFormat ContentFormat

	// Blockwise is true when this header arrived as, or was reassembled
	// from, a blockwise transfer. The dispatcher releases the
	// reassembly buffer during cleanup when this is set.
	Blockwise bool
}

// IsEmpty reports whether the response code was never set by the
// dispatcher, the condition spec.md calls "status still empty".
func (h *Header) IsEmpty() bool {
	return h.Code == 0
}

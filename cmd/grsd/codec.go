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
	"encoding/binary"
	"fmt"
	"sort"
	"strings"

	"github.com/nsdl-go/grs/coap"
)

// Wire option numbers this daemon understands (RFC 7252 §12.2). Anything
// else survives a round trip in Header.Options but is never interpreted.
const (
	optionURIPath      uint16 = 11
	optionContentFormat uint16 = 12
)

// wireCodec implements coap.Codec for the RFC 7252 datagram wire format.
// The core never depends on it directly; it is the one piece of the demo
// daemon that speaks actual bytes on the wire, standing in for whatever
// wire library a production host would bring (none of the retrieval pack
// ships a CoAP codec, so this is written directly against RFC 7252 §3).
type wireCodec struct{}

// parseMessage decodes a raw UDP datagram into a coap.Header. It returns an
// error for a malformed datagram; the caller (the transport's receive
// loop) drops the datagram rather than propagating a parse error into
// Dispatch, since CoAP receivers silently ignore unparseable messages.
func parseMessage(buf []byte) (*coap.Header, error) {
	if len(buf) < 4 {
		return nil, fmt.Errorf("grsd: datagram too short: %d bytes", len(buf))
	}

	version := buf[0] >> 6
	if version != 1 {
		return nil, fmt.Errorf("grsd: unsupported CoAP version %d", version)
	}
	tkl := int(buf[0] & 0x0f)
	if tkl > 8 {
		return nil, fmt.Errorf("grsd: token length %d exceeds 8", tkl)
	}

	hdr := &coap.Header{
		Type:      coap.Type((buf[0] >> 4) & 0x03),
		Code:      coap.Code(buf[1]),
		MessageID: binary.BigEndian.Uint16(buf[2:4]),
	}

	pos := 4
	if len(buf) < pos+tkl {
		return nil, fmt.Errorf("grsd: truncated token")
	}
	if tkl > 0 {
		hdr.Token = append(coap.Token{}, buf[pos:pos+tkl]...)
	}
	pos += tkl

	var uriParts []string
	optNumber := uint16(0)
	for pos < len(buf) {
		if buf[pos] == 0xff {
			pos++
			break
		}

		delta := int(buf[pos] >> 4)
		length := int(buf[pos] & 0x0f)
		pos++

		var err error
		if delta, pos, err = extendOptionValue(delta, buf, pos); err != nil {
			return nil, err
		}
		if length, pos, err = extendOptionValue(length, buf, pos); err != nil {
			return nil, err
		}

		if len(buf) < pos+length {
			return nil, fmt.Errorf("grsd: truncated option value")
		}
		value := buf[pos : pos+length]
		pos += length

		optNumber += uint16(delta)
		switch optNumber {
		case optionURIPath:
			uriParts = append(uriParts, string(value))
		case optionContentFormat:
			hdr.ContentFormat = coap.ContentFormat(decodeUint(value))
		default:
			hdr.Options = append(hdr.Options, coap.Option{Number: optNumber, Value: append([]byte{}, value...)})
		}
	}

	hdr.URIPath = strings.Join(uriParts, "/")
	if pos < len(buf) {
		hdr.Payload = append([]byte{}, buf[pos:]...)
	}
	return hdr, nil
}

// extendOptionValue resolves the RFC 7252 §3.1 extended nibble encoding
// (13 => one extra byte + 13, 14 => two extra bytes + 269) into a plain
// integer, returning the new read position.
func extendOptionValue(nibble int, buf []byte, pos int) (int, int, error) {
	switch nibble {
	case 13:
		if len(buf) < pos+1 {
			return 0, pos, fmt.Errorf("grsd: truncated option extension")
		}
		return int(buf[pos]) + 13, pos + 1, nil
	case 14:
		if len(buf) < pos+2 {
			return 0, pos, fmt.Errorf("grsd: truncated option extension")
		}
		return int(binary.BigEndian.Uint16(buf[pos:pos+2])) + 269, pos + 2, nil
	case 15:
		return 0, pos, fmt.Errorf("grsd: reserved option nibble 15")
	default:
		return nibble, pos, nil
	}
}

func decodeUint(b []byte) uint32 {
	var v uint32
	for _, c := range b {
		v = v<<8 | uint32(c)
	}
	return v
}

func encodeUint(v uint32) []byte {
	if v == 0 {
		return nil
	}
	var b []byte
	for v > 0 {
		b = append([]byte{byte(v & 0xff)}, b...)
		v >>= 8
	}
	return b
}

// NeededSize computes the exact serialized length of hdr without building
// it, so the caller can obtain a correctly sized buffer from the injected
// Allocator before Build ever runs (spec.md §4.6 Step 2).
func (wireCodec) NeededSize(hdr *coap.Header) (int, error) {
	buf, err := marshal(hdr)
	if err != nil {
		return 0, err
	}
	return len(buf), nil
}

// Build serializes hdr into buf, which must be at least NeededSize(hdr)
// bytes; addr is accepted to satisfy coap.Codec but unused, since this
// wire format carries no per-peer framing.
func (wireCodec) Build(_ coap.Addr, buf []byte, hdr *coap.Header) error {
	out, err := marshal(hdr)
	if err != nil {
		return err
	}
	if len(buf) < len(out) {
		return fmt.Errorf("grsd: buffer too small: need %d, have %d", len(out), len(buf))
	}
	copy(buf, out)
	return nil
}

// Release is a no-op: this codec allocates its scratch buffer with
// marshal on every call rather than pooling option state, so there is
// nothing keyed to hdr to free.
func (wireCodec) Release(*coap.Header) {}

// marshal is the shared encode path for NeededSize and Build. Encoding
// twice per response is a deliberate simplicity/throughput tradeoff for a
// demo daemon; a production wire codec would cache the first encode.
func marshal(hdr *coap.Header) ([]byte, error) {
	if len(hdr.Token) > 8 {
		return nil, fmt.Errorf("grsd: token length %d exceeds 8", len(hdr.Token))
	}

	var out []byte
	out = append(out, (1<<6)|(byte(hdr.Type)<<4)|byte(len(hdr.Token)))
	out = append(out, byte(hdr.Code))
	out = append(out, byte(hdr.MessageID>>8), byte(hdr.MessageID))
	out = append(out, hdr.Token...)

	type wireOption struct {
		number uint16
		value  []byte
	}
	var options []wireOption
	if hdr.URIPath != "" {
		for _, part := range strings.Split(hdr.URIPath, "/") {
			options = append(options, wireOption{number: optionURIPath, value: []byte(part)})
		}
	}
	if hdr.ContentFormat != 0 {
		options = append(options, wireOption{number: optionContentFormat, value: encodeUint(uint32(hdr.ContentFormat))})
	}
	for _, o := range hdr.Options {
		options = append(options, wireOption{number: o.Number, value: o.Value})
	}
	sort.SliceStable(options, func(i, j int) bool { return options[i].number < options[j].number })

	var running uint16
	for _, o := range options {
		delta := int(o.number - running)
		running = o.number

		deltaNibble, deltaExt := splitOptionValue(delta)
		lengthNibble, lengthExt := splitOptionValue(len(o.value))

		out = append(out, byte(deltaNibble<<4)|byte(lengthNibble))
		out = append(out, deltaExt...)
		out = append(out, lengthExt...)
		out = append(out, o.value...)
	}

	if len(hdr.Payload) > 0 {
		out = append(out, 0xff)
		out = append(out, hdr.Payload...)
	}
	return out, nil
}

// splitOptionValue is the encode-side inverse of extendOptionValue: it
// picks the 4-bit nibble and any extension bytes RFC 7252 §3.1 requires
// for a delta or length value.
func splitOptionValue(v int) (nibble int, ext []byte) {
	switch {
	case v < 13:
		return v, nil
	case v < 269:
		return 13, []byte{byte(v - 13)}
	default:
		ev := uint16(v - 269)
		return 14, []byte{byte(ev >> 8), byte(ev)}
	}
}

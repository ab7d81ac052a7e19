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
	"errors"
	"fmt"
	"net"

	"github.com/nsdl-go/grs/coap"
	"github.com/nsdl-go/grs/logging"
)

// udpTransport implements coap.Transport over a single UDP socket. Unlike
// the teacher's HTTP-centric router stack, CoAP's own transport binding is
// this module's one genuinely out-of-pack concern (spec.md §1: Transport
// is an injected collaborator, not something the core implements), so it
// is written directly against net.PacketConn rather than an example repo.
type udpTransport struct {
	conn *net.UDPConn
}

// listenUDP opens a UDP socket on addr ("host:port" or ":port").
func listenUDP(addr string) (*udpTransport, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("grsd: resolve %q: %w", addr, err)
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, fmt.Errorf("grsd: listen %q: %w", addr, err)
	}
	return &udpTransport{conn: conn}, nil
}

// Send implements coap.Transport.
func (t *udpTransport) Send(proto coap.Protocol, buf []byte, addr coap.Addr) (bool, error) {
	if proto != coap.ProtocolCoAP {
		return false, fmt.Errorf("grsd: unsupported protocol %d", proto)
	}
	peer, err := net.ResolveUDPAddr("udp", addr.Address)
	if err != nil {
		return false, fmt.Errorf("grsd: resolve peer %q: %w", addr.Address, err)
	}
	n, err := t.conn.WriteToUDP(buf, peer)
	if err != nil {
		return false, err
	}
	return n == len(buf), nil
}

// LocalAddr reports the socket's bound address, mainly useful for logging
// at startup when the configured port was 0 (OS-assigned).
func (t *udpTransport) LocalAddr() net.Addr {
	return t.conn.LocalAddr()
}

// Close shuts down the socket, unblocking any in-flight ReadFromUDP.
func (t *udpTransport) Close() error {
	return t.conn.Close()
}

// dispatcher is the subset of *grs.Context the receive loop needs, kept as
// an interface so tests can substitute a stub.
type dispatcher interface {
	Dispatch(req *coap.Header, addr coap.Addr) error
}

// serve reads datagrams off the socket until it is closed (returning nil)
// or a read fails (returning that error), handing each one to parseMessage and then to dispatch.Dispatch. Malformed
// datagrams are logged and dropped, matching CoAP's silent-discard
// convention for unparseable messages (RFC 7252 §4.2).
func (t *udpTransport) serve(dispatch dispatcher, logger *logging.Logger) error {
	buf := make([]byte, 64*1024)
	for {
		n, peer, err := t.conn.ReadFromUDP(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("grsd: read: %w", err)
		}

		hdr, err := parseMessage(buf[:n])
		if err != nil {
			logger.Warn("dropping malformed datagram", "peer", peer.String(), "error", err)
			continue
		}

		addr := coap.Addr{Network: "udp", Address: peer.String()}
		if err := dispatch.Dispatch(hdr, addr); err != nil {
			logger.Warn("dispatch failed", "peer", peer.String(), "path", hdr.URIPath, "error", err)
		}
	}
}

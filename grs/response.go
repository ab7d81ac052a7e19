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
	"fmt"

	"github.com/nsdl-go/grs/coap"
	grserrors "github.com/nsdl-go/grs/errors"
)

// send serializes hdr for addr through the injected Codec and hands the
// result to the injected Transport, per spec.md §4.6:
//
//  1. Ask the codec for the exact byte length needed.
//  2. Allocate that buffer; fail if the allocator refuses.
//  3. Ask the codec to serialize into the buffer.
//  4. Invoke the transport with the buffer.
//  5. Release the header's codec resources (the codec's Release call, idempotent).
//  6. Succeed iff the transport reported success.
//
// The buffer is owned by send for the duration of the call only.
func (c *Context) send(addr coap.Addr, hdr *coap.Header) error {
	n, err := c.codec.NeededSize(hdr)
	if err != nil {
		return fmt.Errorf("grs: %w: needed size: %w", grserrors.ErrGenericFailure, err)
	}

	buf, ok := c.alloc.Alloc(n)
	if !ok {
		return errOOM
	}
	defer c.codec.Release(hdr)

	if err := c.codec.Build(addr, buf, hdr); err != nil {
		return fmt.Errorf("grs: %w: build: %w", grserrors.ErrGenericFailure, err)
	}

	ok, err = c.transport.Send(coap.ProtocolCoAP, buf, addr)
	if err != nil {
		return fmt.Errorf("grs: %w: %w", grserrors.ErrGenericFailure, err)
	}
	if !ok {
		return fmt.Errorf("grs: %w: transport send returned failure", grserrors.ErrGenericFailure)
	}
	return nil
}

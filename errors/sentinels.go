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

package errors

import (
	stderrors "errors"

	"github.com/nsdl-go/grs/coap"
)

// Sentinel errors returned by the public resource API (spec.md §7).
// Wrap with fmt.Errorf and %w when additional context is needed; callers
// should compare with errors.Is, never by string.
var (
	// ErrInvalidPath is returned by Create when the descriptor's path is
	// empty after normalization.
	ErrInvalidPath = stderrors.New("invalid path")

	// ErrExists is returned by Create when a resource with the same
	// normalized path is already in the store.
	ErrExists = stderrors.New("resource already exists")

	// ErrNotFound is returned by Update and Delete when no resource
	// matches the given path.
	ErrNotFound = stderrors.New("resource not found")

	// ErrOOM is returned when the injected Allocator refuses a request.
	// On Update it signals the documented degraded state (§9 quirk 3):
	// the resource's payload is left empty, not rolled back.
	ErrOOM = stderrors.New("allocation failed")

	// ErrAlreadyInitialized is not returned by grs: New always builds a
	// fresh Context, so no Context is initialized twice. CoAPStatus still
	// maps it to InternalServerError.
	ErrAlreadyInitialized = stderrors.New("already initialized")

	// ErrGenericFailure covers bad lifecycle parameters and codec or
	// transport failures in Send.
	ErrGenericFailure = stderrors.New("generic failure")
)

// statusByErr maps each sentinel to the CoAP status spec.md §6 assigns it.
var statusByErr = map[error]coap.Code{
	ErrInvalidPath:        coap.BadRequest,
	ErrExists:             coap.Forbidden,
	ErrNotFound:           coap.NotFound,
	ErrOOM:                coap.InternalServerError,
	ErrAlreadyInitialized: coap.InternalServerError,
	ErrGenericFailure:     coap.InternalServerError,
}

// CoAPStatus maps err to the CoAP status it corresponds to. It checks, in
// order: the ErrorType interface (for caller-defined errors), the known
// sentinels above via errors.Is, and finally defaults to
// InternalServerError for anything else.
func CoAPStatus(err error) coap.Code {
	if err == nil {
		return coap.Content
	}

	var typed ErrorType
	if stderrors.As(err, &typed) {
		return typed.Status()
	}

	for sentinel, status := range statusByErr {
		if stderrors.Is(err, sentinel) {
			return status
		}
	}

	return coap.InternalServerError
}

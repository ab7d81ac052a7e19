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
	"github.com/nsdl-go/grs/coap"
)

// Formatter converts an error into a CoAP-status-bearing diagnostic
// response. Unlike an HTTP error formatter, the Body here is never sent
// over the wire as the CoAP response payload (spec.md §7 rules out
// side-band error payloads to the CoAP peer); it exists for host-side
// logs, metrics labels, and debug endpoints.
//
// Example:
//
//	formatter := errors.NewSimple()
//	resp := formatter.Format(err)
//	logger.Warn("dispatch failed", "status", resp.Status, "body", resp.Body)
type Formatter interface {
	Format(err error) Response
}

// Response is a formatted error, independent of any particular error kind.
type Response struct {
	// Status is the CoAP status the error maps to.
	Status coap.Code

	// ContentType is the media type of Body's serialized form.
	ContentType string

	// Body is the diagnostic payload: always JSON-marshalable.
	Body any
}

// ErrorType allows an error to declare its own CoAP status.
// Domain errors can optionally implement this interface to control their
// status code instead of relying on a Formatter's default mapping.
type ErrorType interface {
	error
	// Status returns the CoAP status this error maps to.
	Status() coap.Code
}

// ErrorDetails allows an error to provide additional structured information.
type ErrorDetails interface {
	error
	// Details returns structured information about the error.
	Details() any
}

// ErrorCode allows an error to provide a machine-readable code.
type ErrorCode interface {
	error
	// Code returns a machine-readable error code.
	Code() string
}

// NewSimple creates a new Simple formatter.
func NewSimple() *Simple {
	return &Simple{}
}

// WithStatus wraps an error with an explicit CoAP status.
// If err is nil, the status's String() form is used as the error message.
func WithStatus(err error, status coap.Code) error {
	return &statusError{err: err, status: status}
}

// statusError wraps an error with an explicit status code.
type statusError struct {
	err    error
	status coap.Code
}

func (e *statusError) Error() string {
	if e.err == nil {
		return e.status.String()
	}
	return e.err.Error()
}

func (e *statusError) Unwrap() error {
	return e.err
}

func (e *statusError) Status() coap.Code {
	return e.status
}

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
	"errors"

	"github.com/google/uuid"

	"github.com/nsdl-go/grs/coap"
)

// Simple formats errors as diagnostic JSON objects for host-side logs and
// debug surfaces, never for the CoAP wire response (spec.md §7: no
// side-band error payloads go to the CoAP peer).
//
// Format: {"error": "message", "status": "5.00", "error_id": "...", "details": {...}, "code": "..."}
type Simple struct {
	// StatusResolver overrides status determination. If nil, CoAPStatus
	// is used.
	StatusResolver func(err error) coap.Code

	// DisableErrorID skips generating an error_id field, useful in tests
	// that assert on exact output.
	DisableErrorID bool
}

// Format converts an error into a diagnostic JSON response. If the error
// implements ErrorDetails or ErrorCode, those are included.
func (f *Simple) Format(err error) Response {
	status := f.determineStatus(err)

	body := map[string]any{
		"error":  err.Error(),
		"status": status.String(),
	}

	if !f.DisableErrorID {
		body["error_id"] = uuid.NewString()
	}

	var detailed ErrorDetails
	if errors.As(err, &detailed) {
		body["details"] = detailed.Details()
	}

	var coded ErrorCode
	if errors.As(err, &coded) {
		body["code"] = coded.Code()
	}

	return Response{
		Status:      status,
		ContentType: "application/json; charset=utf-8",
		Body:        body,
	}
}

func (f *Simple) determineStatus(err error) coap.Code {
	if f.StatusResolver != nil {
		return f.StatusResolver(err)
	}
	return CoAPStatus(err)
}

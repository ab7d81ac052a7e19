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

// Package errors provides the sentinel errors returned by the resource
// store's public API and a Formatter that turns any error into a
// diagnostic JSON object carrying its CoAP status, for host-side logs and
// debug surfaces. It never writes to the CoAP wire response itself:
// spec.md §7 rules out side-band error payloads to the CoAP peer, so the
// only thing that reaches the peer is the mapped status code.
//
// Domain errors can implement ErrorType, ErrorDetails, or ErrorCode to
// control their own status and expose structured details.
//
// # Quick start
//
//	if err := store.Create(desc); err != nil {
//		status := errors.CoAPStatus(err)
//		logger.Warn("create failed", "status", status, "error", err)
//	}
//
//	formatter := errors.NewSimple()
//	response := formatter.Format(err)
//	logger.Warn("dispatch failed", "status", response.Status, "body", response.Body)
package errors

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

	"go.opentelemetry.io/otel/trace"

	"github.com/nsdl-go/grs/coap"
	grserrors "github.com/nsdl-go/grs/errors"
	"github.com/nsdl-go/grs/logging"
	"github.com/nsdl-go/grs/metrics"
)

// errOOM is the sentinel cloneResource and the dispatcher return when the
// injected Allocator refuses a request (spec.md §7 OOM).
var errOOM = grserrors.ErrOOM

// DiscoveryPath is the well-known discovery path matched in Dispatch Step 2
// (spec.md §4.5), without its leading ".well-known/" slash convention
// already normalized away.
const DiscoveryPath = ".well-known/core"

// Config holds the options grs.New accepts beyond the required
// collaborators. The core itself takes no file-based configuration (no
// persistence is a spec.md §1 non-goal); a YAML-backed Config lives in
// cmd/grsd, not here.
type Config struct {
	// DefaultAutoCreateAccess overrides DefaultAutoCreateAccess for
	// resources born from the dispatcher's auto-create branch.
	DefaultAutoCreateAccess AccessMask

	// DiscoveryPath overrides DiscoveryPath, mainly useful in tests.
	DiscoveryPath string

	// MaxResources bounds the number of resources the store may hold; 0
	// means unlimited. Exceeding it makes Create and auto-create behave
	// as if the Allocator had refused the request (ErrOOM), guarding the
	// linear-scan budget spec.md §4.2 assumes.
	MaxResources int
}

// Option configures a Context at construction time.
type Option func(*Context)

// WithLogger attaches logger to the Context. The dispatcher logs routine
// dispatch decisions at Debug and allocation-driven degradations at Warn;
// no log line ever carries payload bytes, since constrained-device
// payloads may be binary or sensitive.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Context) {
		c.logger = logger
	}
}

// WithRecorder attaches a metrics recorder. StartRequest/FinishRequest are
// called around every Dispatch; a nil recorder (the default) means no
// metrics are recorded.
func WithRecorder(recorder *metrics.Recorder) Option {
	return func(c *Context) {
		c.recorder = recorder
	}
}

// WithTracer attaches an OpenTelemetry tracer. When set, Dispatch wraps its
// body in a span named "grs.Dispatch", grounded on the teacher's
// router/tracing.go request-span pattern.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Context) {
		c.tracer = tracer
	}
}

// WithRegistrationBuilder overrides the default internal/linkformat
// renderer used to answer .well-known/core.
func WithRegistrationBuilder(rb coap.RegistrationBuilder) Option {
	return func(c *Context) {
		c.registration = rb
	}
}

// WithConfig overrides the zero-value Config (DefaultAutoCreateAccess
// applied, no resource limit, default discovery path).
func WithConfig(cfg Config) Option {
	return func(c *Context) {
		c.cfg = cfg
	}
}

// Context is the dispatcher's lifecycle object: it holds the store, the
// injected collaborators, and the optional ambient services (logging,
// metrics, tracing). Spec.md §9 recommends encapsulating the source's
// process-wide globals into an explicit context threaded through every
// public call; Context is that value. It is not safe for concurrent
// Dispatch calls (spec.md §5).
type Context struct {
	codec        coap.Codec
	transport    coap.Transport
	alloc        coap.Allocator
	registration coap.RegistrationBuilder

	store store
	cfg   Config

	logger   *logging.Logger
	recorder *metrics.Recorder
	tracer   trace.Tracer

	// lastStatus is the CoAP status Dispatch most recently computed,
	// recorded by respondWith for the metrics observation. It is
	// transient per-call state, safe only because Dispatch is documented
	// as non-reentrant and non-concurrent (spec.md §5).
	lastStatus coap.Code

	closed bool
}

// New initializes a Context with the given collaborators, analogous to the
// source's init(tx_cb, rx_cb, mem). It rejects a nil codec, transport, or
// allocator (the source's "rejects null tx_cb or a mem block missing
// alloc/free").
func New(codec coap.Codec, transport coap.Transport, alloc coap.Allocator, opts ...Option) (*Context, error) {
	if codec == nil || transport == nil || alloc == nil {
		return nil, fmt.Errorf("grs: %w: codec, transport, and allocator are required", grserrors.ErrGenericFailure)
	}

	c := &Context{
		codec:     codec,
		transport: transport,
		alloc:     alloc,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.DefaultAutoCreateAccess == 0 {
		c.cfg.DefaultAutoCreateAccess = DefaultAutoCreateAccess
	}
	if c.cfg.DiscoveryPath == "" {
		c.cfg.DiscoveryPath = DiscoveryPath
	}
	if c.logger == nil {
		c.logger, _ = logging.New(logging.WithServiceName("grs"))
	}
	if c.registration == nil {
		c.registration = newLinkFormatBuilder(c)
	}

	return c, nil
}

// Close tears down the Context, freeing every resource it holds (spec.md
// §4.8 destroy()). It always succeeds; Go's garbage collector reclaims the
// released bytes once the store slice is cleared.
func (c *Context) Close() error {
	c.store.resources = nil
	c.closed = true
	return nil
}

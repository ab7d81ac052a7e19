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

// Command grsd is a demonstration CoAP host built on the grs core: it
// wires a UDP transport, a bounded allocator, and grs.Context together,
// loads its settings from a YAML file via the config package, and
// exports dispatch metrics and traces the way the teacher's services do.
// It exists to show the core dispatched end to end, not as a hardened
// production CoAP server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	stdouttrace "go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/nsdl-go/grs/config"
	"github.com/nsdl-go/grs/grs"
	"github.com/nsdl-go/grs/logging"
	"github.com/nsdl-go/grs/metrics"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "grsd:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "grsd.yaml", "path to the daemon's YAML configuration file")
	flag.Parse()

	var cfg daemonConfig
	cfgStore, err := config.New(
		config.WithFile(*configPath),
		config.WithBinding(&cfg),
	)
	if err != nil {
		return fmt.Errorf("configure: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cfgStore.Load(ctx); err != nil {
		return fmt.Errorf("load config %q: %w", *configPath, err)
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	recorder, err := buildRecorder(cfg)
	if err != nil {
		return fmt.Errorf("build recorder: %w", err)
	}
	if err := recorder.Start(ctx); err != nil {
		return fmt.Errorf("start recorder: %w", err)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithCancel(context.Background())
		defer shutdownCancel()
		if err := recorder.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics shutdown failed", "error", err)
		}
	}()

	var tracerProvider *sdktrace.TracerProvider
	if cfg.Tracing.Enabled {
		tracerProvider, err = buildTracerProvider()
		if err != nil {
			return fmt.Errorf("build tracer: %w", err)
		}
		defer func() {
			if err := tracerProvider.Shutdown(context.Background()); err != nil {
				logger.Warn("tracer shutdown failed", "error", err)
			}
		}()
	}

	transport, err := listenUDP(cfg.Listen)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer transport.Close()
	logger.Info("listening", "addr", transport.LocalAddr().String())

	autoCreate, err := parseAccessMask(cfg.Store.AutoCreate)
	if err != nil {
		return fmt.Errorf("store.auto_create_access: %w", err)
	}

	alloc := newBoundedAllocator(cfg.Store.MemoryBudget)
	codec := wireCodec{}

	opts := []grs.Option{
		grs.WithLogger(logger),
		grs.WithRecorder(recorder),
		grs.WithConfig(grs.Config{
			DefaultAutoCreateAccess: autoCreate,
			MaxResources:            cfg.Store.MaxResources,
		}),
	}
	if tracerProvider != nil {
		opts = append(opts, grs.WithTracer(tracerProvider.Tracer("github.com/nsdl-go/grs/cmd/grsd")))
	}

	dispatch, err := grs.New(codec, transport, alloc, opts...)
	if err != nil {
		return fmt.Errorf("init core: %w", err)
	}
	defer dispatch.Close()

	if err := seedDemoResources(dispatch, codec, transport, alloc, logger); err != nil {
		return fmt.Errorf("seed resources: %w", err)
	}

	watcher, err := watchConfig(*configPath, cfgStore, logger)
	if err != nil {
		logger.Warn("config hot-reload disabled", "error", err)
	} else {
		go watcher.run(ctx, *configPath, &cfg, func(reloaded *daemonConfig) {
			if level, ok := logLevelFor(reloaded.Logging.Level); ok {
				if err := logger.SetLevel(level); err != nil {
					logger.Warn("apply reloaded log level failed", "error", err)
				}
			}
			logger.Info("store settings from a reloaded config take effect on next restart",
				"max_resources", reloaded.Store.MaxResources,
				"memory_budget", reloaded.Store.MemoryBudget)
		})
	}

	serveErr := make(chan error, 1)
	go func() { serveErr <- transport.serve(dispatch, logger) }()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		transport.Close()
		<-serveErr
		return nil
	case err := <-serveErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	}
}

func buildLogger(cfg daemonConfig) (*logging.Logger, error) {
	level, _ := logLevelFor(cfg.Logging.Level)

	opts := []logging.Option{
		logging.WithServiceName("grsd"),
		logging.WithLevel(level),
	}
	switch cfg.Logging.Format {
	case "text":
		opts = append(opts, logging.WithTextHandler())
	case "console":
		opts = append(opts, logging.WithConsoleHandler())
	default:
		opts = append(opts, logging.WithJSONHandler())
	}

	return logging.New(opts...)
}

func logLevelFor(name string) (logging.Level, bool) {
	switch name {
	case "debug":
		return logging.LevelDebug, true
	case "info":
		return logging.LevelInfo, true
	case "warn":
		return logging.LevelWarn, true
	case "error":
		return logging.LevelError, true
	default:
		return logging.LevelInfo, false
	}
}

func buildRecorder(cfg daemonConfig) (*metrics.Recorder, error) {
	opts := []metrics.Option{
		metrics.WithServiceName("grsd"),
	}

	if !cfg.Metrics.Enabled {
		return metrics.New(append(opts, metrics.WithStdout(), metrics.WithServerDisabled())...)
	}

	switch cfg.Metrics.Provider {
	case "otlp":
		opts = append(opts, metrics.WithOTLP(cfg.Metrics.Address))
	case "stdout":
		opts = append(opts, metrics.WithStdout())
	default:
		host, path := cfg.Metrics.Address, "/metrics"
		opts = append(opts, metrics.WithPrometheus(host, path))
	}

	return metrics.New(opts...)
}

// buildTracerProvider wires the teacher's stdout-fallback pattern
// (router/tracing.go): absent an OTLP collector, traces print to stdout
// rather than silently going nowhere.
func buildTracerProvider() (*sdktrace.TracerProvider, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, err
	}
	return sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter)), nil
}

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
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nsdl-go/grs/config"
	"github.com/nsdl-go/grs/logging"
)

func TestConfigWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grsd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: info\n"), 0o644))

	var cfg daemonConfig
	store, err := config.New(config.WithFile(path), config.WithBinding(&cfg))
	require.NoError(t, err)
	require.NoError(t, store.Load(context.Background()))
	require.Equal(t, "info", cfg.Logging.Level)

	logger, err := logging.New(logging.WithServiceName("grsd-test"))
	require.NoError(t, err)

	watcher, err := watchConfig(path, store, logger)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	reloaded := 0
	go watcher.run(ctx, path, &cfg, func(*daemonConfig) {
		mu.Lock()
		reloaded++
		mu.Unlock()
	})

	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return reloaded >= 1
	}, 2*time.Second, 20*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, "debug", cfg.Logging.Level)
}

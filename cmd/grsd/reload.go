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
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/nsdl-go/grs/config"
	"github.com/nsdl-go/grs/logging"
)

// configWatcher reloads cfg from disk whenever its backing file changes
// and calls onReload with the freshly bound daemonConfig. Only the knobs
// that are safe to change on a running process are re-applied by the
// caller (log level today); grs.Config itself is immutable once New has
// run (spec.md §9: no live reconfiguration of the core), so a changed
// store.* setting takes effect on the next restart, which onReload logs.
type configWatcher struct {
	watcher *fsnotify.Watcher
	cfg     *config.Config
	logger  *logging.Logger
}

// watchConfig starts watching path's parent directory (editors commonly
// replace a file via rename-and-create rather than an in-place write,
// which a direct watch on the file itself can miss).
func watchConfig(path string, cfg *config.Config, logger *logging.Logger) (*configWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}
	return &configWatcher{watcher: w, cfg: cfg, logger: logger}, nil
}

// run blocks, reloading cfg on every write/create event targeting path,
// until ctx is canceled. bound must be the same pointer passed to
// config.WithBinding when cfg was constructed: Config.Load decodes into it
// in place, so onReload is called with bound already updated.
func (cw *configWatcher) run(ctx context.Context, path string, bound *daemonConfig, onReload func(*daemonConfig)) {
	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			cw.watcher.Close()
			return

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			if err := cw.cfg.Load(ctx); err != nil {
				cw.logger.Warn("config reload failed", "path", path, "error", err)
				continue
			}
			cw.logger.Info("config reloaded", "path", path)
			onReload(bound)

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.logger.Warn("config watcher error", "error", err)
		}
	}
}

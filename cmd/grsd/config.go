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
	"fmt"
	"strings"

	"github.com/nsdl-go/grs/grs"
)

// daemonConfig is the YAML-bound configuration for grsd, loaded through
// the shared config package rather than a hand-rolled flag parser
// (grounded on config/config.go's WithFile+WithBinding pattern).
type daemonConfig struct {
	Listen string `config:"listen" default:":5683"`

	Logging struct {
		Level  string `config:"level" default:"info"`
		Format string `config:"format" default:"json"`
	} `config:"logging"`

	Metrics struct {
		Enabled  bool   `config:"enabled" default:"true"`
		Provider string `config:"provider" default:"prometheus"`
		Address  string `config:"address" default:":9090"`
	} `config:"metrics"`

	Tracing struct {
		Enabled bool `config:"enabled" default:"false"`
	} `config:"tracing"`

	Store struct {
		MaxResources int    `config:"max_resources" default:"0"`
		MemoryBudget int64  `config:"memory_budget" default:"0"`
		AutoCreate   string `config:"auto_create_access" default:"get,put,delete"`
	} `config:"store"`
}

// Validate implements config.Validator: it runs during Config.Load before
// the shared values are swapped in, so a malformed file never reaches the
// running daemon.
func (c *daemonConfig) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("grsd: logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}

	switch c.Metrics.Provider {
	case "prometheus", "otlp", "stdout":
	default:
		return fmt.Errorf("grsd: metrics.provider %q is not one of prometheus, otlp, stdout", c.Metrics.Provider)
	}

	if c.Store.MaxResources < 0 {
		return fmt.Errorf("grsd: store.max_resources must be >= 0")
	}
	if c.Store.MemoryBudget < 0 {
		return fmt.Errorf("grsd: store.memory_budget must be >= 0")
	}

	if _, err := parseAccessMask(c.Store.AutoCreate); err != nil {
		return fmt.Errorf("grsd: store.auto_create_access: %w", err)
	}

	return nil
}

// parseAccessMask turns a comma-separated method list ("get,put,delete")
// into a grs.AccessMask, the YAML-friendly form of spec.md §6's bitmask.
func parseAccessMask(list string) (grs.AccessMask, error) {
	var mask grs.AccessMask
	if list == "" {
		return mask, nil
	}
	for _, tok := range strings.Split(list, ",") {
		switch strings.TrimSpace(tok) {
		case "get":
			mask |= grs.AccessGet
		case "post":
			mask |= grs.AccessPost
		case "put":
			mask |= grs.AccessPut
		case "delete":
			mask |= grs.AccessDelete
		default:
			return 0, fmt.Errorf("unknown access method %q", tok)
		}
	}
	return mask, nil
}

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

// Package linkformat renders the CoRE Link Format (RFC 6690) listing
// served from .well-known/core: a comma-separated sequence of
// "</path>;attr=value;..." entries, one per registered resource. It
// stands in for the external registration-body builder spec.md §4.7
// treats as a collaborator, for hosts that do not supply their own.
package linkformat

import (
	"strconv"
	"strings"
)

// Entry describes one resource to render into the listing. Fields left
// empty are omitted from the entry's attribute list.
type Entry struct {
	Path                 string
	ResourceType         string
	InterfaceDescription string
	ContentType          int
	Observable           bool
}

// Render produces the link-format byte rendering of entries, in the order
// given. An empty entries slice renders to an empty payload, matching an
// empty store.
func Render(entries []Entry) []byte {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('<')
		b.WriteByte('/')
		b.WriteString(e.Path)
		b.WriteByte('>')
		if e.ResourceType != "" {
			b.WriteString(`;rt="`)
			b.WriteString(e.ResourceType)
			b.WriteByte('"')
		}
		if e.InterfaceDescription != "" {
			b.WriteString(`;if="`)
			b.WriteString(e.InterfaceDescription)
			b.WriteByte('"')
		}
		if e.ContentType != 0 {
			b.WriteString(";ct=")
			b.WriteString(strconv.Itoa(e.ContentType))
		}
		if e.Observable {
			b.WriteString(";obs")
		}
	}
	return []byte(b.String())
}

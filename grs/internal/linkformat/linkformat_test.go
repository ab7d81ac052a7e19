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

package linkformat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nsdl-go/grs/grs/internal/linkformat"
)

func TestRender_Empty(t *testing.T) {
	assert.Equal(t, []byte{}, linkformat.Render(nil))
}

func TestRender_SingleEntryAllAttributes(t *testing.T) {
	out := linkformat.Render([]linkformat.Entry{{
		Path:                 "sensors/temp",
		ResourceType:         "temperature-c",
		InterfaceDescription: "sensor",
		ContentType:          0,
		Observable:           true,
	}})
	assert.Equal(t, `</sensors/temp>;rt="temperature-c";if="sensor";obs`, string(out))
}

func TestRender_OmitsEmptyAttributes(t *testing.T) {
	out := linkformat.Render([]linkformat.Entry{{Path: "a/b"}})
	assert.Equal(t, "</a/b>", string(out))
}

func TestRender_MultipleEntriesCommaJoined(t *testing.T) {
	out := linkformat.Render([]linkformat.Entry{
		{Path: "a"},
		{Path: "b", ContentType: 40},
	})
	assert.Equal(t, "</a>,</b>;ct=40", string(out))
}

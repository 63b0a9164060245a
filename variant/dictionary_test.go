// Copyright 2024 Dolthub, Inc.
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

package variant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldDictionaryAssignsOrdinalIDs(t *testing.T) {
	d := newFieldDictionary()

	assert.Equal(t, 0, d.add("b"))
	assert.Equal(t, 1, d.add("a"))
	// repeat insertion returns the existing id, not a new one.
	assert.Equal(t, 0, d.add("b"))
	assert.Equal(t, 2, d.add("c"))

	assert.Equal(t, 3, d.len())
	assert.Equal(t, "b", d.keyAt(0))
	assert.Equal(t, "a", d.keyAt(1))
	assert.Equal(t, "c", d.keyAt(2))
}

func TestFieldDictionaryEmpty(t *testing.T) {
	d := newFieldDictionary()
	assert.Equal(t, 0, d.len())
}

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
	"github.com/dolthub/variant/store/pool"
)

// BufferManager is the capability the encoder writes into. It neither
// allocates nor owns the buffers on the caller's behalf in the usual
// sense: the encoder asks it to grow, then re-fetches a view, and never
// holds a slice across a growth call (growth may move the backing array).
//
// Implementations must guarantee: after EnsureValue(n) returns nil,
// ViewValue() returns a slice of length >= n whose first k bytes (for
// whatever k <= n was previously established) are unchanged. Same
// contract for EnsureMetadata/ViewMetadata.
type BufferManager interface {
	ViewValue() []byte
	EnsureValue(size int) error
	ViewMetadata() []byte
	EnsureMetadata(size int) error
}

// memBufferManager is the default, in-memory BufferManager: two pooled
// byte arenas, one per buffer. It is the capability a single encode call
// owns exclusively; it must not be shared between concurrent encodes.
type memBufferManager struct {
	value    *pool.Buffer
	metadata *pool.Buffer
}

// NewMemoryBufferManager returns a BufferManager backed by plain Go byte
// slices pulled from p. This is the "row-batch encoder reusing a pooled
// buffer" case described in §5: p may be shared and reused across many
// encode calls as long as each call gets its own Buffer.
func NewMemoryBufferManager(p *pool.BuffPool) BufferManager {
	return &memBufferManager{
		value:    p.Get(0),
		metadata: p.Get(0),
	}
}

func (m *memBufferManager) ViewValue() []byte { return m.value.View() }

func (m *memBufferManager) EnsureValue(size int) error {
	m.value.Grow(size)
	return nil
}

func (m *memBufferManager) ViewMetadata() []byte { return m.metadata.View() }

func (m *memBufferManager) EnsureMetadata(size int) error {
	m.metadata.Grow(size)
	return nil
}

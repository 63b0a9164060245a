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

// Package pool provides a small allocator of growable byte buffers. It is
// the capability that backs the variant value/metadata buffers: callers get
// a mutable view of the current bytes and can ask for more room, without
// ever owning the backing array themselves, so the allocator is free to
// move bytes on growth.
package pool

// BuffPool hands out growable byte buffers. A BuffPool is not safe for
// concurrent use by multiple goroutines; each caller (e.g. one variant
// encode call) should use its own Buffer.
type BuffPool struct{}

// NewBuffPool returns a BuffPool. The zero value is also usable; the
// constructor exists to mirror the rest of the codebase's pool
// constructors and to leave room for future pooling of the underlying
// arrays without changing call sites.
func NewBuffPool() *BuffPool {
	return &BuffPool{}
}

// Get returns a new Buffer with at least the given capacity already backed
// by zeroed bytes.
func (p *BuffPool) Get(sz int) *Buffer {
	b := &Buffer{}
	if sz > 0 {
		b.grow(sz)
	}
	return b
}

// Buffer is a single growable byte arena. Callers must re-fetch View()
// after any Grow() call: Grow may reallocate and move the backing array.
type Buffer struct {
	buf []byte
}

// View returns the current backing bytes. The returned slice aliases the
// Buffer's storage and is invalidated by the next Grow call.
func (b *Buffer) View() []byte {
	return b.buf
}

// Len returns the current capacity of the buffer, i.e. len(b.View()).
func (b *Buffer) Len() int {
	return len(b.buf)
}

// Grow ensures View() returns a slice of length >= sz, preserving every
// byte already written. It grows geometrically (next power of two) so
// that a long run of small appends doesn't reallocate on every call.
func (b *Buffer) Grow(sz int) {
	if sz <= len(b.buf) {
		return
	}
	b.grow(nextPowerOfTwo(sz))
}

func (b *Buffer) grow(sz int) {
	next := make([]byte, sz)
	copy(next, b.buf)
	b.buf = next
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

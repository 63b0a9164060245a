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
	"encoding/json"
	"math"
	"math/big"
	"sort"

	"github.com/dolthub/variant/variant/jsonsrc"
)

// builder walks a parsed JSON tree and emits one physical value per node
// into bufs' value buffer, in document order, tracking the write cursor
// itself (§4.3). It owns exactly one dictionary and one size limit for
// the lifetime of a single encode call and must not be reused across
// calls (§5).
type builder struct {
	bufs      BufferManager
	dict      *fieldDictionary
	cursor    int
	sizeLimit int
}

func newBuilder(bufs BufferManager, sizeLimit int) *builder {
	return &builder{bufs: bufs, dict: newFieldDictionary(), sizeLimit: sizeLimit}
}

// fieldEntry is one (key, id, offset) triple recorded while writing an
// object's fields, before the fields vector is sorted lexicographically
// for the header (§4.3 Object emission).
type fieldEntry struct {
	key    string
	id     int
	offset int
}

// build dispatches on the parsed JSON node's Go representation, which
// comes from jsonsrc.Parse: nil, bool, json.Number, string,
// []interface{}, or jsonsrc.KVS.
func (b *builder) build(v interface{}) error {
	switch val := v.(type) {
	case nil:
		return b.appendNull()
	case bool:
		return b.appendBool(val)
	case json.Number:
		return b.appendNumber(val)
	case string:
		return b.appendString(val)
	case []interface{}:
		return b.appendArray(val)
	case jsonsrc.KVS:
		return b.appendObject(val)
	default:
		return newError(InternalInvariant, "unrecognized JSON node type")
	}
}

func (b *builder) checkCapacity(additional int) error {
	required := b.cursor + additional
	if required > b.sizeLimit {
		return newError(SizeLimitExceeded, "value buffer exceeds size limit")
	}
	return nil
}

// writeBytes appends p to the value buffer at the current cursor,
// growing the buffer manager's view first if needed, per §4.1/§4.3.
func (b *builder) writeBytes(p []byte) error {
	if err := b.checkCapacity(len(p)); err != nil {
		return err
	}
	if b.cursor+len(p) > len(b.bufs.ViewValue()) {
		if err := b.bufs.EnsureValue(b.cursor + len(p)); err != nil {
			return wrapError(AllocationFailed, "could not grow value buffer", err)
		}
	}
	view := b.bufs.ViewValue()
	if b.cursor+len(p) > len(view) {
		return newError(InternalInvariant, "write cursor outran value buffer after growth")
	}
	copy(view[b.cursor:b.cursor+len(p)], p)
	b.cursor += len(p)
	return nil
}

func (b *builder) appendNull() error {
	return b.writeBytes([]byte{primitiveHeader(primitiveNull)})
}

func (b *builder) appendBool(v bool) error {
	if v {
		return b.writeBytes([]byte{primitiveHeader(primitiveTrue)})
	}
	return b.writeBytes([]byte{primitiveHeader(primitiveFalse)})
}

func (b *builder) appendNumber(tok json.Number) error {
	n, err := classifyNumber(string(tok))
	if err != nil {
		return err
	}
	switch n.kind {
	case primitiveInt8:
		return b.writeBytes([]byte{primitiveHeader(primitiveInt8), byte(int8(n.i64))})
	case primitiveInt16:
		buf := make([]byte, 3)
		buf[0] = primitiveHeader(primitiveInt16)
		putLE(buf[1:], uint64(uint16(int16(n.i64))), 2)
		return b.writeBytes(buf)
	case primitiveInt32:
		buf := make([]byte, 5)
		buf[0] = primitiveHeader(primitiveInt32)
		putLE(buf[1:], uint64(uint32(int32(n.i64))), 4)
		return b.writeBytes(buf)
	case primitiveInt64:
		buf := make([]byte, 9)
		buf[0] = primitiveHeader(primitiveInt64)
		putLE(buf[1:], uint64(n.i64), 8)
		return b.writeBytes(buf)
	case primitiveDouble:
		buf := make([]byte, 9)
		buf[0] = primitiveHeader(primitiveDouble)
		putLE(buf[1:], math.Float64bits(n.f64), 8)
		return b.writeBytes(buf)
	case primitiveDecimal4:
		return b.appendDecimal(primitiveDecimal4, n.scale, n.unscaled, 4)
	case primitiveDecimal8:
		return b.appendDecimal(primitiveDecimal8, n.scale, n.unscaled, 8)
	default:
		return b.appendDecimal(primitiveDecimal16, n.scale, n.unscaled, 16)
	}
}

// appendDecimal writes a decimal4/8/16 physical value: header, 1 scale
// byte, then width bytes of signed little-endian unscaled value (§3).
func (b *builder) appendDecimal(kind primitiveType, scale int32, unscaled *big.Int, width int) error {
	buf := make([]byte, 2+width)
	buf[0] = primitiveHeader(kind)
	buf[1] = byte(scale)
	copy(buf[2:], bigIntToLE(unscaled, width))
	return b.writeBytes(buf)
}

func (b *builder) appendString(s string) error {
	bytes := []byte(s)
	if len(bytes) <= maxShortStringLen {
		buf := make([]byte, 1+len(bytes))
		buf[0] = shortStringHeader(len(bytes))
		copy(buf[1:], bytes)
		return b.writeBytes(buf)
	}
	buf := make([]byte, 5+len(bytes))
	buf[0] = primitiveHeader(primitiveLongStr)
	putLE(buf[1:5], uint64(len(bytes)), 4)
	copy(buf[5:], bytes)
	return b.writeBytes(buf)
}

// appendArray implements §4.3 Array emission.
func (b *builder) appendArray(elems []interface{}) error {
	start := b.cursor
	offsets := make([]int, 0, len(elems)+1)
	for _, elem := range elems {
		offsets = append(offsets, b.cursor-start)
		if err := b.build(elem); err != nil {
			return err
		}
	}
	dataSize := b.cursor - start
	offsets = append(offsets, dataSize)

	n := len(elems)
	large := n > u8Max
	sizeBytes := 1
	if large {
		sizeBytes = 4
	}
	offsetSize := minWidth(dataSize)
	headerSize := 1 + sizeBytes + (n+1)*offsetSize

	if err := b.makeRoomForHeader(start, dataSize, headerSize); err != nil {
		return err
	}

	view := b.bufs.ViewValue()
	view[start] = arrayHeaderBits(large, offsetSize)
	cur := start + 1
	putLE(view[cur:], uint64(n), sizeBytes)
	cur += sizeBytes
	for _, off := range offsets {
		putLE(view[cur:], uint64(off), offsetSize)
		cur += offsetSize
	}
	return nil
}

// appendObject implements §4.3 Object emission. Keys reappearing in the
// same JSON object still get exactly one dictionary id and one field
// entry: duplicates are resolved up front, keeping the *last* value
// written under each key (§9's "later-writer-wins" duplicate-key
// behaviour) at the layout position of that key's *first* occurrence.
// Resolving duplicates before any child bytes are written — rather than
// rewinding the cursor mid-encode when a repeated key is seen — keeps
// every other field's offset correct even when the duplicate and its
// winning value aren't adjacent (e.g. {"a":1,"b":2,"a":3}).
func (b *builder) appendObject(kvs jsonsrc.KVS) error {
	order, latest := dedupeLastWriteWins(kvs)

	start := b.cursor
	fields := make([]fieldEntry, 0, len(order))
	for _, key := range order {
		id := b.dict.add(key)
		fields = append(fields, fieldEntry{key: key, id: id, offset: b.cursor - start})
		if err := b.build(latest[key]); err != nil {
			return err
		}
	}
	dataSize := b.cursor - start

	sorted := make([]fieldEntry, len(fields))
	copy(sorted, fields)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].key < sorted[j].key })

	n := len(sorted)
	maxID := 0
	for _, f := range sorted {
		if f.id > maxID {
			maxID = f.id
		}
	}
	large := n > u8Max
	sizeBytes := 1
	if large {
		sizeBytes = 4
	}
	idSize := minWidth(maxID)
	offsetSize := minWidth(dataSize)
	headerSize := 1 + sizeBytes + n*idSize + (n+1)*offsetSize

	if err := b.makeRoomForHeader(start, dataSize, headerSize); err != nil {
		return err
	}

	view := b.bufs.ViewValue()
	view[start] = objectHeaderBits(large, idSize, offsetSize)
	cur := start + 1
	putLE(view[cur:], uint64(n), sizeBytes)
	cur += sizeBytes

	idStart := cur
	for _, f := range sorted {
		putLE(view[idStart:], uint64(f.id), idSize)
		idStart += idSize
	}
	offStart := idStart
	for _, f := range sorted {
		putLE(view[offStart:], uint64(f.offset), offsetSize)
		offStart += offsetSize
	}
	putLE(view[offStart:], uint64(dataSize), offsetSize)
	return nil
}

// dedupeLastWriteWins returns kvs' distinct keys in first-occurrence
// order, plus a map from each key to the value of its last occurrence.
func dedupeLastWriteWins(kvs jsonsrc.KVS) ([]string, map[string]interface{}) {
	order := make([]string, 0, len(kvs))
	latest := make(map[string]interface{}, len(kvs))
	for _, kv := range kvs {
		if _, ok := latest[kv.Key]; !ok {
			order = append(order, kv.Key)
		}
		latest[kv.Key] = kv.Value
	}
	return order, latest
}

// makeRoomForHeader grows the value buffer if needed for headerSize more
// bytes, then shifts the already-written [start, start+dataSize) child
// block forward by headerSize so the header can be backfilled at start.
// This is the "emit children first, then memmove forward" strategy from
// §9, chosen over pre-reserving a maximum-width header because that would
// waste space and complicate offset arithmetic.
func (b *builder) makeRoomForHeader(start, dataSize, headerSize int) error {
	if err := b.checkCapacity(headerSize); err != nil {
		return err
	}
	total := start + headerSize + dataSize
	if total > len(b.bufs.ViewValue()) {
		if err := b.bufs.EnsureValue(total); err != nil {
			return wrapError(AllocationFailed, "could not grow value buffer for container header", err)
		}
	}
	view := b.bufs.ViewValue()
	if total > len(view) {
		return newError(InternalInvariant, "write cursor outran value buffer after header growth")
	}
	copy(view[start+headerSize:start+headerSize+dataSize], view[start:start+dataSize])
	b.cursor += headerSize
	return nil
}

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

// writeMetadata implements §4.4: it runs once, after the value root has
// closed, and serializes dict into bufs' metadata buffer as a header
// byte, a key count, a running offset table, and the concatenated key
// bytes, all in insertion order.
func writeMetadata(bufs BufferManager, dict *fieldDictionary, sizeLimit int) (int, error) {
	numKeys := dict.len()
	heapSize := 0
	for i := 0; i < numKeys; i++ {
		heapSize += len(dict.keyAt(i))
	}

	maxSize := numKeys
	if heapSize > maxSize {
		maxSize = heapSize
	}
	offsetSize := minWidth(maxSize)

	metadataSize := 1 + offsetSize + (numKeys+1)*offsetSize + heapSize
	if maxSize > sizeLimit || metadataSize > sizeLimit {
		return 0, newError(SizeLimitExceeded, "metadata buffer exceeds size limit")
	}

	if err := bufs.EnsureMetadata(metadataSize); err != nil {
		return 0, wrapError(AllocationFailed, "could not grow metadata buffer", err)
	}
	view := bufs.ViewMetadata()
	if len(view) < metadataSize {
		return 0, newError(InternalInvariant, "metadata buffer did not grow to the requested size")
	}

	view[0] = byte(metadataVersion) | byte(offsetSize-1)<<6
	cur := 1
	putLE(view[cur:], uint64(numKeys), offsetSize)
	cur += offsetSize

	offsetTable := cur
	cur += (numKeys + 1) * offsetSize
	heapStart := cur

	running := 0
	for i := 0; i < numKeys; i++ {
		putLE(view[offsetTable+i*offsetSize:], uint64(running), offsetSize)
		key := dict.keyAt(i)
		copy(view[heapStart+running:heapStart+running+len(key)], key)
		running += len(key)
	}
	putLE(view[offsetTable+numKeys*offsetSize:], uint64(running), offsetSize)

	return metadataSize, nil
}

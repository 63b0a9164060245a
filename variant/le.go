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

// putLE writes the low width bytes of v's little-endian representation
// into dst[:width]. width is always one of {1, 2, 3, 4, 8} in this
// package (8 for int64 and double payloads); the 3-byte case is the one min_width can actually produce for large
// containers and is exercised directly by le_test.go.
func putLE(dst []byte, v uint64, width int) {
	for i := 0; i < width; i++ {
		dst[i] = byte(v >> (8 * uint(i)))
	}
}

// getLE reads width little-endian bytes from src[:width] back into a
// uint64. Used only by tests to assert round-trips of putLE.
func getLE(src []byte, width int) uint64 {
	var v uint64
	for i := 0; i < width; i++ {
		v |= uint64(src[i]) << (8 * uint(i))
	}
	return v
}

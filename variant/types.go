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

// Package variant encodes a parsed JSON document into the Variant binary
// encoding: a value buffer of physical values plus a metadata buffer
// holding the object field-name dictionary. See the Variant binary
// specification popularised by lakehouse table formats (Delta, Iceberg).
package variant

// basicType is the low 2 bits of every physical value's header byte.
type basicType byte

const (
	basicPrimitive   basicType = 0
	basicShortString basicType = 1
	basicObject      basicType = 2
	basicArray       basicType = 3
)

// primitiveType is the upper 6 bits of a header byte when basicType is
// basicPrimitive.
type primitiveType byte

const (
	primitiveNull      primitiveType = 0
	primitiveTrue      primitiveType = 1
	primitiveFalse     primitiveType = 2
	primitiveInt8      primitiveType = 3
	primitiveInt16     primitiveType = 4
	primitiveInt32     primitiveType = 5
	primitiveInt64     primitiveType = 6
	primitiveDouble    primitiveType = 7
	primitiveDecimal4  primitiveType = 8
	primitiveDecimal8  primitiveType = 9
	primitiveDecimal16 primitiveType = 10
	primitiveLongStr   primitiveType = 16
)

const (
	maxShortStringLen = 0x3F // 63

	u8Max  = 0xFF
	u16Max = 0xFFFF

	metadataVersion = 1
)

// Decimal bounds from §4.3: the smallest physical width whose range holds
// the unscaled value and whose scale fits in the width's scale byte.
const (
	maxUnscaledDecimal4  = 999_999_999
	maxPrecisionDecimal4 = 9

	maxUnscaledDecimal8  = 999_999_999_999_999_999
	maxPrecisionDecimal8 = 18

	maxPrecisionDecimal16 = 28
)

func primitiveHeader(t primitiveType) byte {
	return (byte(t) << 2) | byte(basicPrimitive)
}

func shortStringHeader(size int) byte {
	return (byte(size) << 2) | byte(basicShortString)
}

// objectHeaderBits lays out [large_size:1 | id_size_minus_one:2 |
// offset_size_minus_one:2 | basic:2] per §3.
func objectHeaderBits(large bool, idSize, offsetSize int) byte {
	var b byte
	if large {
		b |= 1 << 6
	}
	b |= byte(idSize-1) << 4
	b |= byte(offsetSize-1) << 2
	b |= byte(basicObject)
	return b
}

// arrayHeaderBits lays out [large_size:1 | offset_size_minus_one:2 |
// basic:2] per §3.
func arrayHeaderBits(large bool, offsetSize int) byte {
	var b byte
	if large {
		b |= 1 << 4
	}
	b |= byte(offsetSize-1) << 2
	b |= byte(basicArray)
	return b
}

// minWidth returns the smallest of {1, 2, 3} bytes sufficient to encode v,
// per the glossary's min_width(v).
func minWidth(v int) int {
	switch {
	case v <= u8Max:
		return 1
	case v <= u16Max:
		return 2
	default:
		return 3
	}
}

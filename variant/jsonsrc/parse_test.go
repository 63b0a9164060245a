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

package jsonsrc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScalars(t *testing.T) {
	v, err := Parse("null")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = Parse("true")
	require.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = Parse(`"hi"`)
	require.NoError(t, err)
	assert.Equal(t, "hi", v)

	v, err = Parse("92842754201389")
	require.NoError(t, err)
	assert.Equal(t, json.Number("92842754201389"), v)
}

// TestParsePreservesArbitraryPrecision exercises the property jstream's
// float64-only number representation can't satisfy: a 29-digit integer
// that doesn't round-trip through float64 still comes back as the exact
// source digits.
func TestParsePreservesArbitraryPrecision(t *testing.T) {
	v, err := Parse("79228162514264337593543950335")
	require.NoError(t, err)
	assert.Equal(t, json.Number("79228162514264337593543950335"), v)
}

func TestParsePreservesDuplicateKeysAndOrder(t *testing.T) {
	v, err := Parse(`{"b":2,"a":1,"a":3}`)
	require.NoError(t, err)

	kvs, ok := v.(KVS)
	require.True(t, ok)
	require.Len(t, kvs, 3)
	assert.Equal(t, "b", kvs[0].Key)
	assert.Equal(t, "a", kvs[1].Key)
	assert.Equal(t, "a", kvs[2].Key)
}

func TestParseNestedArrayAndObject(t *testing.T) {
	v, err := Parse(`{"tags":["sql","git"]}`)
	require.NoError(t, err)

	kvs, ok := v.(KVS)
	require.True(t, ok)
	require.Len(t, kvs, 1)
	tags, ok := kvs[0].Value.([]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"sql", "git"}, tags)
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse("{not json")
	assert.Error(t, err)
}

func TestParseEmptyDocument(t *testing.T) {
	_, err := Parse("")
	assert.Error(t, err)
}

func TestParseTrailingData(t *testing.T) {
	_, err := Parse("null null")
	assert.Error(t, err)
}

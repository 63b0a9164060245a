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

package variantschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceWithPhysicalStructTopLevel(t *testing.T) {
	out := ReplaceWithPhysicalStruct(schemaWithVariant())
	require.Len(t, out.Fields, 2)

	v := out.Fields[1]
	assert.Equal(t, KindStruct, v.Kind)
	assert.True(t, IsPhysicalVariantStruct(v))
	require.Len(t, v.Fields, 2)
	assert.Equal(t, "value", v.Fields[0].Name)
	assert.Equal(t, "metadata", v.Fields[1].Name)

	// Non-variant fields are untouched.
	assert.Equal(t, "id", out.Fields[0].Name)
	assert.Equal(t, KindScalar, out.Fields[0].Kind)
}

func TestReplaceWithPhysicalStructNested(t *testing.T) {
	out := ReplaceWithPhysicalStruct(nestedSchemaWithVariant())
	nested := out.Fields[1]
	require.Len(t, nested.Fields, 1)
	assert.True(t, IsPhysicalVariantStruct(nested.Fields[0]))
}

func TestReplaceWithPhysicalStructLeavesPlainSchemaAlone(t *testing.T) {
	out := ReplaceWithPhysicalStruct(schemaWithoutVariant())
	assert.False(t, UsesVariant(out))
	assert.Equal(t, schemaWithoutVariant(), out)
}

func TestIsPhysicalVariantStructRejectsLookalikeUserStruct(t *testing.T) {
	lookalike := Field{
		Name: "v",
		Kind: KindStruct,
		Fields: []Field{
			{Name: "value", Kind: KindScalar},
			{Name: "metadata", Kind: KindScalar},
		},
	}
	assert.False(t, IsPhysicalVariantStruct(lookalike))
}

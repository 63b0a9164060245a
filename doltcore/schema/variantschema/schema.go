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

// Kind identifies the shape of a Field, standing in for the handful of
// logical types a column-family schema walker needs to distinguish when
// all it cares about is "does a VARIANT live somewhere in here".
type Kind int

const (
	KindScalar Kind = iota
	KindVariant
	KindStruct
	KindArray
)

// Field is one column or nested member of a Schema. Struct fields nest
// through Fields; array fields nest through Element. The variant tag
// carried after a ReplaceWithPhysicalStruct rewrite lives in Tags.
type Field struct {
	Name     string
	Kind     Kind
	Nullable bool

	Fields  []Field // populated when Kind == KindStruct
	Element *Field  // populated when Kind == KindArray

	Tags map[string]string
}

// Schema is an ordered list of top-level fields, standing in for a table's
// column list.
type Schema struct {
	Fields []Field
}

// variantTag marks a physical struct produced by ReplaceWithPhysicalStruct
// so that a reader can tell a genuine two-field user struct apart from a
// VARIANT column that has been lowered to its physical representation.
const variantTag = "__VARIANT__"

// UsesVariant reports whether schema contains a VARIANT column anywhere,
// including inside nested structs and arrays.
func UsesVariant(schema Schema) bool {
	for _, f := range schema.Fields {
		if fieldUsesVariant(f) {
			return true
		}
	}
	return false
}

func fieldUsesVariant(f Field) bool {
	switch f.Kind {
	case KindVariant:
		return true
	case KindStruct:
		for _, nested := range f.Fields {
			if fieldUsesVariant(nested) {
				return true
			}
		}
		return false
	case KindArray:
		return f.Element != nil && fieldUsesVariant(*f.Element)
	default:
		return false
	}
}

// ReplaceWithPhysicalStruct rewrites every VARIANT field in schema into its
// on-disk physical representation: a two-field struct carrying the
// variant's value bytes and metadata bytes, tagged so a reader can
// recognize it. Non-VARIANT fields, including the VARIANT-free parts of
// nested structs and arrays, are returned unchanged.
func ReplaceWithPhysicalStruct(schema Schema) Schema {
	out := Schema{Fields: make([]Field, len(schema.Fields))}
	for i, f := range schema.Fields {
		out.Fields[i] = replaceField(f)
	}
	return out
}

func replaceField(f Field) Field {
	switch f.Kind {
	case KindVariant:
		return physicalVariantStruct(f)
	case KindStruct:
		nested := make([]Field, len(f.Fields))
		for i, child := range f.Fields {
			nested[i] = replaceField(child)
		}
		f.Fields = nested
		return f
	case KindArray:
		if f.Element != nil {
			replaced := replaceField(*f.Element)
			f.Element = &replaced
		}
		return f
	default:
		return f
	}
}

func physicalVariantStruct(f Field) Field {
	return Field{
		Name:     f.Name,
		Kind:     KindStruct,
		Nullable: f.Nullable,
		Tags:     map[string]string{variantTag: "true"},
		Fields: []Field{
			{Name: "value", Kind: KindScalar, Nullable: true},
			{Name: "metadata", Kind: KindScalar, Nullable: true},
		},
	}
}

// IsPhysicalVariantStruct reports whether f is the lowered physical form a
// VARIANT column takes after ReplaceWithPhysicalStruct, as opposed to a
// user-authored struct that happens to share its shape.
func IsPhysicalVariantStruct(f Field) bool {
	return f.Kind == KindStruct && f.Tags[variantTag] == "true"
}

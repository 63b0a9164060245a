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

// Package variantschema is the kernel-facing collaborator of the variant
// package: it tells a table-format writer whether a schema is allowed to
// carry VARIANT columns under a given protocol, and how to rewrite those
// columns into the physical struct<value:binary,metadata:binary> shape the
// variant package actually produces bytes for.
package variantschema

import (
	"github.com/pkg/errors"

	gmssql "github.com/dolthub/go-mysql-server/sql"
)

// ReaderFeature and WriterFeature name the table-protocol feature flags
// that gate VARIANT column support, mirroring the reader/writer feature
// split a table protocol uses to negotiate what a reader or writer must
// understand before it may touch a table.
type ReaderFeature string

// WriterFeature is the writer-side counterpart of ReaderFeature.
type WriterFeature string

const (
	// ReaderFeatureVariantType marks the stable VARIANT reader feature.
	ReaderFeatureVariantType ReaderFeature = "variantType"
	// ReaderFeatureVariantTypePreview marks the pre-GA VARIANT reader feature.
	ReaderFeatureVariantTypePreview ReaderFeature = "variantType-preview"

	// WriterFeatureVariantType marks the stable VARIANT writer feature.
	WriterFeatureVariantType WriterFeature = "variantType"
	// WriterFeatureVariantTypePreview marks the pre-GA VARIANT writer feature.
	WriterFeatureVariantTypePreview WriterFeature = "variantType-preview"
)

// Protocol is the subset of a table protocol's feature negotiation state
// that VARIANT support needs: which reader and writer features a table
// currently declares.
type Protocol struct {
	ReaderFeatures []ReaderFeature
	WriterFeatures []WriterFeature
}

func (p Protocol) hasReaderFeature(f ReaderFeature) bool {
	for _, rf := range p.ReaderFeatures {
		if rf == f {
			return true
		}
	}
	return false
}

func (p Protocol) hasWriterFeature(f WriterFeature) bool {
	for _, wf := range p.WriterFeatures {
		if wf == f {
			return true
		}
	}
	return false
}

// ValidateFeatureSupport checks that schema is only allowed to contain
// VARIANT columns if protocol declares both a reader and a writer VARIANT
// feature (stable or preview). ctx is accepted, not inspected, to match
// the table-engine convention of threading a *gmssql.Context through
// schema validation calls so future revisions can attach session state
// (collation, locking) without changing every call site.
func ValidateFeatureSupport(ctx *gmssql.Context, schema Schema, protocol Protocol) error {
	_ = ctx

	hasReader := protocol.hasReaderFeature(ReaderFeatureVariantType) ||
		protocol.hasReaderFeature(ReaderFeatureVariantTypePreview)
	hasWriter := protocol.hasWriterFeature(WriterFeatureVariantType) ||
		protocol.hasWriterFeature(WriterFeatureVariantTypePreview)

	if hasReader && hasWriter {
		return nil
	}

	if UsesVariant(schema) {
		return errors.New("schema contains VARIANT columns but the table protocol does not declare the variantType reader and writer features")
	}
	return nil
}

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

// Package parquet writes rows whose schema may contain VARIANT columns out
// to a Parquet file, lowering each VARIANT column to its physical
// struct<value:binary,metadata:binary> shape first (§4.5's "external
// interfaces" contract: callers hand the encoder a buffer manager, and the
// bytes it fills are exactly what a column writer like this one persists).
package parquet

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	psource "github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	pwriter "github.com/xitongsys/parquet-go/writer"

	"github.com/dolthub/variant/doltcore/schema/variantschema"
)

// ParquetWriter writes rows matching a physical schema to a Parquet file on
// disk, one WriteRow call per row, following the open/write-many/close
// lifecycle of the teacher's CSV and Parquet writers.
type ParquetWriter struct {
	physical variantschema.Schema
	fw       source.ParquetFile
	pw       *pwriter.JSONWriter
}

// NewParquetWriter opens path for writing and prepares a Parquet writer for
// schema, after rewriting any VARIANT columns in schema into their physical
// struct form via variantschema.ReplaceWithPhysicalStruct.
func NewParquetWriter(schema variantschema.Schema, path string) (*ParquetWriter, error) {
	physical := variantschema.ReplaceWithPhysicalStruct(schema)

	fw, err := psource.NewLocalFileWriter(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not open parquet file for writing")
	}

	pw, err := pwriter.NewJSONWriter(toParquetJSONSchema(physical), fw, 4)
	if err != nil {
		_ = fw.Close()
		return nil, errors.Wrap(err, "could not create parquet writer")
	}

	return &ParquetWriter{physical: physical, fw: fw, pw: pw}, nil
}

// WriteRow encodes row (column name -> value, where a VARIANT column's
// value is a [2][]byte of {value bytes, metadata bytes} produced by
// Encode) as one Parquet record.
func (w *ParquetWriter) WriteRow(ctx context.Context, row map[string]interface{}) error {
	rec := make(map[string]interface{}, len(row))
	for _, f := range w.physical.Fields {
		v, ok := row[f.Name]
		if !ok {
			continue
		}
		if variantschema.IsPhysicalVariantStruct(f) {
			pair, ok := v.([2][]byte)
			if !ok {
				return fmt.Errorf("column %q: VARIANT column value must be a [2][]byte{value, metadata} pair", f.Name)
			}
			rec[f.Name] = map[string]interface{}{
				"value":    pair[0],
				"metadata": pair[1],
			}
			continue
		}
		rec[f.Name] = v
	}

	buf, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(err, "could not marshal row for parquet encoding")
	}
	return w.pw.Write(string(buf))
}

// Close flushes any buffered rows and closes the underlying file. ctx is
// accepted, not inspected, matching the teacher's table writers, which all
// thread a context through Close even though the local file writer doesn't
// use one today.
func (w *ParquetWriter) Close(ctx context.Context) error {
	_ = ctx
	if err := w.pw.WriteStop(); err != nil {
		_ = w.fw.Close()
		return errors.Wrap(err, "could not flush parquet writer")
	}
	return w.fw.Close()
}

// toParquetJSONSchema renders schema as the JSON schema string
// xitongsys/parquet-go's JSON writer expects: a root Tag with nested Tag
// children for structs, one leaf BYTE_ARRAY per VARIANT physical field.
func toParquetJSONSchema(schema variantschema.Schema) string {
	var fields []string
	for _, f := range schema.Fields {
		fields = append(fields, fieldJSONSchema(f))
	}
	return fmt.Sprintf(`{"Tag":"name=root, repetitiontype=REQUIRED","Fields":[%s]}`, strings.Join(fields, ","))
}

func fieldJSONSchema(f variantschema.Field) string {
	rep := "REQUIRED"
	if f.Nullable {
		rep = "OPTIONAL"
	}

	switch f.Kind {
	case variantschema.KindStruct:
		var children []string
		for _, c := range f.Fields {
			children = append(children, fieldJSONSchema(c))
		}
		return fmt.Sprintf(`{"Tag":"name=%s, repetitiontype=%s","Fields":[%s]}`, f.Name, rep, strings.Join(children, ","))
	default:
		return fmt.Sprintf(`{"Tag":"name=%s, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=%s"}`, f.Name, rep)
	}
}

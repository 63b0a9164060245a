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

// Package jsonsrc is the "JSON parser (external)" leaf of the encoding
// pipeline (spec §2.1): it turns JSON text into the generic value tree
// the encoder walks. It is kept separate from the variant package because
// the encoder only ever consumes the tree, never the parser.
package jsonsrc

import (
	"encoding/json"
	"io"
	"strings"
)

// KV is one field of a JSON object, in source order.
type KV struct {
	Key   string
	Value interface{}
}

// KVS is a JSON object's fields exactly as written: document order
// preserved, duplicate keys kept rather than collapsed, so the dictionary
// (§4.2) and duplicate-key handling (§4.3, §9) see every field the source
// actually had.
type KVS []KV

// Parse decodes a single JSON document from text into a tree of nil,
// bool, json.Number, string, []interface{}, and KVS values.
//
// This is hand-rolled over encoding/json's token stream, with UseNumber,
// instead of Decoder.Decode into interface{}: the usual unmarshal-into-
// interface{} path loses two properties this spec depends on. It always
// renders numbers as float64, losing arbitrary precision (§2's "numbers
// as strings" requirement, and the int64/decimal16 test vectors in §8
// that need the exact digit string preserved), and it always renders
// objects as a Go map, which canonicalizes key order and silently drops
// duplicates — exactly the two properties the metadata layout (§4.2) and
// duplicate-key behaviour (§4.3, §9) need preserved. No dependency in the
// example pack offers an order/duplicate-preserving, arbitrary-precision
// JSON decoder, so this walks encoding/json's token stream by hand
// instead of reaching for one.
func Parse(text string) (interface{}, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	tok, err := dec.Token()
	if err == io.EOF {
		return nil, errEmptyDocument
	}
	if err != nil {
		return nil, err
	}

	v, err := parseToken(dec, tok)
	if err != nil {
		return nil, err
	}
	if err := rejectTrailingTokens(dec); err != nil {
		return nil, err
	}
	return v, nil
}

// parseValue reads the next token and dispatches on it.
func parseValue(dec *json.Decoder) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return parseToken(dec, tok)
}

func parseToken(dec *json.Decoder, tok json.Token) (interface{}, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		default:
			return nil, errUnexpectedDelim
		}
	case json.Number:
		return t, nil
	case string:
		return t, nil
	case bool:
		return t, nil
	case nil:
		return nil, nil
	default:
		return nil, errUnrecognizedToken
	}
}

// parseObject reads fields up to the closing '}', preserving every
// key-value pair in the order it was written, including duplicates.
func parseObject(dec *json.Decoder) (KVS, error) {
	var kvs KVS
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, errObjectKeyNotString
		}
		val, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		kvs = append(kvs, KV{Key: key, Value: val})
	}
	if _, err := dec.Token(); err != nil { // consume '}'
		return nil, err
	}
	return kvs, nil
}

func parseArray(dec *json.Decoder) ([]interface{}, error) {
	var elems []interface{}
	for dec.More() {
		v, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	if _, err := dec.Token(); err != nil { // consume ']'
		return nil, err
	}
	return elems, nil
}

// rejectTrailingTokens reports an error if dec has anything left after
// the top-level value, e.g. `null null`.
func rejectTrailingTokens(dec *json.Decoder) error {
	_, err := dec.Token()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}
	return errTrailingData
}

var (
	errEmptyDocument      = simpleErr("json: empty document")
	errUnexpectedDelim    = simpleErr("json: unexpected delimiter")
	errUnrecognizedToken  = simpleErr("json: unrecognized token")
	errObjectKeyNotString = simpleErr("json: object key must be a string")
	errTrailingData       = simpleErr("json: unexpected data after top-level value")
)

type simpleErr string

func (e simpleErr) Error() string { return string(e) }

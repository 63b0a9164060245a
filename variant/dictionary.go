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

// fieldDictionary is an insertion-ordered string-to-id map built while
// encoding objects. String index == id, so the metadata string heap can be
// laid out in insertion order and an object's field IDs index it directly
// with no remap (§4.2).
type fieldDictionary struct {
	ids  map[string]int
	keys []string
}

func newFieldDictionary() *fieldDictionary {
	return &fieldDictionary{ids: make(map[string]int)}
}

// add returns key's id, assigning id = len(keys) the first time key is
// seen and returning the existing id on every later call.
func (d *fieldDictionary) add(key string) int {
	if id, ok := d.ids[key]; ok {
		return id
	}
	id := len(d.keys)
	d.ids[key] = id
	d.keys = append(d.keys, key)
	return id
}

// len returns the number of distinct keys inserted so far.
func (d *fieldDictionary) len() int {
	return len(d.keys)
}

// keyAt returns the key inserted with the given id, i.e. iter_in_insertion_order.
func (d *fieldDictionary) keyAt(id int) string {
	return d.keys[id]
}

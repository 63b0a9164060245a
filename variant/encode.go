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

import (
	"github.com/dolthub/variant/variant/jsonsrc"
)

// Encode parses jsonText and writes its Variant encoding into bufs,
// returning the number of bytes written to the value buffer and the
// metadata buffer respectively (§4.5, §6).
//
// bufs is owned exclusively by this call for its duration; it must not be
// shared with a concurrent Encode call (§5). On error, the buffers are
// left in an unspecified partial state and their contents must not be
// relied upon; the returned sizes are both zero.
func Encode(jsonText string, bufs BufferManager, cfg Config) (valueSize, metadataSize int, err error) {
	root, err := jsonsrc.Parse(jsonText)
	if err != nil {
		return 0, 0, wrapError(InvalidJSON, "could not parse JSON", err)
	}

	limit := cfg.sizeLimit()
	b := newBuilder(bufs, limit)
	if err := b.build(root); err != nil {
		return 0, 0, err
	}

	metaSize, err := writeMetadata(bufs, b.dict, limit)
	if err != nil {
		return 0, 0, err
	}

	return b.cursor, metaSize, nil
}

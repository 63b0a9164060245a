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

// DefaultSizeLimit is the byte ceiling applied to each buffer (value and
// metadata independently) when a Config doesn't override it (§6).
const DefaultSizeLimit = 16 * 1024 * 1024 // 16 MiB

// Config holds the options recognised by Encode.
type Config struct {
	// SizeLimit is the byte ceiling for each of the value and metadata
	// buffers, checked independently.
	SizeLimit int
}

// DefaultConfig returns a Config with SizeLimit set to DefaultSizeLimit.
func DefaultConfig() Config {
	return Config{SizeLimit: DefaultSizeLimit}
}

func (c Config) sizeLimit() int {
	if c.SizeLimit <= 0 {
		return DefaultSizeLimit
	}
	return c.SizeLimit
}

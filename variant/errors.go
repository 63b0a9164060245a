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
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind distinguishes the error taxonomy from §7: every failure the
// encoder can return is one of these, and all of them abort the encode.
// There is no retry or partial recovery.
type ErrorKind int

const (
	// InvalidJSON means the source text does not parse as JSON.
	InvalidJSON ErrorKind = iota
	// NumberUnparseable means a JSON number is neither an integer in
	// i64 range, nor a fixed-point decimal with unscaled value fitting
	// in i128 and scale <= 28, nor a finite double.
	NumberUnparseable
	// SizeLimitExceeded means the value or metadata buffer's required
	// size exceeds the configured size limit.
	SizeLimitExceeded
	// AllocationFailed means the buffer manager could not grow a
	// buffer to the requested size.
	AllocationFailed
	// InternalInvariant means the write cursor outran the buffer after
	// a capacity check already confirmed there was room, or the parsed
	// tree held a node type the encoder does not recognise; this
	// indicates a bug in the encoder, its parser or its buffer manager.
	InternalInvariant
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidJSON:
		return "InvalidJSON"
	case NumberUnparseable:
		return "NumberUnparseable"
	case SizeLimitExceeded:
		return "SizeLimitExceeded"
	case AllocationFailed:
		return "AllocationFailed"
	case InternalInvariant:
		return "InternalInvariant"
	default:
		return "Unknown"
	}
}

// Error is the structured error type every encode failure surfaces as.
type Error struct {
	Kind ErrorKind
	msg  string
	// cause is the wrapped underlying error, if any (e.g. a JSON
	// syntax error, or an allocation failure from the BufferManager).
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.msg, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, msg: msg}
}

func wrapError(kind ErrorKind, msg string, cause error) *Error {
	return &Error{Kind: kind, msg: msg, cause: errors.WithStack(cause)}
}

// IsKind reports whether err is a *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Kind == kind
	}
	return false
}

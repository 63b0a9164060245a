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

// Package encodecmd implements the variant-encode command's argument
// parsing and run loop, split out from main so it can be tested without a
// process boundary, following the teacher's cmd/<tool> + <tool>cmd split.
package encodecmd

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/dolthub/variant/store/pool"
	"github.com/dolthub/variant/variant"
)

// Options are the parsed command-line flags for variant-encode.
type Options struct {
	// InPath is the JSON document to read. Empty means read from stdin.
	InPath string
	// OutPrefix is the prefix for the two output files, <prefix>.value
	// and <prefix>.metadata.
	OutPrefix string
	// SizeLimit overrides variant.DefaultSizeLimit when positive.
	SizeLimit int
}

// ParseArgs parses a minimal flag set by hand: -in, -out, -size-limit.
// There's no flag library in play here because the whole surface is three
// flags; reach for one the day this grows a fourth.
func ParseArgs(args []string) (Options, error) {
	var opts Options
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-in":
			i++
			if i >= len(args) {
				return Options{}, errors.New("-in requires a value")
			}
			opts.InPath = args[i]
		case "-out":
			i++
			if i >= len(args) {
				return Options{}, errors.New("-out requires a value")
			}
			opts.OutPrefix = args[i]
		case "-size-limit":
			i++
			if i >= len(args) {
				return Options{}, errors.New("-size-limit requires a value")
			}
			n, err := parsePositiveInt(args[i])
			if err != nil {
				return Options{}, errors.Wrap(err, "-size-limit")
			}
			opts.SizeLimit = n
		default:
			return Options{}, fmt.Errorf("unrecognized argument: %s", args[i])
		}
	}

	if opts.OutPrefix == "" {
		return Options{}, errors.New("-out is required")
	}

	return opts, nil
}

func parsePositiveInt(s string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", n)
	}
	return n, nil
}

// Run executes one encode: it reads the JSON document (from opts.InPath or
// stdin), encodes it, and writes the value and metadata buffers to
// opts.OutPrefix + ".value" / ".metadata".
func Run(opts Options, stdin io.Reader, logger *zap.Logger) error {
	runID, err := uuid.NewRandom()
	if err != nil {
		return errors.Wrap(err, "could not generate run id")
	}
	logger = logger.With(zap.String("run_id", runID.String()))

	text, err := readInput(opts.InPath, stdin)
	if err != nil {
		return errors.Wrap(err, "could not read input document")
	}

	cfg := variant.DefaultConfig()
	if opts.SizeLimit > 0 {
		cfg.SizeLimit = opts.SizeLimit
	}

	bufs := variant.NewMemoryBufferManager(pool.NewBuffPool())
	valueSize, metaSize, err := variant.Encode(text, bufs, cfg)
	if err != nil {
		return errors.Wrap(err, "encode failed")
	}

	logger.Info("encoded document",
		zap.Int("value_bytes", valueSize),
		zap.Int("metadata_bytes", metaSize),
	)

	if err := ioutil.WriteFile(opts.OutPrefix+".value", bufs.ViewValue()[:valueSize], 0o644); err != nil {
		return errors.Wrap(err, "could not write value file")
	}
	if err := ioutil.WriteFile(opts.OutPrefix+".metadata", bufs.ViewMetadata()[:metaSize], 0o644); err != nil {
		return errors.Wrap(err, "could not write metadata file")
	}
	return nil
}

func readInput(path string, stdin io.Reader) (string, error) {
	if path == "" {
		b, err := ioutil.ReadAll(stdin)
		return string(b), err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	b, err := ioutil.ReadAll(f)
	return string(b), err
}

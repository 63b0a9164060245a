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

// Command variant-encode reads a single JSON document from a file (or
// stdin) and writes its Variant binary encoding as two files: <out>.value
// and <out>.metadata.
package main

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/dolthub/variant/cmd/variant-encode/encodecmd"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "could not initialize logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(os.Args[1:], os.Stdin, logger); err != nil {
		logger.Error("variant-encode failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, logger *zap.Logger) error {
	opts, err := encodecmd.ParseArgs(args)
	if err != nil {
		return err
	}

	return encodecmd.Run(opts, stdin, logger)
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !tracecodec_bounded

// Command tracecodec inspects and converts trace entry streams and the
// framed batches written by lib/tracebuf.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Root().Execute(os.Args[1:]); err != nil {
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

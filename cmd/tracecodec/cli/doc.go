// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the small command framework behind the tracecodec
// binary.
//
// A [Command] is a node in a tree: interior nodes dispatch on the first
// positional argument, leaves parse a pflag set and run. Help output,
// typo suggestions for commands and flags, the process logger, and
// terminal-aware JSON rendering live here so that individual commands
// only describe their flags and behavior.
package cli

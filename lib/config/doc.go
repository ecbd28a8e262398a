// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the tracecodec CLI configuration from YAML.
//
// Configuration comes from a single file named by either the
// TRACECODEC_CONFIG environment variable (via [Load]) or a --config
// flag (via [LoadFile]). There is no discovery and no search path.
// Without a file the CLI runs on [Default].
//
// Path fields support ${HOME} and ${VAR:-default} expansion after
// loading. No environment variable overrides any other value.
package config

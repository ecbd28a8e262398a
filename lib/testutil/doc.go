// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil holds helpers shared by tests that coordinate with
// goroutines.
//
// [RequireReceive] and [RequireClosed] wrap a channel wait in a
// timeout so that a broken producer fails the test instead of hanging
// it. They are the only place tests read the wall clock.
package testutil

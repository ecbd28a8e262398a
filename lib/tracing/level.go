// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tracing

import (
	"fmt"
	"strings"
)

// Level is the severity of a callsite. Levels are totally ordered by
// ascending severity: LevelTrace < LevelDebug < LevelInfo < LevelWarn <
// LevelError.
type Level int8

const (
	// LevelTrace designates very low priority, often extremely
	// verbose, information.
	LevelTrace Level = iota

	// LevelDebug designates lower priority information.
	LevelDebug

	// LevelInfo designates useful information.
	LevelInfo

	// LevelWarn designates hazardous situations.
	LevelWarn

	// LevelError designates very serious errors.
	LevelError
)

// String returns the uppercase level name ("TRACE", "DEBUG", "INFO",
// "WARN", "ERROR").
func (level Level) String() string {
	switch level {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("Level(%d)", int8(level))
	}
}

// Valid reports whether level is one of the five defined levels.
func (level Level) Valid() bool {
	return level >= LevelTrace && level <= LevelError
}

// ParseLevel parses a level name. Matching is case-insensitive, so
// "warn", "Warn" and "WARN" all return LevelWarn.
func ParseLevel(name string) (Level, error) {
	switch strings.ToUpper(name) {
	case "TRACE":
		return LevelTrace, nil
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARN":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	default:
		return 0, fmt.Errorf("unknown level %q", name)
	}
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package traceserde

import (
	"fmt"

	"github.com/bureau-foundation/tracecodec/lib/serial"
	"github.com/bureau-foundation/tracecodec/lib/tracing"
)

// Level is a serializable verbosity level. Levels order from most
// verbose (LevelTrace) to least (LevelError).
type Level uint8

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

var levelTokens = [...]string{
	LevelTrace: "TRACE",
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

// AdaptLevel converts a tracing level.
func AdaptLevel(level tracing.Level) Level {
	switch level {
	case tracing.LevelTrace:
		return LevelTrace
	case tracing.LevelDebug:
		return LevelDebug
	case tracing.LevelInfo:
		return LevelInfo
	case tracing.LevelWarn:
		return LevelWarn
	case tracing.LevelError:
		return LevelError
	default:
		panic(fmt.Sprintf("traceserde: invalid tracing level %d", level))
	}
}

// String returns the wire token.
func (level Level) String() string {
	if int(level) < len(levelTokens) {
		return levelTokens[level]
	}
	return fmt.Sprintf("Level(%d)", uint8(level))
}

// Tracing converts back to the tracing level.
func (level Level) Tracing() tracing.Level {
	switch level {
	case LevelTrace:
		return tracing.LevelTrace
	case LevelDebug:
		return tracing.LevelDebug
	case LevelInfo:
		return tracing.LevelInfo
	case LevelWarn:
		return tracing.LevelWarn
	default:
		return tracing.LevelError
	}
}

func (level Level) Serialize(serializer serial.Serializer) error {
	if int(level) >= len(levelTokens) {
		return fmt.Errorf("serializing level: invalid level %d", uint8(level))
	}
	return serializer.SerializeString(levelTokens[level])
}

func (Level) sealed() {}

// DecodeLevel reads a level token. Tokens are matched exactly.
func DecodeLevel(deserializer serial.Deserializer) (Level, error) {
	token, err := deserializer.DeserializeString()
	if err != nil {
		return 0, fmt.Errorf("level: %w", err)
	}
	for level, candidate := range levelTokens {
		if candidate == token {
			return Level(level), nil
		}
	}
	return 0, fmt.Errorf("unknown level %q: %w", token, serial.ErrUnexpectedKind)
}

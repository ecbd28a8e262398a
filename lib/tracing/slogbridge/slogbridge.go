// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package slogbridge turns log/slog records into tracing events, so
// code that logs through slog can feed the same serialization path as
// code that records tracing events directly.
//
// Each record becomes an event whose callsite is named by the log
// message and whose fields are "message" followed by the record's
// attributes in order. Group attributes are flattened with "." between
// path segments. If a key repeats, the last value wins and keeps the
// position of the first.
package slogbridge

import (
	"context"
	"log/slog"
	"path"
	"runtime"
	"strings"
	"time"

	"github.com/bureau-foundation/tracecodec/lib/tracing"
)

// MessageField is the field holding the log message.
const MessageField = "message"

// Level maps a slog level to the nearest tracing level. Levels below
// slog.LevelDebug map to LevelTrace.
func Level(level slog.Level) tracing.Level {
	switch {
	case level < slog.LevelDebug:
		return tracing.LevelTrace
	case level < slog.LevelInfo:
		return tracing.LevelDebug
	case level < slog.LevelWarn:
		return tracing.LevelInfo
	case level < slog.LevelError:
		return tracing.LevelWarn
	default:
		return tracing.LevelError
	}
}

// Event converts record to a contextual tracing event under target.
// extra attributes are recorded before the record's own.
func Event(record slog.Record, target string, extra ...slog.Attr) *tracing.Event {
	var fields fieldList
	fields.add(MessageField, tracing.String(record.Message))
	for _, attr := range extra {
		fields.addAttr("", attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		fields.addAttr("", attr)
		return true
	})

	callsite := tracing.Callsite{
		Name:   record.Message,
		Target: target,
		Level:  Level(record.Level),
		Fields: fields.names,
		Kind:   tracing.KindEvent,
	}
	if record.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{record.PC}).Next()
		callsite.File = frame.File
		if frame.Line > 0 {
			callsite.Line = uint32(frame.Line)
		}
		callsite.ModulePath = packagePath(frame.Function)
	}
	metadata := tracing.NewMetadata(callsite)
	return tracing.NewEvent(metadata, metadata.Fields().Values(fields.values...))
}

// packagePath extracts "example.com/pkg" from a fully qualified
// function name such as "example.com/pkg.(*T).Method".
func packagePath(function string) string {
	if function == "" {
		return ""
	}
	dir, last := path.Split(function)
	if dot := strings.IndexByte(last, '.'); dot >= 0 {
		last = last[:dot]
	}
	return dir + last
}

type fieldList struct {
	names  []string
	values []tracing.Value
	index  map[string]int
}

func (f *fieldList) add(name string, value tracing.Value) {
	if f.index == nil {
		f.index = make(map[string]int)
	}
	if i, ok := f.index[name]; ok {
		f.values[i] = value
		return
	}
	f.index[name] = len(f.names)
	f.names = append(f.names, name)
	f.values = append(f.values, value)
}

func (f *fieldList) addAttr(prefix string, attr slog.Attr) {
	value := attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}
	key := attr.Key
	if prefix != "" {
		key = prefix + "." + key
	}
	if value.Kind() == slog.KindGroup {
		group := value.Group()
		if len(group) == 0 {
			return
		}
		// An unnamed group is inlined into its parent.
		if attr.Key == "" {
			key = prefix
		}
		for _, member := range group {
			f.addAttr(key, member)
		}
		return
	}
	f.add(key, convert(value))
}

func convert(value slog.Value) tracing.Value {
	switch value.Kind() {
	case slog.KindBool:
		return tracing.Bool(value.Bool())
	case slog.KindInt64:
		return tracing.Int64(value.Int64())
	case slog.KindUint64:
		return tracing.Uint64(value.Uint64())
	case slog.KindFloat64:
		return tracing.Float64(value.Float64())
	case slog.KindString:
		return tracing.String(value.String())
	case slog.KindDuration:
		return tracing.Debug(value.Duration())
	case slog.KindTime:
		return tracing.String(value.Time().Format(time.RFC3339Nano))
	default:
		return tracing.Debug(value.Any())
	}
}

// Handler is a slog.Handler that converts each record to an event and
// passes it to a sink. The event is only valid during the sink call.
type Handler struct {
	target string
	level  slog.Leveler
	sink   func(context.Context, *tracing.Event) error
	attrs  []slog.Attr
	groups []string
}

var _ slog.Handler = (*Handler)(nil)

// NewHandler returns a Handler that emits events under target for
// records at or above level. A nil level means slog.LevelInfo.
func NewHandler(target string, level slog.Leveler, sink func(context.Context, *tracing.Event) error) *Handler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &Handler{target: target, level: level, sink: sink}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	if len(h.groups) > 0 {
		// Record attributes belong to the innermost open group.
		var members []slog.Attr
		record.Attrs(func(attr slog.Attr) bool {
			members = append(members, attr)
			return true
		})
		grouped := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
		if len(members) > 0 {
			grouped.AddAttrs(nest(h.groups, members))
		}
		record = grouped
	}
	return h.sink(ctx, Event(record, h.target, h.attrs...))
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.attrs = append(clone.attrs[:len(clone.attrs):len(clone.attrs)], nest(h.groups, attrs))
	return &clone
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(clone.groups[:len(clone.groups):len(clone.groups)], name)
	return &clone
}

// nest wraps attrs in one group per name, outermost first. With no
// names it returns an unnamed group, which addAttr inlines.
func nest(groups []string, attrs []slog.Attr) slog.Attr {
	members := make([]any, len(attrs))
	for i, attr := range attrs {
		members[i] = attr
	}
	attr := slog.Group("", members...)
	for i := len(groups) - 1; i >= 0; i-- {
		attr = slog.Group(groups[i], attr)
	}
	return attr
}

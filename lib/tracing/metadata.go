// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tracing

import "fmt"

// Kind says whether a callsite produces spans or events.
type Kind uint8

const (
	// KindEvent marks a callsite that emits point-in-time events.
	KindEvent Kind = 1

	// KindSpan marks a callsite that opens spans.
	KindSpan Kind = 2
)

// Callsite is the static description a [Metadata] is built from.
// ModulePath and File are optional (empty means unknown), as is Line
// (zero means unknown; source lines start at 1).
type Callsite struct {
	Name       string
	Target     string
	Level      Level
	ModulePath string
	File       string
	Line       uint32
	Fields     []string
	Kind       Kind
}

// Metadata describes one instrumentation callsite. Every event or span
// created at the callsite shares the same Metadata. Immutable.
type Metadata struct {
	name       string
	target     string
	level      Level
	modulePath string
	file       string
	line       uint32
	fields     *FieldSet
	kind       Kind
}

// NewMetadata builds callsite metadata. Panics if the callsite's level
// or kind is not one of the defined values, or if its field names
// contain a duplicate.
func NewMetadata(callsite Callsite) *Metadata {
	if !callsite.Level.Valid() {
		panic(fmt.Sprintf("tracing: callsite %q has invalid level %d", callsite.Name, callsite.Level))
	}
	if callsite.Kind != KindEvent && callsite.Kind != KindSpan {
		panic(fmt.Sprintf("tracing: callsite %q has invalid kind %d", callsite.Name, callsite.Kind))
	}
	return &Metadata{
		name:       callsite.Name,
		target:     callsite.Target,
		level:      callsite.Level,
		modulePath: callsite.ModulePath,
		file:       callsite.File,
		line:       callsite.Line,
		fields:     NewFieldSet(callsite.Fields...),
		kind:       callsite.Kind,
	}
}

// Name returns the callsite name.
func (metadata *Metadata) Name() string { return metadata.name }

// Target returns the component the callsite belongs to (by convention a
// package path or logger name).
func (metadata *Metadata) Target() string { return metadata.target }

// Level returns the callsite's severity.
func (metadata *Metadata) Level() Level { return metadata.level }

// ModulePath returns the module path, if known.
func (metadata *Metadata) ModulePath() (string, bool) {
	return metadata.modulePath, metadata.modulePath != ""
}

// File returns the source file, if known.
func (metadata *Metadata) File() (string, bool) {
	return metadata.file, metadata.file != ""
}

// Line returns the source line, if known.
func (metadata *Metadata) Line() (uint32, bool) {
	return metadata.line, metadata.line != 0
}

// Fields returns the callsite's declared fields.
func (metadata *Metadata) Fields() *FieldSet { return metadata.fields }

// IsSpan reports whether the callsite opens spans.
func (metadata *Metadata) IsSpan() bool { return metadata.kind == KindSpan }

// IsEvent reports whether the callsite emits events.
func (metadata *Metadata) IsEvent() bool { return metadata.kind == KindEvent }

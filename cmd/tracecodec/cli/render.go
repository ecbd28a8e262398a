// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// Color modes accepted by [Renderer].
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Renderer writes command output, syntax highlighting text formats
// when color is enabled.
type Renderer struct {
	// Color is ColorAuto, ColorAlways or ColorNever. Auto highlights
	// only when the writer is a terminal.
	Color string

	// Style is a chroma style name.
	Style string
}

// highlighted lists the formats rendered through chroma. Anything else
// is written as is.
var highlighted = map[string]bool{"json": true, "yaml": true}

// Write writes data in the named format to w. A highlighting failure
// falls back to the plain bytes.
func (r Renderer) Write(w io.Writer, format string, data []byte) error {
	if highlighted[format] && r.colorize(w) {
		var buffer strings.Builder
		if err := quick.Highlight(&buffer, string(data), format, "terminal256", r.Style); err == nil {
			data = []byte(buffer.String())
		}
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func (r Renderer) colorize(w io.Writer) bool {
	switch r.Color {
	case ColorAlways:
		return true
	case ColorAuto:
		file, ok := w.(*os.File)
		return ok && IsTerminal(file)
	default:
		return false
	}
}

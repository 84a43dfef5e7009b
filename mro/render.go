package mro

import (
	"fmt"
	"strings"
)

// indentTab is the indentation unit of generated mro text.
const indentTab = 4

// MroDisplay is implemented by every entity that can appear in generated mro
// text. An entity renders either in its natural (shortest correct) form or
// padded to a caller-supplied column width so that several entities sharing
// a table line up.
//
// Aggregate entities that do not take part in width negotiation report a
// MinWidth of 0 and interpret the width argument of MroStringWidth as their
// base indentation instead of a column width.
type MroDisplay interface {
	// MroString returns the natural textual form, without padding.
	MroString() string

	// MinWidth returns the length of the natural form for entities that
	// negotiate a column width, and 0 for aggregates.
	MinWidth() int

	// MroStringWidth renders the entity padded (or indented) to width.
	// Passing a width smaller than MinWidth is a caller-logic error and
	// panics.
	MroStringWidth(width int) string
}

// pad left-aligns s in a field of exactly width characters. A width smaller
// than the string is a programming error in the caller's width negotiation,
// never a runtime condition, so it panics rather than returning an error.
func pad(s string, width int) string {
	if width < len(s) {
		panic(fmt.Sprintf("mro: need a minimum width of %d, found %d", len(s), width))
	}
	return s + strings.Repeat(" ", width-len(s))
}

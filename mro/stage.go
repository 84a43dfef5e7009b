package mro

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
)

// InAndOut is one group of stage variables: the inputs and outputs of either
// the stage itself or of its split phase.
type InAndOut struct {
	Inputs  []Field
	Outputs []Field
}

// StageMro carries everything needed to render one stage definition. A stage
// either has a split phase, in which case ChunkInOut holds both chunk inputs
// and chunk outputs, or it has none and ChunkInOut is nil; there is no
// partial-phase state. The renderer only reads a StageMro, it never mutates
// one.
type StageMro struct {
	StageName   string    // e.g. CORRECT_BARCODES in `stage CORRECT_BARCODES(..)`
	AdapterName string    // e.g. cr_slfe in `src comp "cr_slfe martian correct_barcodes"`
	StageKey    string    // e.g. correct_barcodes, the key in the stage map
	StageInOut  InAndOut  // inputs and outputs of the stage
	ChunkInOut  *InAndOut // inputs and outputs of the chunk, nil for main-only stages
	Using       Using     // attributes of the using section
}

// NewStageMro assembles a stage definition from a single stage name, deriving
// the declaration name (SCREAMING_SNAKE) and the stage key (snake_case) from
// it, then validates the chunk groups against the stage groups:
//
//   - a chunk input sharing a name with a stage input is rejected,
//   - a chunk output that exactly duplicates a stage output (same name, same
//     type) is dropped from the chunk section,
//   - a chunk output sharing a name with a stage output of a different type
//     is rejected.
func NewStageMro(name, adapterName string, stageInOut InAndOut, chunkInOut *InAndOut, using Using) (*StageMro, error) {
	s := &StageMro{
		StageName:   strcase.ToScreamingSnake(name),
		AdapterName: adapterName,
		StageKey:    strcase.ToSnake(name),
		StageInOut:  stageInOut,
		ChunkInOut:  chunkInOut,
		Using:       using,
	}
	if err := s.verifyAndMinify(); err != nil {
		return nil, err
	}
	return s, nil
}

// verifyAndMinify enforces the chunk/stage naming rules and removes chunk
// outputs that exactly duplicate stage outputs. O(mn) is good enough here.
func (s *StageMro) verifyAndMinify() error {
	if s.ChunkInOut == nil {
		return nil
	}
	for _, fc := range s.ChunkInOut.Inputs {
		for _, fs := range s.StageInOut.Inputs {
			if fc.name == fs.name {
				return fmt.Errorf("mro: stage %s: identical field %q in stage and chunk inputs", s.StageName, fc.name)
			}
		}
	}
	var minified []Field
	for _, fc := range s.ChunkInOut.Outputs {
		duplicate := false
		for _, fs := range s.StageInOut.Outputs {
			if fc.name != fs.name {
				continue
			}
			if fc.ty != fs.ty {
				return fmt.Errorf("mro: stage %s: field %q appears in stage and chunk outputs with different types (%s vs %s)",
					s.StageName, fc.name, fs.ty, fc.ty)
			}
			duplicate = true
		}
		if !duplicate {
			minified = append(minified, fc)
		}
	}
	s.ChunkInOut = &InAndOut{Inputs: s.ChunkInOut.Inputs, Outputs: minified}
	return nil
}

// typeColumnWidth is the shared width of the type column: the widest type
// across stage inputs, stage outputs and, when present, chunk inputs and
// chunk outputs. One width for all four groups keeps the in/out lines
// aligned across the split-phase boundary.
func (s *StageMro) typeColumnWidth() int {
	w := 0
	for _, f := range s.StageInOut.Inputs {
		w = max(w, f.ty.MinWidth())
	}
	for _, f := range s.StageInOut.Outputs {
		w = max(w, f.ty.MinWidth())
	}
	if s.ChunkInOut != nil {
		for _, f := range s.ChunkInOut.Inputs {
			w = max(w, f.ty.MinWidth())
		}
		for _, f := range s.ChunkInOut.Outputs {
			w = max(w, f.ty.MinWidth())
		}
	}
	return w
}

// writeFieldLines emits one declaration line per field: the in/out keyword in
// a 3-character column, the type padded to width, the name, a trailing comma.
func writeFieldLines(b *strings.Builder, indent int, keyword string, fields []Field, width int) {
	for _, f := range fields {
		fmt.Fprintf(b, "%*s%-3s %s,\n", indent, "", keyword, f.MroStringWidth(width))
	}
}

// MinWidth implements MroDisplay. A stage block does not negotiate a width.
func (s *StageMro) MinWidth() int { return 0 }

// MroString implements MroDisplay.
func (s *StageMro) MroString() string { return s.MroStringWidth(0) }

// MroStringWidth renders the whole stage block at the given base
// indentation:
//
//	stage SORT_ITEMS(
//	    in  int[] unsorted,
//	    out int[] sorted,
//	    src comp  "my_stage martian sort_items",
//	) split (
//	    in  int   start,
//	    out int[] chunk_sorted,
//	) using (
//	    mem_gb = 1,
//	)
//
// The split section appears only when chunk groups exist and the using
// section only when at least one knob is set.
func (s *StageMro) MroStringWidth(indent int) string {
	minW := s.typeColumnWidth()
	inner := indent + indentTab

	var b strings.Builder
	fmt.Fprintf(&b, "%*sstage %s(\n", indent, "", s.StageName)
	writeFieldLines(&b, inner, "in", s.StageInOut.Inputs, minW)
	writeFieldLines(&b, inner, "out", s.StageInOut.Outputs, minW)
	// The comp keyword sits in the type column; keep it padded even when
	// every field type is narrower than it.
	fmt.Fprintf(&b, "%*s%-3s %s %q,\n", inner, "", "src",
		pad("comp", max(minW, len("comp"))),
		s.AdapterName+" martian "+s.StageKey)
	if s.ChunkInOut != nil {
		fmt.Fprintf(&b, "%*s) split (\n", indent, "")
		writeFieldLines(&b, inner, "in", s.ChunkInOut.Inputs, minW)
		writeFieldLines(&b, inner, "out", s.ChunkInOut.Outputs, minW)
	}
	if s.Using.NeedUsing() {
		fmt.Fprintf(&b, "%*s) ", indent, "")
		b.WriteString(s.Using.MroStringWidth(indent))
	} else {
		fmt.Fprintf(&b, "%*s)\n", indent, "")
	}
	return b.String()
}

func (s *StageMro) String() string { return s.MroString() }

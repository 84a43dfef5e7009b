package mro

import "strings"

// FiletypeHeader collects the distinct file-type extensions referenced by a
// batch of stage definitions, in first-seen order, so that one filetype line
// per extension can be rendered ahead of the stage bodies. A header is owned
// by a single generation call and discarded with it.
type FiletypeHeader struct {
	seen map[string]struct{}
	exts []string
}

// AddStage records every file-type extension referenced by the stage,
// scanning both the stage-level and chunk-level groups.
func (h *FiletypeHeader) AddStage(s *StageMro) {
	h.addFields(s.StageInOut.Inputs)
	h.addFields(s.StageInOut.Outputs)
	if s.ChunkInOut != nil {
		h.addFields(s.ChunkInOut.Inputs)
		h.addFields(s.ChunkInOut.Outputs)
	}
}

func (h *FiletypeHeader) addFields(fields []Field) {
	for _, f := range fields {
		ext, ok := f.ty.fileExtension()
		if !ok {
			continue
		}
		if h.seen == nil {
			h.seen = make(map[string]struct{})
		}
		if _, dup := h.seen[ext]; dup {
			continue
		}
		h.seen[ext] = struct{}{}
		h.exts = append(h.exts, ext)
	}
}

// MroString renders one filetype line per distinct extension followed by a
// separating blank line, or nothing when no stage referenced a file type.
func (h *FiletypeHeader) MroString() string {
	if len(h.exts) == 0 {
		return ""
	}
	var b strings.Builder
	for _, ext := range h.exts {
		b.WriteString("filetype ")
		b.WriteString(ext)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

func (h *FiletypeHeader) String() string { return h.MroString() }

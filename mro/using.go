package mro

import (
	"fmt"
	"strconv"
	"strings"
)

// Volatile is the value space of the volatile using-attribute. The
// declaration language currently admits a single value, strict.
type Volatile int

// VolatileStrict renders as "strict".
const VolatileStrict Volatile = iota + 1

// ParseVolatile parses the textual form of a volatile attribute.
func ParseVolatile(s string) (Volatile, error) {
	if s == "strict" {
		return VolatileStrict, nil
	}
	return 0, fmt.Errorf("mro: expected strict for volatile, found %q", s)
}

// MroString implements MroDisplay.
func (v Volatile) MroString() string {
	if v == VolatileStrict {
		return "strict"
	}
	panic(fmt.Sprintf("mro: invalid volatile value %d", int(v)))
}

// MinWidth implements MroDisplay.
func (v Volatile) MinWidth() int { return len(v.MroString()) }

// MroStringWidth implements MroDisplay.
func (v Volatile) MroStringWidth(width int) string { return pad(v.MroString(), width) }

func (v Volatile) String() string { return v.MroString() }

// Using holds the attributes of the optional using section of a stage
// definition, for example:
//
//	using (
//	    mem_gb  = 4,
//	    threads = 16,
//	)
//
// Each knob is independently present or absent; a nil knob is omitted from
// the rendered block, and the block itself is omitted entirely when every
// knob is nil.
type Using struct {
	MemGB    *int
	VmemGB   *int
	Threads  *int
	Volatile *Volatile
}

// NeedUsing reports whether any knob is set, i.e. whether the using section
// appears at all.
func (u Using) NeedUsing() bool {
	return u.MemGB != nil || u.VmemGB != nil || u.Threads != nil || u.Volatile != nil
}

type usingKnob struct {
	key   string
	value string
}

// knobs lists the present attributes in the fixed declaration order of the
// using section.
func (u Using) knobs() []usingKnob {
	var knobs []usingKnob
	if u.MemGB != nil {
		knobs = append(knobs, usingKnob{"mem_gb", strconv.Itoa(*u.MemGB)})
	}
	if u.VmemGB != nil {
		knobs = append(knobs, usingKnob{"vmem_gb", strconv.Itoa(*u.VmemGB)})
	}
	if u.Threads != nil {
		knobs = append(knobs, usingKnob{"threads", strconv.Itoa(*u.Threads)})
	}
	if u.Volatile != nil {
		knobs = append(knobs, usingKnob{"volatile", u.Volatile.MroString()})
	}
	return knobs
}

// MinWidth implements MroDisplay. The using block does not negotiate a
// column width with its siblings.
func (u Using) MinWidth() int { return 0 }

// MroString implements MroDisplay.
func (u Using) MroString() string { return u.MroStringWidth(0) }

// MroStringWidth renders the block with two alignments: w1 is the outer
// indentation supplied by the enclosing stage,
//
//	using (
//	         mem_gb = 1,
//	     )
//	<---><-->
//	  w1  tab
//
// and the key column is aligned internally to the widest present key.
func (u Using) MroStringWidth(w1 int) string {
	knobs := u.knobs()
	if len(knobs) == 0 {
		return ""
	}
	w2 := 0
	for _, k := range knobs {
		w2 = max(w2, len(k.key))
	}
	var b strings.Builder
	b.WriteString("using (\n")
	for _, k := range knobs {
		fmt.Fprintf(&b, "%*s%s = %s,\n", w1+indentTab, "", pad(k.key, w2), k.value)
	}
	fmt.Fprintf(&b, "%*s)\n", w1, "")
	return b.String()
}

func (u Using) String() string { return u.MroString() }

package mro

// martianTokens are reserved words of the declaration language. None of them
// may be used as a field name.
var martianTokens = []string{
	"in", "out", "stage", "volatile", "strict", "true", "split", "filetype",
	"src", "py", "comp", "retain",
}

type primaryKind int

const (
	primaryInt primaryKind = iota + 1
	primaryFloat
	primaryStr
	primaryBool
	primaryMap
	primaryPath
	primaryFileType
)

// PrimaryType is one of the primary data types of the martian world. The set
// is closed: the fixed variants below plus file types parameterized by an
// extension string. PrimaryType values are comparable; equality is
// structural, so no two distinct extensions compare equal.
type PrimaryType struct {
	kind primaryKind
	ext  string // extension, set only for file types
}

// The fixed primary types.
var (
	Int   = PrimaryType{kind: primaryInt}
	Float = PrimaryType{kind: primaryFloat}
	Str   = PrimaryType{kind: primaryStr}
	Bool  = PrimaryType{kind: primaryBool}
	Map   = PrimaryType{kind: primaryMap}
	Path  = PrimaryType{kind: primaryPath}
)

// FileTypeOf returns the primary type of files carrying the given extension.
// The extension renders verbatim as the type token.
func FileTypeOf(ext string) PrimaryType {
	return PrimaryType{kind: primaryFileType, ext: ext}
}

// MroString returns the canonical type token.
func (p PrimaryType) MroString() string {
	switch p.kind {
	case primaryInt:
		return "int"
	case primaryFloat:
		return "float"
	case primaryStr:
		return "string"
	case primaryBool:
		return "bool"
	case primaryMap:
		return "map"
	case primaryPath:
		return "path"
	case primaryFileType:
		return p.ext
	}
	panic("mro: invalid primary type")
}

// MinWidth implements MroDisplay.
func (p PrimaryType) MinWidth() int { return len(p.MroString()) }

// MroStringWidth implements MroDisplay.
func (p PrimaryType) MroStringWidth(width int) string { return pad(p.MroString(), width) }

func (p PrimaryType) String() string { return p.MroString() }

// Type is a primary type or a one-level-deep array of a primary type. There
// is no nested-array or typed-map representation in the declaration
// language.
type Type struct {
	primary PrimaryType
	array   bool
}

// Primary wraps a primary type into a full martian type.
func Primary(p PrimaryType) Type { return Type{primary: p} }

// Array is the array of the given primary type.
func Array(p PrimaryType) Type { return Type{primary: p, array: true} }

// fileExtension reports the extension when the underlying primary type is a
// file type.
func (t Type) fileExtension() (string, bool) {
	if t.primary.kind == primaryFileType {
		return t.primary.ext, true
	}
	return "", false
}

// MroString returns the type token, with a [] suffix for arrays.
func (t Type) MroString() string {
	if t.array {
		return t.primary.MroString() + "[]"
	}
	return t.primary.MroString()
}

// MinWidth implements MroDisplay.
func (t Type) MinWidth() int { return len(t.MroString()) }

// MroStringWidth implements MroDisplay.
func (t Type) MroStringWidth(width int) string { return pad(t.MroString(), width) }

func (t Type) String() string { return t.MroString() }

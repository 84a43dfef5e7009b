package mro

import (
	"fmt"
	"reflect"
)

// MartianFileType is implemented by native types whose identity is a
// canonical filesystem extension. Such types map to a named file type in the
// declaration language instead of a generic path.
type MartianFileType interface {
	// MroExtension returns the canonical extension, e.g. "txt" or
	// "fastq.lz4", without a leading dot.
	MroExtension() string
}

// FilePath is a filesystem path with no particular extension. It maps to the
// martian path type where a plain string would map to string.
type FilePath string

// Void is the empty variable set. Use it as the input or output type of a
// stage phase that declares no variables.
type Void struct{}

var (
	fileTypeIface = reflect.TypeOf((*MartianFileType)(nil)).Elem()
	filePathType  = reflect.TypeOf(FilePath(""))
)

// PrimaryTypeOf resolves a native Go type to its martian primary type. The
// rules mirror the capability table of the declaration language:
//
//   - integer and unsigned kinds of any width map to int
//   - bool maps to bool, float kinds map to float
//   - string and named string kinds map to string, FilePath maps to path
//   - a pointer maps like its element (martian has no optional marker;
//     absence is a runtime null, not a declared type)
//   - any map kind maps to the untyped martian map
//   - any type implementing MartianFileType maps to its extension
//
// A type with none of these capabilities cannot be declared; the gap is
// reported as an error so that generation fails instead of emitting a wrong
// token.
func PrimaryTypeOf(t reflect.Type) (PrimaryType, error) {
	if ext, ok := fileTypeExtension(t); ok {
		return FileTypeOf(ext), nil
	}
	if t == filePathType {
		return Path, nil
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int, nil
	case reflect.Bool:
		return Bool, nil
	case reflect.Float32, reflect.Float64:
		return Float, nil
	case reflect.String:
		return Str, nil
	case reflect.Map:
		return Map, nil
	case reflect.Pointer:
		return PrimaryTypeOf(t.Elem())
	}
	return PrimaryType{}, fmt.Errorf("mro: no martian primary type for Go type %s", t)
}

// TypeOf resolves a native Go type to a full martian type. It promotes the
// primary resolution of PrimaryTypeOf and adds the one explicit container
// rule: a slice or array of a primary-mappable element becomes a martian
// array. Pointers are erased before either rule applies.
func TypeOf(t reflect.Type) (Type, error) {
	switch t.Kind() {
	case reflect.Pointer:
		return TypeOf(t.Elem())
	case reflect.Slice, reflect.Array:
		elem, err := PrimaryTypeOf(t.Elem())
		if err != nil {
			return Type{}, fmt.Errorf("mro: unsupported array element for Go type %s: %w", t, err)
		}
		return Array(elem), nil
	}
	p, err := PrimaryTypeOf(t)
	if err != nil {
		return Type{}, err
	}
	return Primary(p), nil
}

// TypeFor resolves the martian type of T.
func TypeFor[T any]() (Type, error) {
	return TypeOf(reflect.TypeOf((*T)(nil)).Elem())
}

// fileTypeExtension reports the declared extension of t, checking the value
// receiver first and the pointer receiver second.
func fileTypeExtension(t reflect.Type) (string, bool) {
	if t.Implements(fileTypeIface) {
		return reflect.Zero(t).Interface().(MartianFileType).MroExtension(), true
	}
	if t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(fileTypeIface) {
		return reflect.New(t).Interface().(MartianFileType).MroExtension(), true
	}
	return "", false
}

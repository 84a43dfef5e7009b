package mro

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/iancoleman/strcase"
)

// Field is one variable of a stage or chunk definition: a validated name
// together with its martian type. For example the stage
//
//	stage SORT_ITEMS(
//	    in  int[] unsorted,
//	    in  bool  reverse,
//	    out int[] sorted,
//	    src comp  "my_stage martian sort_items",
//	)
//
// contains the fields (unsorted, int[]), (reverse, bool) and (sorted, int[]).
type Field struct {
	name string
	ty   Type
}

// NewField builds a field, rejecting names that collide with a reserved
// martian token or use the internal __ prefix. Either violation is a bug in
// the stage definition, not a runtime condition.
func NewField(name string, ty Type) (Field, error) {
	for _, token := range martianTokens {
		if name == token {
			return Field{}, fmt.Errorf("mro: martian token %q cannot be used as a field name", token)
		}
	}
	if strings.HasPrefix(name, "__") {
		return Field{}, fmt.Errorf("mro: field name %q uses the reserved __ prefix", name)
	}
	return Field{name: name, ty: ty}, nil
}

// MustField is NewField for statically known names; it panics on a reserved
// or internal name.
func MustField(name string, ty Type) Field {
	f, err := NewField(name, ty)
	if err != nil {
		panic(err)
	}
	return f
}

// Name returns the variable name.
func (f Field) Name() string { return f.name }

// Type returns the martian type.
func (f Field) Type() Type { return f.ty }

// MroString renders "<type> <name>".
func (f Field) MroString() string {
	return f.ty.MroString() + " " + f.name
}

// MinWidth is the width of the type component. Only the type column takes
// part in cross-field alignment; the name column is never padded.
func (f Field) MinWidth() int { return f.ty.MinWidth() }

// MroStringWidth renders the field with its type padded to width.
func (f Field) MroStringWidth(width int) string {
	return f.ty.MroStringWidth(width) + " " + f.name
}

func (f Field) String() string { return f.MroString() }

// FieldsOf expands a struct value (or pointer to one) into the fields it
// declares, one per exported Go field. The variable name is taken from the
// json tag when present, otherwise it is the snake_case of the Go name; a
// json:"-" field is skipped. Types are resolved through TypeOf, so a field
// of an undeclarable type fails the expansion rather than defaulting.
func FieldsOf(v any) ([]Field, error) {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("mro: cannot expand %T into mro fields: not a struct", v)
	}

	var fields []Field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := strings.Split(sf.Tag.Get("json"), ",")[0]
		if name == "-" {
			continue
		}
		if name == "" {
			name = strcase.ToSnake(sf.Name)
		}
		ty, err := TypeOf(sf.Type)
		if err != nil {
			return nil, fmt.Errorf("mro: field %s.%s: %w", t.Name(), sf.Name, err)
		}
		field, err := NewField(name, ty)
		if err != nil {
			return nil, fmt.Errorf("mro: field %s.%s: %w", t.Name(), sf.Name, err)
		}
		fields = append(fields, field)
	}
	return fields, nil
}

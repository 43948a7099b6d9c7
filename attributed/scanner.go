package attributed

import (
	"reflect"
	"slices"
)

// Reader extracts a field's current value from a struct value. Readers never
// modify the value they are given.
type Reader func(v reflect.Value) any

// ScalarAnnotation marks a whole type as scalar.
type ScalarAnnotation struct {
	Mutable bool
}

// ScannedField is one loggable field as discovered by a Scanner.
type ScannedField struct {
	// Name is the Go field name.
	Name        string
	Index       []int
	Read        Reader
	Annotations Annotations
}

// TypeMetadata is everything a Scanner learned about one type.
type TypeMetadata struct {
	// Type is the type as it was logged, possibly a pointer.
	Type reflect.Type

	// Struct is the underlying struct type, or nil when Type does not
	// resolve to a struct.
	Struct reflect.Type

	Scalar *ScalarAnnotation
	Fields []ScannedField
}

// Scanner discovers the fields and annotations of a type. It is invoked at
// most once per type by the exclusive cache.
type Scanner func(t reflect.Type) *TypeMetadata

// ScanType is the reflection-based Scanner. Fields promoted from embedded
// structs are included; a field shadowed by a shallower declaration appears
// once, with the shallower declaration's tag. Unexported fields are skipped.
//
// An embedded struct carrying its own tag is not flattened. When excluded,
// it is listed once as excluded and none of its fields are listed. With any
// other marker or a name, it is listed as a single field holding the whole
// embedded value.
func ScanType(t reflect.Type) *TypeMetadata {
	meta := &TypeMetadata{Type: t}

	st := t
	for st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	if st.Kind() != reflect.Struct {
		return meta
	}
	meta.Struct = st
	owner := st.String()

	// Embedded fields whose promoted fields are not listed.
	var collapsed [][]int

	for _, f := range reflect.VisibleFields(st) {
		if f.Name == "_" && len(f.Index) == 1 {
			if a := parseAnnotations(owner, f.Name, string(f.Tag)); a.Scalar {
				meta.Scalar = &ScalarAnnotation{Mutable: a.Mutable}
			}
			continue
		}
		if underAny(collapsed, f.Index) {
			continue
		}

		if f.Anonymous && isStructLike(f.Type) {
			a := parseAnnotations(owner, f.Name, string(f.Tag))
			switch {
			case a.Excluded:
				collapsed = append(collapsed, f.Index)
			case f.IsExported() && (a.Recognized() || a.Name != ""):
				collapsed = append(collapsed, f.Index)
			default:
				// Its fields are listed on their own.
				continue
			}
			meta.Fields = append(meta.Fields, ScannedField{
				Name:        f.Name,
				Index:       f.Index,
				Read:        fieldReader(f.Index),
				Annotations: a,
			})
			continue
		}

		if !f.IsExported() {
			continue
		}
		meta.Fields = append(meta.Fields, ScannedField{
			Name:        f.Name,
			Index:       f.Index,
			Read:        fieldReader(f.Index),
			Annotations: parseAnnotations(owner, f.Name, string(f.Tag)),
		})
	}
	return meta
}

// underAny reports whether index lies inside one of the prefixes.
func underAny(prefixes [][]int, index []int) bool {
	for _, p := range prefixes {
		if len(index) > len(p) && slices.Equal(index[:len(p)], p) {
			return true
		}
	}
	return false
}

func isStructLike(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}

// fieldReader returns a Reader for the field at index. A nil embedded
// pointer on the path reads as nil.
func fieldReader(index []int) Reader {
	return func(v reflect.Value) any {
		f, err := v.FieldByIndexErr(index)
		if err != nil || !f.CanInterface() {
			return nil
		}
		return f.Interface()
	}
}

// Package destructure provides the default reflection-based destructurer
// used when no destructuring policy handles a value.
package destructure

import (
	"fmt"
	"reflect"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/willibrandon/mtlog-attributed/core"
)

// Destructurer captures structs, collections and scalars. Nested values are
// converted through the factory it is given, so destructuring policies also
// apply below the top level.
type Destructurer struct {
	maxStringLength    int
	maxCollectionCount int
	scalarTypes        map[reflect.Type]bool
	types              *typeCache
}

// NewDestructurer creates a destructurer with default limits.
func NewDestructurer() *Destructurer {
	return NewDestructurerWithLimits(1000, 100)
}

// NewDestructurerWithLimits creates a destructurer with custom limits.
func NewDestructurerWithLimits(maxStringLength, maxCollectionCount int) *Destructurer {
	d := &Destructurer{
		maxStringLength:    maxStringLength,
		maxCollectionCount: maxCollectionCount,
		scalarTypes:        make(map[reflect.Type]bool),
		types:              newTypeCache(),
	}

	// time.Time is not registered: it is formatted instead.
	d.RegisterScalarType(reflect.TypeOf(time.Duration(0)))
	return d
}

// RegisterScalarType registers a type that should be treated as a scalar.
// It must be called before the destructurer is shared.
func (d *Destructurer) RegisterScalarType(t reflect.Type) {
	d.scalarTypes[t] = true
}

// Destructure captures value. It always succeeds.
func (d *Destructurer) Destructure(value any, factory core.LogEventPropertyValueFactory) core.LogEventPropertyValue {
	if value == nil {
		return core.NewScalarValue(nil)
	}
	if lv, ok := value.(core.LogValue); ok {
		return factory.CreatePropertyValue(lv.LogValue(), true)
	}

	v := reflect.ValueOf(value)
	t := v.Type()
	if d.scalarTypes[t] {
		return core.NewScalarValue(value)
	}

	switch v.Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return core.NewScalarValue(value)

	case reflect.String:
		return core.NewScalarValue(d.truncate(v.String()))

	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return core.NewScalarValue(nil)
		}
		return factory.CreatePropertyValue(v.Elem().Interface(), true)

	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return core.NewScalarValue(nil)
		}
		return d.destructureSlice(v, factory)

	case reflect.Map:
		if v.IsNil() {
			return core.NewScalarValue(nil)
		}
		return d.destructureMap(v, factory)

	case reflect.Struct:
		if ts, ok := value.(time.Time); ok {
			return core.NewScalarValue(ts.Format(time.RFC3339))
		}
		return d.destructureStruct(v, factory)

	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return core.NewScalarValue(t.String())

	default:
		return core.NewScalarValue(fmt.Sprintf("%v", value))
	}
}

func (d *Destructurer) truncate(s string) string {
	if len(s) > d.maxStringLength {
		return s[:d.maxStringLength] + "..."
	}
	return s
}

// destructureSlice captures a slice or array. Byte slices holding printable
// text are captured as strings.
func (d *Destructurer) destructureSlice(v reflect.Value, factory core.LogEventPropertyValueFactory) core.LogEventPropertyValue {
	if v.Type().Elem().Kind() == reflect.Uint8 {
		b := make([]byte, v.Len())
		reflect.Copy(reflect.ValueOf(b), v)
		if isPrintable(b) {
			return core.NewScalarValue(d.truncate(string(b)))
		}
		return core.NewScalarValue(b)
	}

	length := v.Len()
	if length > d.maxCollectionCount {
		length = d.maxCollectionCount
	}

	elems := make([]core.LogEventPropertyValue, 0, length+1)
	for i := 0; i < length; i++ {
		elems = append(elems, factory.CreatePropertyValue(v.Index(i).Interface(), true))
	}
	if v.Len() > d.maxCollectionCount {
		elems = append(elems, core.NewScalarValue(fmt.Sprintf("... (%d more)", v.Len()-d.maxCollectionCount)))
	}
	return &core.SequenceValue{Elements: elems}
}

// destructureMap captures a map with keys sorted by their rendered form.
func (d *Destructurer) destructureMap(v reflect.Value, factory core.LogEventPropertyValueFactory) core.LogEventPropertyValue {
	keys := v.MapKeys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = fmt.Sprintf("%v", k.Interface())
	}
	order := make([]int, len(keys))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return names[order[a]] < names[order[b]] })

	count := len(order)
	if count > d.maxCollectionCount {
		count = d.maxCollectionCount
	}

	entries := make([]core.LogEventProperty, 0, count+1)
	for _, i := range order[:count] {
		entries = append(entries, core.LogEventProperty{
			Name:  names[i],
			Value: factory.CreatePropertyValue(v.MapIndex(keys[i]).Interface(), true),
		})
	}
	if len(order) > count {
		entries = append(entries, core.LogEventProperty{
			Name:  "...",
			Value: core.NewScalarValue(fmt.Sprintf("(%d more)", len(order)-count)),
		})
	}
	return &core.DictionaryValue{Entries: entries}
}

// destructureStruct captures exported fields in declaration order.
func (d *Destructurer) destructureStruct(v reflect.Value, factory core.LogEventPropertyValueFactory) core.LogEventPropertyValue {
	t := v.Type()
	fields := d.types.fields(t)

	props := make([]core.LogEventProperty, 0, len(fields))
	for _, f := range fields {
		fv, err := v.FieldByIndexErr(f.Index)
		var raw any
		if err == nil && fv.CanInterface() {
			raw = fv.Interface()
		}
		props = append(props, core.LogEventProperty{
			Name:  f.Name,
			Value: factory.CreatePropertyValue(raw, true),
		})
	}

	return &core.StructureValue{TypeTag: t.String(), Properties: props}
}

func isPrintable(b []byte) bool {
	if len(b) == 0 || !utf8.Valid(b) {
		return false
	}
	for _, c := range b {
		if c == 0 {
			return false
		}
	}
	return true
}

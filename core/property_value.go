package core

import (
	"fmt"
	"strings"
)

// LogEventPropertyValue is the captured form of a property. It is one of
// *ScalarValue, *StructureValue, *SequenceValue or *DictionaryValue.
type LogEventPropertyValue interface {
	fmt.Stringer
	propertyValue()
}

// ScalarValue is a value logged as an opaque atomic unit.
type ScalarValue struct {
	Value any
}

// NewScalarValue wraps v in a scalar node.
func NewScalarValue(v any) *ScalarValue {
	return &ScalarValue{Value: v}
}

func (*ScalarValue) propertyValue() {}

// Unwrap returns the wrapped value.
func (s *ScalarValue) Unwrap() any {
	return s.Value
}

func (s *ScalarValue) String() string {
	if s == nil || s.Value == nil {
		return "nil"
	}
	if str, ok := s.Value.(string); ok {
		return str
	}
	return fmt.Sprint(s.Value)
}

// StructureValue is a value logged as an ordered set of named properties.
type StructureValue struct {
	// TypeTag is the name of the type the structure was captured from.
	TypeTag string

	// Properties keeps the order in which the fields were captured.
	Properties []LogEventProperty
}

func (*StructureValue) propertyValue() {}

// Property returns the value of the named property.
func (s *StructureValue) Property(name string) (any, bool) {
	for _, p := range s.Properties {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

// Names returns the property names in capture order.
func (s *StructureValue) Names() []string {
	names := make([]string, len(s.Properties))
	for i, p := range s.Properties {
		names[i] = p.Name
	}
	return names
}

func (s *StructureValue) String() string {
	if s == nil {
		return "nil"
	}
	var b strings.Builder
	if s.TypeTag != "" {
		b.WriteString(s.TypeTag)
		b.WriteByte(' ')
	}
	b.WriteByte('{')
	for i, p := range s.Properties {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p.Name)
		b.WriteByte(':')
		b.WriteString(fmt.Sprint(p.Value))
	}
	b.WriteByte('}')
	return b.String()
}

// SequenceValue is a captured slice or array.
type SequenceValue struct {
	Elements []LogEventPropertyValue
}

func (*SequenceValue) propertyValue() {}

func (s *SequenceValue) String() string {
	parts := make([]string, len(s.Elements))
	for i, e := range s.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// DictionaryValue is a captured map. Keys are rendered with fmt.
type DictionaryValue struct {
	Entries []LogEventProperty
}

func (*DictionaryValue) propertyValue() {}

func (d *DictionaryValue) String() string {
	parts := make([]string, len(d.Entries))
	for i, e := range d.Entries {
		parts[i] = fmt.Sprintf("%s:%v", e.Name, e.Value)
	}
	return "map[" + strings.Join(parts, " ") + "]"
}

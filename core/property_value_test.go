package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructureValue(t *testing.T) {
	sv := &StructureValue{
		TypeTag: "Order",
		Properties: []LogEventProperty{
			{Name: "ID", Value: NewScalarValue(7)},
			{Name: "Customer", Value: NewScalarValue("alice")},
		},
	}

	assert.Equal(t, []string{"ID", "Customer"}, sv.Names())
	v, ok := sv.Property("Customer")
	assert.True(t, ok)
	assert.Equal(t, "alice", v.(*ScalarValue).Unwrap())
	_, ok = sv.Property("Missing")
	assert.False(t, ok)

	assert.Equal(t, "Order {ID:7 Customer:alice}", sv.String())
}

func TestValueStrings(t *testing.T) {
	assert.Equal(t, "nil", NewScalarValue(nil).String())
	assert.Equal(t, "42", NewScalarValue(42).String())
	assert.Equal(t, "[1 two]", (&SequenceValue{Elements: []LogEventPropertyValue{
		NewScalarValue(1), NewScalarValue("two"),
	}}).String())
	assert.Equal(t, "map[a:1]", (&DictionaryValue{Entries: []LogEventProperty{
		{Name: "a", Value: NewScalarValue(1)},
	}}).String())

	var nilStructure *StructureValue
	assert.Equal(t, "nil", nilStructure.String())
}

func TestLogEventProperties(t *testing.T) {
	e := &LogEvent{Properties: map[string]any{}}
	e.AddPropertyIfAbsent(&LogEventProperty{Name: "A", Value: 1})
	e.AddPropertyIfAbsent(&LogEventProperty{Name: "A", Value: 2})
	assert.Equal(t, 1, e.Properties["A"])

	e.AddProperty("A", 3)
	assert.Equal(t, 3, e.Properties["A"])

	e.AddProperty("S", &StructureValue{TypeTag: "T"})
	sv, ok := e.Structure("S")
	assert.True(t, ok)
	assert.Equal(t, "T", sv.TypeTag)
	_, ok = e.Structure("A")
	assert.False(t, ok)

	e.Exception = errors.New("boom")
	assert.EqualError(t, e.Exception, "boom")
}

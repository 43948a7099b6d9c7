package attributed

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type auditBase struct {
	ID      int
	Owner   string `log:",ignore"`
	Comment string
}

type auditRecord struct {
	auditBase
	Comment string `log:",scalar"`
	Action  string
	secret  string
}

type withPointerBase struct {
	*auditBase
	Extra string `log:"-"`
}

type anonymousField struct {
	Header struct{ Host string }
	Name   string
}

func fieldNames(meta *TypeMetadata) []string {
	names := make([]string, len(meta.Fields))
	for i, f := range meta.Fields {
		names[i] = f.Name
	}
	return names
}

func TestScanTypeEmbedding(t *testing.T) {
	meta := ScanType(reflect.TypeOf(auditRecord{}))

	assert.Equal(t, reflect.TypeOf(auditRecord{}), meta.Struct)
	assert.Equal(t, []string{"ID", "Owner", "Comment", "Action"}, fieldNames(meta))

	// The shallower Comment shadows the embedded one.
	comment := meta.Fields[2]
	assert.True(t, comment.Annotations.Scalar)
	assert.Equal(t, []int{1}, comment.Index)

	assert.True(t, meta.Fields[1].Annotations.Excluded, "promoted annotations are kept")
}

func TestScanTypeSkipsUnexported(t *testing.T) {
	meta := ScanType(reflect.TypeOf(auditRecord{}))
	assert.NotContains(t, fieldNames(meta), "secret")
	assert.NotContains(t, fieldNames(meta), "auditBase")
}

func TestScanTypePointer(t *testing.T) {
	meta := ScanType(reflect.TypeOf(&auditRecord{}))
	assert.Equal(t, reflect.TypeOf(&auditRecord{}), meta.Type)
	assert.Equal(t, reflect.TypeOf(auditRecord{}), meta.Struct)
	assert.Len(t, meta.Fields, 4)
}

func TestScanTypeNonStruct(t *testing.T) {
	for _, v := range []any{42, "text", []int{1}, map[string]int{}} {
		meta := ScanType(reflect.TypeOf(v))
		assert.Nil(t, meta.Struct, "%T", v)
		assert.Empty(t, meta.Fields, "%T", v)
	}
}

func TestScanTypeKeepsAnonymousStructFields(t *testing.T) {
	meta := ScanType(reflect.TypeOf(anonymousField{}))
	assert.Equal(t, []string{"Header", "Name"}, fieldNames(meta))
}

func TestFieldReaderNilEmbeddedPointer(t *testing.T) {
	meta := ScanType(reflect.TypeOf(withPointerBase{}))
	require.Equal(t, []string{"ID", "Owner", "Comment", "Extra"}, fieldNames(meta))

	v := reflect.ValueOf(withPointerBase{Extra: "x"})
	assert.Nil(t, meta.Fields[0].Read(v))
	assert.Equal(t, "x", meta.Fields[3].Read(v))

	v = reflect.ValueOf(withPointerBase{auditBase: &auditBase{ID: 9}})
	assert.Equal(t, 9, meta.Fields[0].Read(v))
}

type scalarMarked struct {
	_     struct{} `log:",scalar,mutable"`
	Value string
}

func TestScanTypeScalarMarker(t *testing.T) {
	meta := ScanType(reflect.TypeOf(scalarMarked{}))
	require.NotNil(t, meta.Scalar)
	assert.True(t, meta.Scalar.Mutable)
	assert.Equal(t, []string{"Value"}, fieldNames(meta))
}

type Secrets struct {
	Password string
	APIKey   string
}

type Price struct {
	Amount   int
	Currency string
}

type withExcludedBase struct {
	Secrets `log:"-"`
	Name    string
}

type withIgnoredBase struct {
	auditBase `log:",ignore"`
	Name      string
}

type withScalarBase struct {
	Price `log:",scalar"`
	Name  string
}

type withGatedBase struct {
	Price `log:",onlyat=Warning"`
	Name  string
}

type withRenamedBase struct {
	*Price `log:"Cost"`
	Name   string
}

func TestScanTypeAnnotatedEmbedding(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  []string
		check func(t *testing.T, a Annotations)
	}{
		{
			name:  "excluded",
			value: withExcludedBase{},
			want:  []string{"Secrets", "Name"},
			check: func(t *testing.T, a Annotations) { assert.True(t, a.Excluded) },
		},
		{
			name:  "unexported and ignored",
			value: withIgnoredBase{},
			want:  []string{"auditBase", "Name"},
			check: func(t *testing.T, a Annotations) { assert.True(t, a.Excluded) },
		},
		{
			name:  "scalar",
			value: withScalarBase{},
			want:  []string{"Price", "Name"},
			check: func(t *testing.T, a Annotations) { assert.True(t, a.Scalar) },
		},
		{
			name:  "gated",
			value: withGatedBase{},
			want:  []string{"Price", "Name"},
			check: func(t *testing.T, a Annotations) { assert.NotNil(t, a.OnlyAt) },
		},
		{
			name:  "renamed",
			value: withRenamedBase{},
			want:  []string{"Price", "Name"},
			check: func(t *testing.T, a Annotations) { assert.Equal(t, "Cost", a.Name) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := ScanType(reflect.TypeOf(tt.value))
			require.Equal(t, tt.want, fieldNames(meta))
			assert.Equal(t, []int{0}, meta.Fields[0].Index)
			tt.check(t, meta.Fields[0].Annotations)
		})
	}
}

func TestFieldReaderWholeEmbeddedValue(t *testing.T) {
	meta := ScanType(reflect.TypeOf(withScalarBase{}))
	v := reflect.ValueOf(withScalarBase{Price: Price{Amount: 3, Currency: "EUR"}})
	assert.Equal(t, Price{Amount: 3, Currency: "EUR"}, meta.Fields[0].Read(v))
}

package destructure

import (
	"reflect"
	"slices"
	"strings"
	"sync"
)

// fieldDescriptor caches information about an exported struct field.
type fieldDescriptor struct {
	Index []int
	Name  string
}

// typeCache is a thread-safe cache of struct field lists.
type typeCache struct {
	mu    sync.RWMutex
	cache map[reflect.Type][]fieldDescriptor
}

func newTypeCache() *typeCache {
	return &typeCache{
		cache: make(map[reflect.Type][]fieldDescriptor),
	}
}

// fields returns the loggable fields of struct type t.
func (tc *typeCache) fields(t reflect.Type) []fieldDescriptor {
	tc.mu.RLock()
	fields, ok := tc.cache[t]
	tc.mu.RUnlock()
	if ok {
		return fields
	}

	tc.mu.Lock()
	defer tc.mu.Unlock()

	// Double-check after acquiring write lock
	if fields, ok := tc.cache[t]; ok {
		return fields
	}
	fields = describe(t)
	tc.cache[t] = fields
	return fields
}

// describe lists exported fields in declaration order, honoring the
// log:"-" and log:"Name" tag forms. An embedded struct tagged "-" drops all
// of its fields; one given a name is listed as a single field.
func describe(t reflect.Type) []fieldDescriptor {
	fields := make([]fieldDescriptor, 0, t.NumField())
	var collapsed [][]int
	for _, f := range reflect.VisibleFields(t) {
		if underAny(collapsed, f.Index) {
			continue
		}
		tag := f.Tag.Get("log")
		if f.Anonymous && isStructLike(f.Type) {
			n, _, _ := strings.Cut(tag, ",")
			switch {
			case tag == "-":
				collapsed = append(collapsed, f.Index)
				continue
			case n == "" || !f.IsExported():
				continue
			}
			collapsed = append(collapsed, f.Index)
		}
		if !f.IsExported() {
			continue
		}

		name := f.Name
		if tag != "" {
			if tag == "-" {
				continue
			}
			if n, _, _ := strings.Cut(tag, ","); n != "" {
				name = n
			}
		}
		fields = append(fields, fieldDescriptor{Index: f.Index, Name: name})
	}
	return fields
}

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

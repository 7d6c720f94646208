package debugui

import (
	"reflect"
	"sync"
)

// FieldInfo describes one exported field the inspector can show.
type FieldInfo struct {
	Name     string
	Type     reflect.Type
	Index    int
	Editable bool
	// VectorLen is the element count of float arrays such as mgl32.Vec3, else 0.
	VectorLen int
}

// ReflectionCache memoizes the exported fields of component variant types.
type ReflectionCache struct {
	mu     sync.RWMutex
	fields map[reflect.Type][]FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{
		fields: make(map[reflect.Type][]FieldInfo),
	}
}

// Fields returns the exported fields of t, dereferencing pointer types.
func (rc *ReflectionCache) Fields(t reflect.Type) []FieldInfo {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	rc.mu.RLock()
	cached, ok := rc.fields[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()
	if cached, ok := rc.fields[t]; ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			fields = append(fields, FieldInfo{
				Name:      field.Name,
				Type:      field.Type,
				Index:     i,
				Editable:  editableKind(field.Type),
				VectorLen: vectorLen(field.Type),
			})
		}
	}

	rc.fields[t] = fields
	return fields
}

func editableKind(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Bool, reflect.String:
		return true
	}
	return vectorLen(t) > 0
}

// vectorLen reports small float arrays. Matrices are shown read-only.
func vectorLen(t reflect.Type) int {
	if t.Kind() != reflect.Array || t.Elem().Kind() != reflect.Float32 {
		return 0
	}
	if n := t.Len(); n >= 2 && n <= 4 {
		return n
	}
	return 0
}

var globalReflectionCache = NewReflectionCache()

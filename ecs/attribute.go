package ecs

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

// writableComponentFields are the Component fields SetAttribute may change.
// GID, CID, GlobalIndexID and Name tie the component to its owner's slot and
// metadata entry and can only be read.
var writableComponentFields = map[string]bool{
	"isactive": true,
}

// Attribute reads a named field of a component on an object. The field is
// looked up on the component's variant first, then on the component itself
// (Name, GID, IsActive, ...). Field names are matched case-insensitively.
func (w *World) Attribute(id ObjectID, component, attribute string) (any, error) {
	c, err := w.Component(id, component)
	if err != nil {
		return nil, err
	}
	field, _, err := attributeField(c, attribute)
	if err != nil {
		return nil, fmt.Errorf("object %d component %q: %w", id, component, err)
	}
	return field.Interface(), nil
}

// SetAttribute writes a named field of a component on an object. Numeric
// values are converted to the field's kind and rejected if they overflow it;
// other values must be assignable.
func (w *World) SetAttribute(id ObjectID, component, attribute string, value any) error {
	c, err := w.Component(id, component)
	if err != nil {
		return err
	}
	field, onVariant, err := attributeField(c, attribute)
	if err != nil {
		return fmt.Errorf("object %d component %q: %w", id, component, err)
	}
	if !onVariant && !writableComponentFields[strings.ToLower(attribute)] {
		return fmt.Errorf("object %d component %q attribute %q: %w", id, component, attribute, ErrReadOnlyAttribute)
	}
	if err := setField(field, value); err != nil {
		return fmt.Errorf("object %d component %q attribute %q: %w", id, component, attribute, err)
	}
	return nil
}

// attributeField resolves attribute and reports whether it lives on the variant.
func attributeField(c *Component, attribute string) (reflect.Value, bool, error) {
	if c.Data != nil {
		if field, ok := lookupField(reflect.ValueOf(c.Data), attribute); ok {
			return field, true, nil
		}
	}
	if field, ok := lookupField(reflect.ValueOf(c), attribute); ok && !strings.EqualFold(attribute, "Data") {
		return field, false, nil
	}
	return reflect.Value{}, false, fmt.Errorf("attribute %q: %w", attribute, ErrNotFound)
}

func lookupField(val reflect.Value, name string) (reflect.Value, bool) {
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}

	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.IsExported() && strings.EqualFold(field.Name, name) {
			return val.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func setField(field reflect.Value, value any) error {
	if !field.CanSet() {
		return fmt.Errorf("field cannot be set")
	}

	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var n int64
		switch v := value.(type) {
		case int:
			n = int64(v)
		case int32:
			n = int64(v)
		case int64:
			n = v
		case float64:
			if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
				return fmt.Errorf("cannot store %v in %s", v, field.Kind())
			}
			n = int64(v)
		default:
			return fmt.Errorf("cannot convert %T to %s", value, field.Kind())
		}
		if field.OverflowInt(n) {
			return fmt.Errorf("%d overflows %s", n, field.Kind())
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		var n uint64
		switch v := value.(type) {
		case int:
			if v < 0 {
				return fmt.Errorf("cannot store %d in %s", v, field.Kind())
			}
			n = uint64(v)
		case int64:
			if v < 0 {
				return fmt.Errorf("cannot store %d in %s", v, field.Kind())
			}
			n = uint64(v)
		case uint64:
			n = v
		default:
			return fmt.Errorf("cannot convert %T to %s", value, field.Kind())
		}
		if field.OverflowUint(n) {
			return fmt.Errorf("%d overflows %s", n, field.Kind())
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		var f float64
		switch v := value.(type) {
		case float64:
			f = v
		case float32:
			f = float64(v)
		case int:
			f = float64(v)
		default:
			return fmt.Errorf("cannot convert %T to %s", value, field.Kind())
		}
		if field.OverflowFloat(f) {
			return fmt.Errorf("%g overflows %s", f, field.Kind())
		}
		field.SetFloat(f)

	case reflect.Bool:
		v, ok := value.(bool)
		if !ok {
			return fmt.Errorf("cannot convert %T to bool", value)
		}
		field.SetBool(v)

	case reflect.String:
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("cannot convert %T to string", value)
		}
		field.SetString(v)

	default:
		val := reflect.ValueOf(value)
		if !val.IsValid() || !val.Type().AssignableTo(field.Type()) {
			return fmt.Errorf("cannot assign %T to %s", value, field.Type())
		}
		field.Set(val)
	}
	return nil
}

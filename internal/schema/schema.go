// Copyright (c) 2025-2026 Studio Pickens
// SPDX-License-Identifier: GPL-3.0-or-later

// Package schema implements declarative validation for the content documents.
// Each resource declares a tree of field rules; validation checks the whole
// payload (no abort on first error), applies defaults, strips unknown keys
// where a schema is permissive, and rejects them where it is strict.
package schema

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// Type identifies the expected JSON type of a field.
type Type int

// Field types.
const (
	TypeAny Type = iota
	TypeString
	TypeInt
	TypeFloat
	TypeBool
	TypeObject
	TypeArray
)

func (t Type) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "integer"
	case TypeFloat:
		return "number"
	case TypeBool:
		return "boolean"
	case TypeObject:
		return "object"
	case TypeArray:
		return "array"
	default:
		return "any"
	}
}

// FieldError describes a single violated rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// Object is a set of field rules for one JSON object. When AllowUnknown is
// false, keys without a rule are a validation error; otherwise they are
// silently stripped from the sanitized result. Either way an unspecified key
// never reaches storage.
type Object struct {
	Fields       []Field
	AllowUnknown bool
}

// Switch selects the schema of an object field based on the string value of
// a sibling field, e.g. a story item's content shape depends on its type.
type Switch struct {
	On    string
	Cases map[string]*Object
}

// Field is one rule in a schema tree. Zero values mean "no constraint":
// MaxLen 0 is unlimited, nil Min/Max are unbounded.
type Field struct {
	Name     string
	Required bool
	Type     Type

	// String constraints. Strings are trimmed before checking.
	MinLen     int
	MaxLen     int
	AllowEmpty bool
	Pattern    *regexp.Regexp
	PatternMsg string
	Enum       []string

	// Numeric constraints.
	Min *float64
	Max *float64

	// Default is applied when an optional field is absent.
	Default any

	// Nested rules: Schema for object fields (or Switch for variant
	// objects), Items for array elements.
	Schema   *Object
	Switch   *Switch
	Items    *Field
	MaxItems int
}

// Validate checks payload against the schema and returns the sanitized
// document alongside every violated rule. The sanitized result is only
// meaningful when the error list is empty.
func (o *Object) Validate(payload map[string]any) (map[string]any, []FieldError) {
	return o.validate(payload, "")
}

func (o *Object) validate(payload map[string]any, path string) (map[string]any, []FieldError) {
	out := make(map[string]any, len(payload))
	var errs []FieldError

	known := make(map[string]bool, len(o.Fields))
	for i := range o.Fields {
		f := &o.Fields[i]
		known[f.Name] = true
		fieldPath := joinPath(path, f.Name)

		value, present := payload[f.Name]
		if !present || value == nil {
			if f.Required {
				errs = append(errs, FieldError{Field: fieldPath, Message: fmt.Sprintf("%q is required", f.Name)})
				continue
			}
			if f.Default != nil {
				out[f.Name] = f.Default
			}
			continue
		}

		sanitized, fieldErrs := f.check(value, fieldPath, payload)
		if len(fieldErrs) > 0 {
			errs = append(errs, fieldErrs...)
			continue
		}
		out[f.Name] = sanitized
	}

	if !o.AllowUnknown {
		for key := range payload {
			if !known[key] {
				errs = append(errs, FieldError{
					Field:   joinPath(path, key),
					Message: fmt.Sprintf("%q is not allowed", key),
					Value:   payload[key],
				})
			}
		}
	}

	return out, errs
}

// check validates a single present value. parent is the enclosing object's
// raw payload, needed to resolve Switch fields.
func (f *Field) check(value any, path string, parent map[string]any) (any, []FieldError) {
	switch f.Type {
	case TypeString:
		return f.checkString(value, path)
	case TypeInt, TypeFloat:
		return f.checkNumber(value, path)
	case TypeBool:
		b, ok := value.(bool)
		if !ok {
			return nil, []FieldError{{Field: path, Message: fmt.Sprintf("%q must be a boolean", f.Name), Value: value}}
		}
		return b, nil
	case TypeObject:
		return f.checkObject(value, path, parent)
	case TypeArray:
		return f.checkArray(value, path)
	default:
		return value, nil
	}
}

func (f *Field) checkString(value any, path string) (any, []FieldError) {
	s, ok := value.(string)
	if !ok {
		return nil, []FieldError{{Field: path, Message: fmt.Sprintf("%q must be a string", f.Name), Value: value}}
	}
	s = strings.TrimSpace(s)

	if s == "" {
		if f.AllowEmpty {
			return s, nil
		}
		return nil, []FieldError{{Field: path, Message: fmt.Sprintf("%q is not allowed to be empty", f.Name)}}
	}
	if f.MinLen > 0 && len(s) < f.MinLen {
		return nil, []FieldError{{
			Field:   path,
			Message: fmt.Sprintf("%q length must be at least %d characters", f.Name, f.MinLen),
			Value:   s,
		}}
	}
	if f.MaxLen > 0 && len(s) > f.MaxLen {
		return nil, []FieldError{{
			Field:   path,
			Message: fmt.Sprintf("%q length must be at most %d characters", f.Name, f.MaxLen),
			Value:   s,
		}}
	}
	if len(f.Enum) > 0 {
		for _, allowed := range f.Enum {
			if s == allowed {
				return s, nil
			}
		}
		return nil, []FieldError{{
			Field:   path,
			Message: fmt.Sprintf("%q must be one of [%s]", f.Name, strings.Join(f.Enum, ", ")),
			Value:   s,
		}}
	}
	if f.Pattern != nil && !f.Pattern.MatchString(s) {
		msg := f.PatternMsg
		if msg == "" {
			msg = fmt.Sprintf("%q has an invalid format", f.Name)
		}
		return nil, []FieldError{{Field: path, Message: msg, Value: s}}
	}
	return s, nil
}

func (f *Field) checkNumber(value any, path string) (any, []FieldError) {
	// encoding/json decodes every number into float64.
	n, ok := value.(float64)
	if !ok {
		return nil, []FieldError{{Field: path, Message: fmt.Sprintf("%q must be a number", f.Name), Value: value}}
	}
	if f.Type == TypeInt && n != math.Trunc(n) {
		return nil, []FieldError{{Field: path, Message: fmt.Sprintf("%q must be an integer", f.Name), Value: value}}
	}
	if f.Min != nil && n < *f.Min {
		return nil, []FieldError{{
			Field:   path,
			Message: fmt.Sprintf("%q must be greater than or equal to %v", f.Name, *f.Min),
			Value:   value,
		}}
	}
	if f.Max != nil && n > *f.Max {
		return nil, []FieldError{{
			Field:   path,
			Message: fmt.Sprintf("%q must be less than or equal to %v", f.Name, *f.Max),
			Value:   value,
		}}
	}
	if f.Type == TypeInt {
		return int64(n), nil
	}
	return n, nil
}

func (f *Field) checkObject(value any, path string, parent map[string]any) (any, []FieldError) {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, []FieldError{{Field: path, Message: fmt.Sprintf("%q must be an object", f.Name), Value: value}}
	}

	inner := f.Schema
	if f.Switch != nil {
		discriminator, _ := parent[f.Switch.On].(string)
		variant, ok := f.Switch.Cases[discriminator]
		if !ok {
			// The discriminator field carries its own enum rule; reporting
			// the variant mismatch here as well would double up the errors.
			return map[string]any{}, nil
		}
		inner = variant
	}
	if inner == nil {
		return obj, nil
	}
	return inner.validate(obj, path)
}

func (f *Field) checkArray(value any, path string) (any, []FieldError) {
	arr, ok := value.([]any)
	if !ok {
		return nil, []FieldError{{Field: path, Message: fmt.Sprintf("%q must be an array", f.Name), Value: value}}
	}
	if f.MaxItems > 0 && len(arr) > f.MaxItems {
		return nil, []FieldError{{
			Field:   path,
			Message: fmt.Sprintf("%q must contain at most %d items", f.Name, f.MaxItems),
		}}
	}
	if f.Items == nil {
		return arr, nil
	}

	out := make([]any, 0, len(arr))
	var errs []FieldError
	for i, elem := range arr {
		elemPath := fmt.Sprintf("%s.%d", path, i)
		sanitized, elemErrs := f.Items.check(elem, elemPath, nil)
		if len(elemErrs) > 0 {
			errs = append(errs, elemErrs...)
			continue
		}
		out = append(out, sanitized)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func joinPath(base, name string) string {
	if base == "" {
		return name
	}
	return base + "." + name
}

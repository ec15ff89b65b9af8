package models

import (
	"fmt"
	"reflect"
	"strings"
)

// IsBlank reports whether a field value counts as "not filled in" for
// required-ness checks: nil, a whitespace-only string, false, or an empty
// list.
func IsBlank(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case bool:
		return !v
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	default:
		return false
	}
}

// ValuesEqual compares a current field value against a dependency trigger
// value. Values arrive from two sources with different dynamic types (YAML
// decoding and form setters), so identical scalars are also compared via
// their string form.
func ValuesEqual(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

// FieldActive reports whether a field is currently visible given the form
// values. A field with no dependency is always active; a dependency naming
// an undeclared sibling keeps the field permanently hidden.
func (t *Template) FieldActive(f InputField, values map[string]any) bool {
	if f.DependsOn == nil {
		return true
	}
	if _, ok := t.Field(f.DependsOn.Field); !ok {
		return false
	}
	return ValuesEqual(values[f.DependsOn.Field], f.DependsOn.Value)
}

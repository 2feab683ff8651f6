package types

import (
	"fmt"
	"math"
	"sort"
)

// Template is the canonical document: key name to default value. Legal
// default values are strings, booleans, and integers. Entity documents are
// reconciled so their key sets equal the template's.
type Template map[string]any

// Keys returns the template's key names in sorted order.
func (t Template) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// KeySet returns the template's keys as a set.
func (t Template) KeySet() map[string]bool {
	set := make(map[string]bool, len(t))
	for k := range t {
		set[k] = true
	}
	return set
}

// Validate checks that every default value is a legal template value.
// JSON numbers decode as float64; only integral numbers are accepted.
func (t Template) Validate() error {
	for k, v := range t {
		if !IsLegalValue(v) {
			return fmt.Errorf("%w: key %q has %T value", ErrInvalidValue, k, v)
		}
	}
	return nil
}

// IsLegalValue reports whether v is a legal template default: a string,
// a boolean, or an integral number. Booleans are checked before numbers so
// that true/false never passes as an integer.
func IsLegalValue(v any) bool {
	switch val := v.(type) {
	case bool:
		return true
	case string:
		return true
	case int, int32, int64:
		return true
	case float64:
		return val == math.Trunc(val) && !math.IsInf(val, 0)
	default:
		return false
	}
}

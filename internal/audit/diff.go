package audit

import (
	"math"
	"reflect"
	"time"
)

// FieldChange is one before/after pair in an update diff.
type FieldChange struct {
	Before any `json:"before"`
	After  any `json:"after"`
}

// Diff compares before and after state for every key present in the update
// payload. Keys absent from the payload are never reported, even if the
// store defaulted them. Returns nil when nothing differs.
func Diff(before, after map[string]any, payload map[string]any) map[string]FieldChange {
	changes := make(map[string]FieldChange)
	for key := range payload {
		b := before[key]
		a := after[key]
		if !sameValue(b, a) {
			changes[key] = FieldChange{Before: b, After: a}
		}
	}
	if len(changes) == 0 {
		return nil
	}
	return changes
}

// sameValue is strict equality with same-value semantics: NaN equals NaN,
// and numeric types compare by value regardless of width.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if af, ok := toFloat(a); ok {
		bf, ok := toFloat(b)
		if !ok {
			return false
		}
		if math.IsNaN(af) && math.IsNaN(bf) {
			return true
		}
		return af == bf
	}
	if at, ok := a.(time.Time); ok {
		bt, ok := b.(time.Time)
		return ok && at.Equal(bt)
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

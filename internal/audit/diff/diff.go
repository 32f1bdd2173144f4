// Package diff turns before/after field values into audit changes.
package diff

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/smallbiznis/hoteldesk/internal/audit/domain"
)

// Field compares oldValue and newValue structurally. Types with an Equal
// method (decimal.Decimal, time.Time) are compared with it, and nil and empty
// slices are treated as the same value.
func Field(key string, oldValue, newValue any) (domain.Change, bool) {
	if cmp.Equal(oldValue, newValue, cmpopts.EquateEmpty()) {
		return domain.Change{}, false
	}
	return domain.Change{Key: key, OldValue: oldValue, NewValue: newValue}, true
}

// Tracker collects the changes of one mutation in call order.
type Tracker struct {
	changes []domain.Change
}

func (t *Tracker) Track(key string, oldValue, newValue any) {
	if change, ok := Field(key, oldValue, newValue); ok {
		t.changes = append(t.changes, change)
	}
}

func (t *Tracker) Changes() []domain.Change {
	return t.changes
}

func (t *Tracker) Empty() bool {
	return len(t.changes) == 0
}

// Keys lists the changed keys.
func (t *Tracker) Keys() []string {
	keys := make([]string, 0, len(t.changes))
	for _, c := range t.changes {
		keys = append(keys, c.Key)
	}
	return keys
}

// Value is a named field value for Initial.
type Value struct {
	Key   string
	Value any
}

// Initial records every field as set from nothing.
func Initial(values ...Value) []domain.Change {
	changes := make([]domain.Change, 0, len(values))
	for _, v := range values {
		changes = append(changes, domain.Change{Key: v.Key, OldValue: nil, NewValue: v.Value})
	}
	return changes
}

// Note renders changes as "key: old -> new; key: old -> new".
func Note(changes []domain.Change) string {
	parts := make([]string, 0, len(changes))
	for _, c := range changes {
		parts = append(parts, fmt.Sprintf("%s: %s -> %s", c.Key, Format(c.OldValue), Format(c.NewValue)))
	}
	return strings.Join(parts, "; ")
}

// Format renders a single value for a note.
func Format(v any) string {
	if v == nil {
		return "null"
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "null"
		}
		return Format(rv.Elem().Interface())
	}
	if rv.Kind() == reflect.String {
		return rv.String()
	}

	switch value := v.(type) {
	case time.Time:
		return value.UTC().Format(time.RFC3339)
	case fmt.Stringer:
		return value.String()
	case bool, int, int32, int64, float64:
		return fmt.Sprint(value)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(raw)
}

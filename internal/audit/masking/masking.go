package masking

import (
	"strings"

	"github.com/smallbiznis/hoteldesk/internal/audit/domain"
)

const maskToken = "****"

var contactKeys = map[string]struct{}{
	"customerPhone": {},
	"customerEmail": {},
	"phone":         {},
	"email":         {},
}

// MaskSecret redacts a value while keeping a short suffix recognisable.
func MaskSecret(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) <= 4 {
		return maskToken
	}
	return maskToken + trimmed[len(trimmed)-4:]
}

// Changes returns a copy of changes that is safe to write to logs. Contact
// details are masked, everything else is kept.
func Changes(changes []domain.Change) []domain.Change {
	if len(changes) == 0 {
		return nil
	}
	out := make([]domain.Change, 0, len(changes))
	for _, c := range changes {
		if _, ok := contactKeys[c.Key]; ok {
			c.OldValue = maskValue(c.OldValue)
			c.NewValue = maskValue(c.NewValue)
		}
		out = append(out, c)
	}
	return out
}

func maskValue(value any) any {
	switch cast := value.(type) {
	case string:
		return MaskSecret(cast)
	case *string:
		if cast == nil {
			return nil
		}
		return MaskSecret(*cast)
	default:
		return value
	}
}

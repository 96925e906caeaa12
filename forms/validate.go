package forms

import (
	"fmt"
	"strings"
)

// ValidationError reports the labels of every required field that has no
// usable answer. Callers surface Missing verbatim to the end user.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// Validate checks a candidate answer map against the definition's required
// fields. It returns nil or a *ValidationError naming all missing fields.
// This runs on every server-side submit path; the client-side check is a
// convenience only.
func Validate(def *Definition, answers map[string]any) error {
	var missing []string
	for _, f := range def.Fields {
		if !f.Required {
			continue
		}
		if isEmpty(answers[f.Key()]) {
			missing = append(missing, f.Label)
		}
	}
	if missing != nil {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// isEmpty decides answer presence: nil, blank strings and empty lists are
// missing; numbers and booleans always count as present.
func isEmpty(v any) bool {
	switch v := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	default:
		return false
	}
}

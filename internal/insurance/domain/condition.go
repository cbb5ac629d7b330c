package domain

import (
	"log/slog"
	"strings"
)

// IsVisible reports whether every condition of the field holds against
// values. Comparisons are string-normalized, so a checkbox answer true
// matches a condition value of true or "true". A dependency that is
// unanswered or null fails every operator, keeping conditional fields
// hidden until their trigger is set.
func IsVisible(field FormField, values Values) bool {
	for _, c := range field.Conditions {
		if !Evaluate(c, values) {
			return false
		}
	}
	return true
}

func Evaluate(c Condition, values Values) bool {
	current, ok := values.Get(c.Field)
	if !ok || current.IsNull() {
		return false
	}

	switch c.Operator {
	case OperatorEquals:
		return current.String() == c.Value.String()
	case OperatorNotEquals:
		return current.String() != c.Value.String()
	case OperatorContains:
		return strings.Contains(current.String(), c.Value.String())
	case OperatorGreaterThan:
		// NaN compares false both ways
		return current.Float() > c.Value.Float()
	case OperatorLessThan:
		return current.Float() < c.Value.Float()
	default:
		slog.Warn("unknown condition operator",
			slog.String("operator", string(c.Operator)),
			slog.String("field", c.Field))
		return true
	}
}

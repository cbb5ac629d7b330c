package domain

import (
	"fmt"
	"log/slog"
	"regexp"
	"sync"
	"unicode/utf8"
)

const (
	MessageRequired  = "This field is required"
	MessageInvalid   = "Invalid format"
	minLengthMessage = "Minimum length is %d"
	maxLengthMessage = "Maximum length is %d"
	minValueMessage  = "Minimum value is %s"
	maxValueMessage  = "Maximum value is %s"
)

// ValidationResult holds the first violated rule, if any.
type ValidationResult struct {
	Message string
}

func (r ValidationResult) Valid() bool { return r.Message == "" }

// Validate checks value against the field's validation block in the order
// required, minLength, maxLength, min, max, pattern. Only the first failure
// is reported. Length and pattern rules apply to strings, bounds to numbers.
func Validate(field FormField, value Value) ValidationResult {
	return validate(field.Validation, value)
}

func validate(rules *Validation, value Value) ValidationResult {
	if rules == nil {
		return ValidationResult{}
	}

	if rules.Required && value.IsEmpty() {
		return ValidationResult{Message: MessageRequired}
	}

	str, isString := value.Str()

	if rules.MinLength != nil && isString && utf8.RuneCountInString(str) < *rules.MinLength {
		return ValidationResult{Message: fmt.Sprintf(minLengthMessage, *rules.MinLength)}
	}

	if rules.MaxLength != nil && isString && utf8.RuneCountInString(str) > *rules.MaxLength {
		return ValidationResult{Message: fmt.Sprintf(maxLengthMessage, *rules.MaxLength)}
	}

	if value.Kind() == KindNumber {
		n := value.Float()
		if lower, ok := bound(rules.Min); ok && n < lower {
			return ValidationResult{Message: fmt.Sprintf(minValueMessage, rules.Min.String())}
		}
		if upper, ok := bound(rules.Max); ok && n > upper {
			return ValidationResult{Message: fmt.Sprintf(maxValueMessage, rules.Max.String())}
		}
	}

	if rules.Pattern != "" && isString {
		re, err := compilePattern(rules.Pattern)
		if err != nil {
			slog.Warn("skipping invalid validation pattern",
				slog.String("pattern", rules.Pattern),
				slog.String("error", err.Error()))
		} else if !re.MatchString(str) {
			return ValidationResult{Message: MessageInvalid}
		}
	}

	return ValidationResult{}
}

func bound(v *Value) (float64, bool) {
	if v == nil || v.Kind() != KindNumber {
		return 0, false
	}
	return v.Float(), true
}

var patterns sync.Map

// compilePattern anchors the pattern so it must match the whole value.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	if cached, ok := patterns.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}

	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return nil, err
	}
	patterns.Store(pattern, re)
	return re, nil
}

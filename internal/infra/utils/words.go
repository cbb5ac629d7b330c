package utils

import (
	"strings"
	"unicode"
)

// SplitWords breaks a camelCase, PascalCase or snake_case identifier into
// its words, keeping acronyms together.
//
// Examples:
//   - "fullName" -> ["full", "Name"]
//   - "XMLHttpRequest" -> ["XML", "Http", "Request"]
//   - "created_at" -> ["created", "at"]
func SplitWords(s string) []string {
	words := make([]string, 0)
	var current []rune

	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			flush()
			continue
		}

		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				flush()
			} else if unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
				flush()
			}
		}

		current = append(current, r)
	}
	flush()

	return words
}

// ToTitleWords turns an identifier into a display label: "createdAt" -> "Created At".
func ToTitleWords(s string) string {
	words := SplitWords(s)
	for i, w := range words {
		runes := []rune(w)
		if isAllUpper(runes) && len(runes) > 1 {
			continue
		}
		runes[0] = unicode.ToUpper(runes[0])
		for j := 1; j < len(runes); j++ {
			runes[j] = unicode.ToLower(runes[j])
		}
		words[i] = string(runes)
	}

	return strings.Join(words, " ")
}

func ToSnakeCase(s string) string {
	words := SplitWords(s)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "_")
}

func isAllUpper(runes []rune) bool {
	for _, r := range runes {
		if !unicode.IsUpper(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

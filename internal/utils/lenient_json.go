package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ParseLenientJSON parses JSON that may come from legacy property feeds:
// - Well-formed JSON
// - JSON with surrounding garbage text
// - JSON with trailing commas, unquoted keys, or single quotes
func ParseLenientJSON(input string, target interface{}) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("empty input")
	}

	// Try direct parsing first (most common case)
	if err := json.Unmarshal([]byte(input), target); err == nil {
		return nil
	}

	// Try to find a JSON object/array embedded in text
	if extracted := extractJSONFromText(input); extracted != "" {
		if err := json.Unmarshal([]byte(extracted), target); err == nil {
			return nil
		}
	}

	// Try to clean and fix common formatting issues
	if cleaned := cleanAndFixJSON(input); cleaned != "" {
		if err := json.Unmarshal([]byte(cleaned), target); err == nil {
			return nil
		}
		if extracted := extractJSONFromText(cleaned); extracted != "" {
			if err := json.Unmarshal([]byte(extracted), target); err == nil {
				return nil
			}
		}
	}

	return fmt.Errorf("failed to parse JSON from input: %s", truncateString(input, 100))
}

// extractJSONFromText finds a JSON object or array in surrounding text
func extractJSONFromText(input string) string {
	if start := strings.Index(input, "{"); start >= 0 {
		if extracted := extractBalancedBraces(input[start:], '{', '}'); extracted != "" {
			return extracted
		}
	}

	if start := strings.Index(input, "["); start >= 0 {
		if extracted := extractBalancedBraces(input[start:], '[', ']'); extracted != "" {
			return extracted
		}
	}

	return ""
}

// extractBalancedBraces extracts content with balanced braces
func extractBalancedBraces(input string, open, close rune) string {
	if len(input) == 0 {
		return ""
	}

	depth := 0
	inString := false
	escape := false
	start := 0

	for i, ch := range input {
		if escape {
			escape = false
			continue
		}

		if ch == '\\' {
			escape = true
			continue
		}

		if ch == '"' {
			inString = !inString
			continue
		}

		if inString {
			continue
		}

		if ch == open {
			if depth == 0 {
				start = i
			}
			depth++
		} else if ch == close {
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
		}
	}

	return ""
}

// cleanAndFixJSON attempts to fix formatting issues seen in legacy feed data
func cleanAndFixJSON(input string) string {
	s := strings.TrimSpace(input)

	// Remove BOM if present
	s = strings.TrimPrefix(s, "\ufeff")

	// Remove trailing commas before closing braces/brackets
	re1 := regexp.MustCompile(`,\s*([}\]])`)
	s = re1.ReplaceAllString(s, "$1")

	// Quote bare keys: {Bedroom: 2} -> {"Bedroom": 2}
	re2 := regexp.MustCompile(`([{,]\s*)(\w+)(\s*:)`)
	s = re2.ReplaceAllString(s, `$1"$2"$3`)

	// Fix single quotes to double quotes (outside of strings)
	s = fixSingleQuotes(s)

	// Remove control characters
	s = removeControlCharacters(s)

	return s
}

// fixSingleQuotes converts single-quoted keys and values to double quotes for
// JSON compatibility. An opening quote sits after a value boundary and its
// closing quote sits before one, so apostrophes inside words are left alone.
func fixSingleQuotes(input string) string {
	var result strings.Builder
	inDoubleQuote := false
	inSingleQuote := false
	escape := false

	for i, ch := range input {
		if escape {
			result.WriteRune(ch)
			escape = false
			continue
		}

		if ch == '\\' {
			result.WriteRune(ch)
			escape = true
			continue
		}

		if ch == '"' && !inSingleQuote {
			inDoubleQuote = !inDoubleQuote
			result.WriteRune(ch)
			continue
		}

		// Only replace single quotes outside of double-quoted strings
		if ch != '\'' || inDoubleQuote {
			result.WriteRune(ch)
			continue
		}

		if !inSingleQuote {
			if opensQuotedToken(input, i) {
				inSingleQuote = true
				result.WriteRune('"')
				continue
			}
		} else if closesQuotedToken(input, i) {
			inSingleQuote = false
			result.WriteRune('"')
			continue
		}

		result.WriteRune(ch)
	}

	return result.String()
}

// opensQuotedToken reports whether the previous non-space character before
// position i starts a key or value slot.
func opensQuotedToken(input string, i int) bool {
	for j := i - 1; j >= 0; j-- {
		switch input[j] {
		case ' ', '\t', '\n', '\r':
			continue
		case ':', ',', '[', '{':
			return true
		default:
			return false
		}
	}
	return true
}

// closesQuotedToken reports whether the next non-space character after
// position i ends a key or value slot.
func closesQuotedToken(input string, i int) bool {
	for j := i + 1; j < len(input); j++ {
		switch input[j] {
		case ' ', '\t', '\n', '\r':
			continue
		case ':', ',', ']', '}':
			return true
		default:
			return false
		}
	}
	return true
}

// removeControlCharacters removes non-printable control characters
func removeControlCharacters(input string) string {
	return regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`).ReplaceAllString(input, "")
}

// truncateString truncates a string to maxLen characters
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// ValidateJSON checks if a string is valid JSON
func ValidateJSON(input string) bool {
	var js interface{}
	return json.Unmarshal([]byte(input), &js) == nil
}

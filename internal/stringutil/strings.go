// Package stringutil provides common string manipulation utilities.
package stringutil

import "unicode"

// IsNumeric checks if a string contains only digits.
// Returns false for empty strings.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsNameToken reports whether a token looks like a course-name candidate:
// at least two runes, all of them Han ideographs, letters, or digits.
//
// Example:
//
//	IsNameToken("高等数学") returns true
//	IsNameToken("数") returns false
//	IsNameToken("1-16") returns false
func IsNameToken(s string) bool {
	count := 0
	for _, r := range s {
		if !unicode.Is(unicode.Han, r) && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
		count++
	}
	return count >= 2
}

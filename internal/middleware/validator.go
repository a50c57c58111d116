package middleware

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Input validation utilities

const maxSymptomsLen = 2000

// ValidateSymptoms checks the free-text symptom description before it is
// forwarded to inference or persistence.
func ValidateSymptoms(symptoms string) error {
	trimmed := strings.TrimSpace(symptoms)
	if trimmed == "" {
		return fmt.Errorf("symptoms cannot be empty")
	}
	if utf8.RuneCountInString(trimmed) > maxSymptomsLen {
		return fmt.Errorf("symptoms too long (max %d characters)", maxSymptomsLen)
	}
	return nil
}

// ValidateRecordID checks a record identifier from a URL path.
func ValidateRecordID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("record id cannot be empty")
	}
	if len(id) > 64 {
		return fmt.Errorf("record id too long")
	}
	for _, r := range id {
		if !isIDRune(r) {
			return fmt.Errorf("record id contains invalid characters")
		}
	}
	return nil
}

func isIDRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_':
		return true
	}
	return false
}

package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var controlChars = regexp.MustCompile(`[\x00-\x1f\x7f]`)

// ValidateFileName rejects empty names, path separators and traversal
func ValidateFileName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("file name cannot be empty")
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid file name: %s", name)
	}
	if len(name) > 255 {
		return fmt.Errorf("file name too long: %d characters", len(name))
	}
	if controlChars.MatchString(name) {
		return fmt.Errorf("file name contains control characters")
	}
	return nil
}

// SanitizeString removes control characters
func SanitizeString(s string) string {
	return controlChars.ReplaceAllString(s, "")
}

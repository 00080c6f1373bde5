package util

import (
	"errors"
	"regexp"
	"strings"
)

var (
	emailUnsafe    = regexp.MustCompile(`[^a-zA-Z0-9@._-]`)
	fileNameUnsafe = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
)

// SanitizeEmailKey returns an email made safe for use inside a storage key.
// Characters outside [a-zA-Z0-9@._-] are replaced with underscores.
func SanitizeEmailKey(email string) (string, error) {
	s := strings.TrimSpace(email)
	if s == "" {
		return "", errors.New("invalid email")
	}
	return emailUnsafe.ReplaceAllString(s, "_"), nil
}

// SanitizeFileName returns a file name made safe for use inside a storage
// key. Path separators and traversal patterns are rejected up front;
// everything outside [a-zA-Z0-9._-] is replaced with underscores.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.TrimSpace(name)
	if s == "" {
		return "", errors.New("invalid file name")
	}
	return fileNameUnsafe.ReplaceAllString(s, "_"), nil
}

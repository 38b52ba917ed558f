// internal/platform/validator/validator.go
package validator

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// URL validators

// IsURL reports whether s is an absolute URL with scheme and host.
func IsURL(urlStr string) bool {
	if len(urlStr) == 0 {
		return false
	}

	parsed, err := url.Parse(urlStr)
	if err != nil {
		return false
	}

	return parsed.Scheme != "" && parsed.Host != ""
}

// IsHTTPURL reports whether s is absolute and uses http or https.
func IsHTTPURL(urlStr string) bool {
	if !IsURL(urlStr) {
		return false
	}
	parsed, _ := url.Parse(urlStr)
	scheme := strings.ToLower(parsed.Scheme)
	return scheme == "http" || scheme == "https"
}

// Title validators

// IsEmpty reports whether s is empty or only whitespace.
func IsEmpty(s string) bool {
	return len(strings.TrimSpace(s)) == 0
}

// MaxLength reports whether s has at most max runes.
func MaxLength(s string, max int) bool {
	return utf8.RuneCountInString(s) <= max
}

// IsPrintable rejects control characters, newlines included.
func IsPrintable(s string) bool {
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}
	return true
}

package platform

import (
	"os"
	"strings"
)

// Locale environment variables, in precedence order
var localeEnvVars = []string{"LC_ALL", "LC_MESSAGES", "LANG"}

// Default values
const (
	DefaultLocale = "en"
)

// DetectLocale returns the ambient system locale as a two-letter language
// code. Falls back to English when the environment gives nothing usable;
// the preferences layer lets users override it either way.
func DetectLocale() string {
	for _, key := range localeEnvVars {
		if value := os.Getenv(key); value != "" {
			if code := normalizeLocale(value); code != "" {
				return code
			}
		}
	}
	return DefaultLocale
}

// normalizeLocale reduces values like "en_US.UTF-8" or "pt-BR" to "en" / "pt"
func normalizeLocale(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "C") || strings.EqualFold(value, "POSIX") {
		return ""
	}

	value = strings.FieldsFunc(value, func(r rune) bool {
		return r == '.' || r == '@'
	})[0]
	value = strings.FieldsFunc(value, func(r rune) bool {
		return r == '_' || r == '-'
	})[0]

	value = strings.ToLower(strings.TrimSpace(value))
	if len(value) < 2 {
		return ""
	}
	return value[:2]
}

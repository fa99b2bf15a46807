// Package util provides environment variable parsing helpers shared across components.
package util

import (
	"log/slog"
	"os"
	"strings"
)

// boolWords are the accepted spellings of boolean environment values, matched case-insensitively.
var boolWords = map[string]bool{
	"true": true, "1": true, "yes": true, "on": true,
	"false": false, "0": false, "no": false, "off": false,
}

// StringEnv returns the trimmed value of key, or defaultValue when it is unset or blank.
func StringEnv(key, defaultValue string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultValue
	}
	return val
}

// BoolEnv returns the boolean value of key. Unset, blank and unrecognized values yield
// defaultValue; an unrecognized value is logged.
func BoolEnv(key string, defaultValue bool) bool {
	val := StringEnv(key, "")
	if val == "" {
		return defaultValue
	}
	b, ok := boolWords[strings.ToLower(val)]
	if !ok {
		slog.Warn("util.BoolEnv: invalid boolean value, using default", "key", key, "value", val, "default", defaultValue)
		return defaultValue
	}
	return b
}

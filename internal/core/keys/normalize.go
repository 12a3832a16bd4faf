package keys

import (
	"strings"
	"unicode/utf8"
)

// Normalize maps a raw hook-supplied key name to its canonical display token.
// Single characters upper-case directly; multi-word names keep "space" intact
// and join the remaining words with underscores.
func Normalize(rawName string) string {
	if utf8.RuneCountInString(rawName) == 1 {
		return strings.ToUpper(rawName)
	}
	token := strings.ReplaceAll(rawName, " space", "space")
	token = strings.ReplaceAll(token, " ", "_")
	return strings.ToUpper(token)
}

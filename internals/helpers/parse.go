// file: internals/helpers/parse.go
package helper

import "strings"

// ParseBoolLoose accepts the boolean spellings clients actually send.
// Empty string is false without error.
func ParseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return false, true
	case "1", "t", "true", "y", "yes", "on":
		return true, true
	case "0", "f", "false", "n", "no", "off":
		return false, true
	default:
		return false, false
	}
}

package utils

import "strings"

// CanonicalDNSName returns a DNS name in canonical form:
// - Lowercased
// - Trimmed of surrounding whitespace
// - Exactly one trailing dot, so it can be compared with configured zone origins.
// Empty or whitespace-only input returns "".
func CanonicalDNSName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	return strings.TrimRight(name, ".") + "."
}

package utils

import "github.com/miekg/dns"

// ParentName strips the leftmost label of a fully qualified name. Escaped dots
// ("a\.b") stay inside their label. The parent of a single label name, and of
// the root itself, is the root.
func ParentName(name string) string {
	off, end := dns.NextLabel(name, 0)
	if end || off >= len(name) {
		return "."
	}
	return name[off:]
}

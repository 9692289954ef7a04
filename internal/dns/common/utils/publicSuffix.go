package utils

import "golang.org/x/net/publicsuffix"

// IsPublicSuffix reports whether name is itself an ICANN public suffix
// (e.g. "com." or "co.uk."), which is almost never a zone an operator owns.
func IsPublicSuffix(name string) bool {
	name = CanonicalDNSName(name)
	if name == "" || name == "." {
		return false
	}
	name = name[:len(name)-1]
	suffix, icann := publicsuffix.PublicSuffix(name)
	return icann && suffix == name
}

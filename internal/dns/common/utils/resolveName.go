package utils

import (
	"fmt"
	"strings"

	"github.com/miekg/dns"

	"github.com/haukened/simple-dns/internal/dns/domain"
)

// ResolveName expands a configured name against a zone origin into a canonical FQDN.
//
//   - "@" resolves to the origin itself.
//   - A name ending in "." is already absolute and is used as-is.
//   - Anything else is treated as relative: name + "." + origin.
//
// The result is lowercased and carries the trailing root label. Both the origin
// and the result must be legal domain names, otherwise a *domain.NameSyntaxError
// is returned.
func ResolveName(name, origin string) (string, error) {
	fqOrigin, err := CheckName(origin)
	if err != nil {
		return "", err
	}

	name = strings.TrimSpace(name)
	switch {
	case name == domain.ApexName:
		return fqOrigin, nil
	case name == "":
		return "", &domain.NameSyntaxError{Name: name, Reason: "empty name"}
	case strings.HasSuffix(name, "."):
		return CheckName(name)
	case fqOrigin == ".":
		return CheckName(name + ".")
	default:
		return CheckName(name + "." + fqOrigin)
	}
}

// CheckName validates name as a domain name and returns it in canonical form.
// Labels may hold letters, digits, '-' and '_'; a label made of a single '*'
// is allowed for wildcards.
func CheckName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", &domain.NameSyntaxError{Name: name, Reason: "empty name"}
	}
	if trimmed == "." {
		return ".", nil
	}

	fqdn := dns.Fqdn(trimmed)
	for _, label := range strings.Split(strings.TrimSuffix(fqdn, "."), ".") {
		if reason := checkLabel(label); reason != "" {
			return "", &domain.NameSyntaxError{Name: name, Reason: reason}
		}
	}
	if len(fqdn) > 255 {
		return "", &domain.NameSyntaxError{Name: name, Reason: "name exceeds 255 octets"}
	}
	if _, ok := dns.IsDomainName(fqdn); !ok {
		return "", &domain.NameSyntaxError{Name: name, Reason: "not a valid domain name"}
	}
	return dns.CanonicalName(fqdn), nil
}

func checkLabel(label string) string {
	if label == "" {
		return "empty label"
	}
	if len(label) > 63 {
		return fmt.Sprintf("label %.16q... exceeds 63 octets", label)
	}
	if label == "*" {
		return ""
	}
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return fmt.Sprintf("illegal character %q in label %q", r, label)
		}
	}
	return ""
}

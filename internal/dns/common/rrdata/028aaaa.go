package rrdata

import (
	"errors"
	"net/netip"

	"github.com/haukened/simple-dns/internal/dns/domain"
)

var (
	errNotIPv6   = errors.New("not an IPv6 address")
	errScopedIP6 = errors.New("scoped addresses are not allowed in records")
)

// compileAAAAData parses an IPv6 address literal.
func compileAAAAData(value string) (domain.RData, error) {
	// value = "2001:db8::ff00:42:8329"
	addr, err := netip.ParseAddr(value)
	if err != nil {
		return nil, &domain.RecordValueError{Type: domain.RRTypeAAAA, Value: value, Err: err}
	}
	if !addr.Is6() {
		return nil, &domain.RecordValueError{Type: domain.RRTypeAAAA, Value: value, Err: errNotIPv6}
	}
	if addr.Zone() != "" {
		return nil, &domain.RecordValueError{Type: domain.RRTypeAAAA, Value: value, Err: errScopedIP6}
	}
	return domain.AAAAData{Addr: addr}, nil
}

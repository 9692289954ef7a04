package rrdata

import (
	"errors"
	"net/netip"

	"github.com/haukened/simple-dns/internal/dns/domain"
)

var errNotIPv4 = errors.New("not an IPv4 address")

// compileAData parses a dotted-decimal IPv4 address.
func compileAData(value string) (domain.RData, error) {
	// value = "192.168.0.1"
	addr, err := netip.ParseAddr(value)
	if err != nil {
		return nil, &domain.RecordValueError{Type: domain.RRTypeA, Value: value, Err: err}
	}
	// rejects IPv6 and IPv4-mapped IPv6 forms
	if !addr.Is4() {
		return nil, &domain.RecordValueError{Type: domain.RRTypeA, Value: value, Err: errNotIPv4}
	}
	return domain.AData{Addr: addr}, nil
}

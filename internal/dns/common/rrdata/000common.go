// Package rrdata compiles textual record values from configuration into typed record data.
package rrdata

import (
	"github.com/haukened/simple-dns/internal/dns/domain"
)

// Compile converts a configured value of the given type into typed record data.
// origin is the zone the value belongs to; it is used to expand relative names.
//
// Only A, AAAA and CNAME can be configured. Any other type yields a
// *domain.UnsupportedRecordTypeError; malformed values yield a
// *domain.RecordValueError or *domain.NameSyntaxError.
func Compile(rrType domain.RRType, value, origin string) (domain.RData, error) {
	switch rrType {
	case domain.RRTypeA: // 1
		return compileAData(value)
	case domain.RRTypeCNAME: // 5
		return compileCNAMEData(value, origin)
	case domain.RRTypeAAAA: // 28
		return compileAAAAData(value)
	default:
		return nil, unsupported(rrType)
	}
}

// Supported reports whether values of rrType can be compiled.
func Supported(rrType domain.RRType) bool {
	switch rrType {
	case domain.RRTypeA, domain.RRTypeCNAME, domain.RRTypeAAAA:
		return true
	default:
		return false
	}
}

func unsupported(t domain.RRType) error {
	return &domain.UnsupportedRecordTypeError{Type: t.String()}
}

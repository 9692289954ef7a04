package domain

import (
	"errors"
	"fmt"
)

// ErrUnsupportedRecordType is matched by every UnsupportedRecordTypeError via errors.Is.
var ErrUnsupportedRecordType = errors.New("unsupported record type")

// NameSyntaxError reports a domain or record name that is not a legal DNS name.
type NameSyntaxError struct {
	Name   string
	Reason string
}

func (e *NameSyntaxError) Error() string {
	return fmt.Sprintf("invalid domain name %q: %s", e.Name, e.Reason)
}

// RecordValueError reports a record value that cannot be parsed for its type,
// such as a malformed address literal.
type RecordValueError struct {
	Type  RRType
	Value string
	Err   error
}

func (e *RecordValueError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid %s record value %q", e.Type, e.Value)
	}
	return fmt.Sprintf("invalid %s record value %q: %v", e.Type, e.Value, e.Err)
}

func (e *RecordValueError) Unwrap() error { return e.Err }

// UnsupportedRecordTypeError reports a record type that zones cannot be compiled from.
// Type holds the mnemonic as configured.
type UnsupportedRecordTypeError struct {
	Type string
}

func (e *UnsupportedRecordTypeError) Error() string {
	return fmt.Sprintf("unsupported record type %q (supported: A, AAAA, CNAME)", e.Type)
}

// Is lets errors.Is(err, ErrUnsupportedRecordType) match any instance.
func (e *UnsupportedRecordTypeError) Is(target error) bool {
	return target == ErrUnsupportedRecordType
}

// ZoneConstructionError wraps any failure that aborts the build of a zone.
// Owner and Type are set when the failure is tied to a single configured record.
type ZoneConstructionError struct {
	Zone  string
	Owner string
	Type  RRType
	Err   error
}

func (e *ZoneConstructionError) Error() string {
	if e.Owner == "" {
		return fmt.Sprintf("zone %s: %v", e.Zone, e.Err)
	}
	return fmt.Sprintf("zone %s: record %s %s: %v", e.Zone, e.Owner, e.Type, e.Err)
}

func (e *ZoneConstructionError) Unwrap() error { return e.Err }

// ForwardSetupError reports an invalid upstream resolver configuration.
type ForwardSetupError struct {
	Origin string
	Err    error
}

func (e *ForwardSetupError) Error() string {
	return fmt.Sprintf("forward authority %s: %v", e.Origin, e.Err)
}

func (e *ForwardSetupError) Unwrap() error { return e.Err }

package domain

import (
	"fmt"
	"net/netip"
)

// DefaultTTL is the TTL, in seconds, of every record compiled from configuration.
const DefaultTTL uint32 = 3600

// RData is the typed data of a resource record.
// Implementations are comparable values so identical data can be detected with ==.
type RData interface {
	Type() RRType
	String() string
}

// AData holds an IPv4 address.
type AData struct {
	Addr netip.Addr
}

func (AData) Type() RRType     { return RRTypeA }
func (d AData) String() string { return d.Addr.String() }

// AAAAData holds an IPv6 address.
type AAAAData struct {
	Addr netip.Addr
}

func (AAAAData) Type() RRType     { return RRTypeAAAA }
func (d AAAAData) String() string { return d.Addr.String() }

// CNAMEData holds the fully-qualified canonical name an alias points to.
type CNAMEData struct {
	Target string
}

func (CNAMEData) Type() RRType     { return RRTypeCNAME }
func (d CNAMEData) String() string { return d.Target }

// SOAData holds the start-of-authority fields of a zone.
type SOAData struct {
	MName   string // primary name server
	RName   string // responsible party mailbox, in domain name form
	Serial  uint32
	Refresh uint32
	Retry   uint32
	Expire  uint32
	Minimum uint32
}

func (SOAData) Type() RRType { return RRTypeSOA }
func (d SOAData) String() string {
	return fmt.Sprintf("%s %s %d %d %d %d %d", d.MName, d.RName, d.Serial, d.Refresh, d.Retry, d.Expire, d.Minimum)
}

// ResourceRecord is a single authoritative record of a zone.
type ResourceRecord struct {
	Name string
	TTL  uint32
	Data RData
}

// Type returns the record type carried by the record data.
func (rr ResourceRecord) Type() RRType {
	if rr.Data == nil {
		return 0
	}
	return rr.Data.Type()
}

// RRKey identifies a RecordSet within a zone.
type RRKey struct {
	Name string
	Type RRType
}

func (k RRKey) String() string {
	return k.Name + "|" + k.Type.String()
}

// Less orders keys by name, then type.
func (k RRKey) Less(o RRKey) bool {
	if k.Name != o.Name {
		return k.Name < o.Name
	}
	return k.Type < o.Type
}

// RecordSet holds all records sharing an owner name and type.
type RecordSet struct {
	Name    string
	Type    RRType
	TTL     uint32
	Records []ResourceRecord
}

// NewRecordSet returns an empty RecordSet for the given owner and type.
func NewRecordSet(name string, rrtype RRType, ttl uint32) *RecordSet {
	return &RecordSet{Name: name, Type: rrtype, TTL: ttl}
}

// Key returns the RRKey of the set.
func (s *RecordSet) Key() RRKey {
	return RRKey{Name: s.Name, Type: s.Type}
}

// Insert adds a record to the set. Records whose data is already present are
// not stored twice; Insert reports whether the record was added.
func (s *RecordSet) Insert(rr ResourceRecord) (bool, error) {
	if rr.Name != s.Name || rr.Type() != s.Type {
		return false, fmt.Errorf("record %s %s does not belong to set %s", rr.Name, rr.Type(), s.Key())
	}
	for _, existing := range s.Records {
		if existing.Data == rr.Data {
			return false, nil
		}
	}
	s.Records = append(s.Records, rr)
	return true, nil
}

// Len returns the number of records in the set.
func (s *RecordSet) Len() int {
	return len(s.Records)
}

func (s *RecordSet) clone() RecordSet {
	c := *s
	c.Records = append([]ResourceRecord(nil), s.Records...)
	return c
}

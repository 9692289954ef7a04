package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/miekg/dns"
)

// ZoneType classifies how an authority answers for its zone.
type ZoneType uint8

const (
	// ZoneTypePrimary zones answer from locally configured records.
	ZoneTypePrimary ZoneType = iota + 1
	// ZoneTypeForward zones hold no records and forward to upstream resolvers.
	ZoneTypeForward
)

func (t ZoneType) String() string {
	switch t {
	case ZoneTypePrimary:
		return "Primary"
	case ZoneTypeForward:
		return "Forward"
	default:
		return fmt.Sprintf("ZoneType(%d)", t)
	}
}

// Zone validation errors, matched with errors.Is.
var (
	ErrInvalidOrigin  = errors.New("zone origin must be a fully-qualified name")
	ErrMissingSOA     = errors.New("primary zone must have exactly one SOA record at its apex")
	ErrMisplacedSOA   = errors.New("SOA record is only allowed at the zone apex")
	ErrOutOfZone      = errors.New("owner name is outside the zone")
	ErrCNAMEConflict  = errors.New("CNAME cannot coexist with other data at the same name")
	ErrEmptyRecordSet = errors.New("record set has no records")
)

// Zone is an immutable set of RecordSets under one apex.
// All accessors return copies, so a Zone can be shared between goroutines.
type Zone struct {
	origin string
	kind   ZoneType
	sets   map[RRKey]RecordSet
	names  map[string][]RRKey
	keys   []RRKey
}

// NewZone validates and freezes the given RecordSets into a Zone.
// Names are expected in canonical form (lowercase, trailing dot).
func NewZone(origin string, kind ZoneType, sets map[RRKey]*RecordSet) (*Zone, error) {
	if origin == "" || !strings.HasSuffix(origin, ".") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOrigin, origin)
	}

	z := &Zone{
		origin: origin,
		kind:   kind,
		sets:   make(map[RRKey]RecordSet, len(sets)),
		names:  make(map[string][]RRKey),
		keys:   make([]RRKey, 0, len(sets)),
	}

	for key := range sets {
		z.keys = append(z.keys, key)
	}
	sort.Slice(z.keys, func(i, j int) bool { return z.keys[i].Less(z.keys[j]) })

	for _, key := range z.keys {
		set := sets[key]
		if set == nil || set.Len() == 0 {
			return nil, fmt.Errorf("%w: %s", ErrEmptyRecordSet, key)
		}
		if !IsInZone(key.Name, origin) {
			return nil, fmt.Errorf("%w: %s not under %s", ErrOutOfZone, key.Name, origin)
		}
		if key.Type == RRTypeSOA && key.Name != origin {
			return nil, fmt.Errorf("%w: %s", ErrMisplacedSOA, key.Name)
		}
		if prev := z.names[key.Name]; len(prev) > 0 && (key.Type == RRTypeCNAME || prev[0].Type == RRTypeCNAME) {
			return nil, fmt.Errorf("%w: %s", ErrCNAMEConflict, key.Name)
		}
		z.sets[key] = set.clone()
		z.names[key.Name] = append(z.names[key.Name], key)
	}

	if kind == ZoneTypePrimary {
		soa, ok := z.sets[RRKey{Name: origin, Type: RRTypeSOA}]
		if !ok || soa.Len() != 1 {
			return nil, ErrMissingSOA
		}
	}

	return z, nil
}

// Origin returns the apex name of the zone.
func (z *Zone) Origin() string { return z.origin }

// Type returns the zone classification.
func (z *Zone) Type() ZoneType { return z.kind }

// Len returns the number of RecordSets in the zone.
func (z *Zone) Len() int { return len(z.sets) }

// Keys returns every RecordSet key, ordered by name then type.
func (z *Zone) Keys() []RRKey {
	return append([]RRKey(nil), z.keys...)
}

// RecordSet returns a copy of the RecordSet stored under (name, rrtype).
func (z *Zone) RecordSet(name string, rrtype RRType) (RecordSet, bool) {
	set, ok := z.sets[RRKey{Name: name, Type: rrtype}]
	if !ok {
		return RecordSet{}, false
	}
	return set.clone(), true
}

// RecordSetsAt returns copies of every RecordSet owned by name, ordered by type.
func (z *Zone) RecordSetsAt(name string) []RecordSet {
	keys := z.names[name]
	out := make([]RecordSet, 0, len(keys))
	for _, key := range keys {
		set := z.sets[key]
		out = append(out, set.clone())
	}
	return out
}

// HasName reports whether any RecordSet is owned by name.
func (z *Zone) HasName(name string) bool {
	_, ok := z.names[name]
	return ok
}

// SOA returns the apex SOA record of the zone.
func (z *Zone) SOA() (ResourceRecord, bool) {
	set, ok := z.sets[RRKey{Name: z.origin, Type: RRTypeSOA}]
	if !ok || set.Len() == 0 {
		return ResourceRecord{}, false
	}
	return set.Records[0], true
}

// IsInZone reports whether name is origin or a descendant of it, comparing
// whole labels so an escaped dot never splits a label.
func IsInZone(name, origin string) bool {
	if origin == "." {
		return strings.HasSuffix(name, ".")
	}
	return dns.IsSubDomain(origin, name)
}

package domain

import "sort"

// ApexName is the owner name that refers to the zone apex in configuration.
const ApexName = "@"

// RecordInfo is one configured entry of a domain: an owner name, a record type
// and one or more textual values.
type RecordInfo struct {
	// Name is "@" for the apex, a label relative to the domain, or an absolute name.
	Name    string   `validate:"required"`
	Type    RRType   `validate:"required"`
	Records []string `validate:"required,min=1,dive,required"`
}

// NewRecordInfo builds a RecordInfo from its parts.
func NewRecordInfo(name string, rrtype RRType, records ...string) RecordInfo {
	return RecordInfo{Name: name, Type: rrtype, Records: records}
}

// ZoneConfig is the compiled-from configuration: a bind address, which the
// catalog does not interpret, and the records of every served domain.
type ZoneConfig struct {
	Bind    string                  `validate:"required,hostname_port|tcp_addr"`
	Domains map[string][]RecordInfo `validate:"dive,keys,required,endkeys,dive"`
}

// DomainNames returns the configured domains in lexicographic order.
func (c ZoneConfig) DomainNames() []string {
	names := make([]string, 0, len(c.Domains))
	for name := range c.Domains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

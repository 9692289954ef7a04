package rrdata

import (
	"fmt"

	"github.com/haukened/simple-dns/internal/dns/common/utils"
	"github.com/haukened/simple-dns/internal/dns/domain"
)

// DefaultSOA holds the start-of-authority fields synthesized for every primary zone.
var DefaultSOA = domain.SOAData{
	MName:   "sns.dns.icann.org.",
	RName:   "noc.dns.icann.org.",
	Serial:  20,
	Refresh: 7200,
	Retry:   600,
	Expire:  3600000,
	Minimum: 60,
}

// NewSOAData validates the name fields of an SOA and returns it with canonical names.
// Empty names fall back to DefaultSOA.
func NewSOAData(soa domain.SOAData) (domain.SOAData, error) {
	if soa.MName == "" {
		soa.MName = DefaultSOA.MName
	}
	if soa.RName == "" {
		soa.RName = DefaultSOA.RName
	}
	mname, err := utils.CheckName(soa.MName)
	if err != nil {
		return domain.SOAData{}, fmt.Errorf("invalid SOA mname: %w", err)
	}
	rname, err := utils.CheckName(soa.RName)
	if err != nil {
		return domain.SOAData{}, fmt.Errorf("invalid SOA rname: %w", err)
	}
	soa.MName, soa.RName = mname, rname
	return soa, nil
}

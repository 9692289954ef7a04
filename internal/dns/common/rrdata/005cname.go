package rrdata

import (
	"github.com/haukened/simple-dns/internal/dns/common/utils"
	"github.com/haukened/simple-dns/internal/dns/domain"
)

// compileCNAMEData expands the alias target the same way owner names are expanded.
func compileCNAMEData(value, origin string) (domain.RData, error) {
	// value = "www" or "cname.example.net."
	target, err := utils.ResolveName(value, origin)
	if err != nil {
		return nil, err
	}
	return domain.CNAMEData{Target: target}, nil
}

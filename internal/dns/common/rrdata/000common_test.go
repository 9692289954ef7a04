package rrdata

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/haukened/simple-dns/internal/dns/domain"
)

func TestCompile_UnsupportedTypes(t *testing.T) {
	types := []domain.RRType{
		domain.RRTypeNS,
		domain.RRTypeSOA,
		domain.RRTypeMX,
		domain.RRTypeTXT,
		domain.RRTypeSRV,
		domain.RRTypeCAA,
		domain.RRTypeANY,
		domain.RRType(0),
		domain.RRType(9999),
	}

	for _, rrType := range types {
		t.Run(rrType.String(), func(t *testing.T) {
			got, err := Compile(rrType, "anything", "example.com.")
			assert.Nil(t, got)
			var typeErr *domain.UnsupportedRecordTypeError
			if assert.ErrorAs(t, err, &typeErr) {
				assert.Equal(t, rrType.String(), typeErr.Type)
			}
			assert.ErrorIs(t, err, domain.ErrUnsupportedRecordType)
			assert.False(t, Supported(rrType))
		})
	}
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported(domain.RRTypeA))
	assert.True(t, Supported(domain.RRTypeAAAA))
	assert.True(t, Supported(domain.RRTypeCNAME))
}

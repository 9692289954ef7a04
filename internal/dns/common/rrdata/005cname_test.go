package rrdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/simple-dns/internal/dns/domain"
)

func TestCompileCNAMEData(t *testing.T) {
	tests := []struct {
		value, origin, expected string
	}{
		{"www", "example.com.", "www.example.com."},
		{"@", "example.com.", "example.com."},
		{"target.example.net.", "example.com.", "target.example.net."},
		{"Mail", "example.com", "mail.example.com."},
	}

	for _, tt := range tests {
		got, err := Compile(domain.RRTypeCNAME, tt.value, tt.origin)
		require.NoError(t, err)
		assert.Equal(t, domain.CNAMEData{Target: tt.expected}, got)
	}
}

func TestCompileCNAMEData_Invalid(t *testing.T) {
	got, err := Compile(domain.RRTypeCNAME, "bad..name", "example.com.")
	assert.Nil(t, got)
	var nameErr *domain.NameSyntaxError
	assert.ErrorAs(t, err, &nameErr)
}

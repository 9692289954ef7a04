package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/simple-dns/internal/dns/domain"
)

func TestResolveName(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		origin   string
		expected string
	}{
		{name: "apex", label: "@", origin: "example.com.", expected: "example.com."},
		{name: "apex from relative origin", label: "@", origin: "example.com", expected: "example.com."},
		{name: "relative label", label: "www", origin: "example.com.", expected: "www.example.com."},
		{name: "relative label, relative origin", label: "www", origin: "example.com", expected: "www.example.com."},
		{name: "multi-label relative", label: "api.v1", origin: "example.com.", expected: "api.v1.example.com."},
		{name: "absolute name kept", label: "target.example.net.", origin: "example.com.", expected: "target.example.net."},
		{name: "lowercased", label: "WWW", origin: "Example.COM", expected: "www.example.com."},
		{name: "wildcard", label: "*", origin: "example.com.", expected: "*.example.com."},
		{name: "service label", label: "_sip._tcp", origin: "example.com.", expected: "_sip._tcp.example.com."},
		{name: "under root", label: "localhost", origin: ".", expected: "localhost."},
		{name: "root apex", label: "@", origin: ".", expected: "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveName(tt.label, tt.origin)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveName_Errors(t *testing.T) {
	longLabel := strings.Repeat("a", 64)
	longName := strings.Repeat("abcdefghi.", 26) // 260 octets

	tests := []struct {
		name   string
		label  string
		origin string
		reason string
	}{
		{name: "empty origin", label: "www", origin: "", reason: "empty name"},
		{name: "empty label", label: "", origin: "example.com.", reason: "empty name"},
		{name: "double dot", label: "www..mail", origin: "example.com.", reason: "empty label"},
		{name: "bad origin", label: "@", origin: "exa mple.com", reason: "illegal character"},
		{name: "space in label", label: "my host", origin: "example.com.", reason: "illegal character"},
		{name: "illegal punctuation", label: "host!", origin: "example.com.", reason: "illegal character"},
		{name: "label too long", label: longLabel, origin: "example.com.", reason: "exceeds 63 octets"},
		{name: "name too long", label: longName, origin: "example.com.", reason: "exceeds 255 octets"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveName(tt.label, tt.origin)
			assert.Empty(t, got)
			var nameErr *domain.NameSyntaxError
			require.ErrorAs(t, err, &nameErr)
			assert.Contains(t, nameErr.Reason, tt.reason)
		})
	}
}

func TestCheckName(t *testing.T) {
	got, err := CheckName(" Example.Org ")
	require.NoError(t, err)
	assert.Equal(t, "example.org.", got)

	got, err = CheckName(".")
	require.NoError(t, err)
	assert.Equal(t, ".", got)

	_, err = CheckName("example..org")
	assert.Error(t, err)
}

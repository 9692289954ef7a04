// Package zone loads the zone document and compiles each configured domain
// into an immutable primary zone.
package zone

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"

	"github.com/haukened/simple-dns/internal/dns/domain"
)

// recordDocument is one entry under a domain as written in the document.
type recordDocument struct {
	Name    string   `koanf:"name"`
	Type    string   `koanf:"type"`
	Records []string `koanf:"records"`
}

type zoneDocument struct {
	Bind    string                      `koanf:"bind"`
	Domains map[string][]recordDocument `koanf:"domains"`
}

// parserFor picks a koanf parser from the file extension.
func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config file type %q", filepath.Ext(path))
	}
}

// LoadConfig reads and validates the zone document at path (YAML, JSON or TOML).
// A record without a type is an A record. A type name that is not a known
// record type fails with *domain.UnsupportedRecordTypeError; known types that
// cannot be compiled are left for the builder to reject.
func LoadConfig(path string) (domain.ZoneConfig, error) {
	parser, err := parserFor(path)
	if err != nil {
		return domain.ZoneConfig{}, err
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return domain.ZoneConfig{}, fmt.Errorf("failed to load config file %s: %w", path, err)
	}

	// Domain keys contain dots, so decode from the raw nested map rather than by path.
	var doc zoneDocument
	if err := k.Unmarshal("", &doc); err != nil {
		return domain.ZoneConfig{}, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	cfg, err := doc.toConfig()
	if err != nil {
		return domain.ZoneConfig{}, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(&cfg); err != nil {
		return domain.ZoneConfig{}, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

func (d zoneDocument) toConfig() (domain.ZoneConfig, error) {
	cfg := domain.ZoneConfig{
		Bind:    strings.TrimSpace(d.Bind),
		Domains: make(map[string][]domain.RecordInfo, len(d.Domains)),
	}
	for name, entries := range d.Domains {
		infos := make([]domain.RecordInfo, 0, len(entries))
		for _, e := range entries {
			t, err := parseType(e.Type)
			if err != nil {
				return domain.ZoneConfig{}, fmt.Errorf("domain %s, record %q: %w", name, e.Name, err)
			}
			infos = append(infos, domain.NewRecordInfo(strings.TrimSpace(e.Name), t, e.Records...))
		}
		cfg.Domains[name] = infos
	}
	return cfg, nil
}

func parseType(s string) (domain.RRType, error) {
	if strings.TrimSpace(s) == "" {
		return domain.RRTypeA, nil
	}
	t := domain.RRTypeFromString(s)
	if !t.IsValid() {
		return 0, &domain.UnsupportedRecordTypeError{Type: s}
	}
	return t, nil
}

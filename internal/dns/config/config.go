package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/haukened/simple-dns/internal/dns/domain"
)

// AppConfig holds process settings parsed from environment variables.
// The zones themselves live in the document at ConfigFile.
type AppConfig struct {
	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	// ConfigFile is the zone document (YAML, JSON or TOML) holding bind and domains.
	ConfigFile string `koanf:"config_file" validate:"required"`

	// Transport selects the listeners opened on the document's bind address:
	// "dns" (UDP and TCP), "udp" or "tcp".
	Transport string `koanf:"transport" validate:"required,oneof=dns udp tcp"`

	// ForwardServers are the upstream recursive resolvers, in ip:port format,
	// used for every name outside the configured zones.
	ForwardServers []string `koanf:"forward_servers" validate:"required,dive,ip_port"`

	// ForwardTimeout bounds a single upstream exchange.
	ForwardTimeout time.Duration `koanf:"forward_timeout" validate:"gt=0"`

	// ForwardNet is the transport used towards upstreams.
	ForwardNet string `koanf:"forward_net" validate:"required,oneof=udp tcp"`

	// ForwardParallel races all upstreams instead of trying them in order.
	ForwardParallel bool `koanf:"forward_parallel"`

	// RouteCacheSize is the number of query-name routes memoized by the catalog.
	// Zero disables the memo.
	RouteCacheSize int `koanf:"route_cache_size" validate:"gte=0"`

	// StartupTimeout bounds catalog assembly.
	StartupTimeout time.Duration `koanf:"startup_timeout" validate:"gt=0"`

	// SOA fields synthesized at the apex of every configured zone.
	SOAMName   string `koanf:"soa_mname" validate:"required,fqdn"`
	SOARName   string `koanf:"soa_rname" validate:"required,fqdn"`
	SOASerial  uint32 `koanf:"soa_serial"`
	SOARefresh uint32 `koanf:"soa_refresh"`
	SOARetry   uint32 `koanf:"soa_retry"`
	SOAExpire  uint32 `koanf:"soa_expire"`
	SOAMinimum uint32 `koanf:"soa_minimum"`
}

// DEFAULT_APP_CONFIG defines the defaults applied before environment overrides.
// The SOA values and Google public DNS upstreams keep compatibility with
// existing deployments.
var DEFAULT_APP_CONFIG = AppConfig{
	Env:        "prod",
	LogLevel:   "info",
	ConfigFile: "/etc/simple-dns/config.yaml",
	Transport:  "dns",
	ForwardServers: []string{
		"8.8.8.8:53",
		"8.8.4.4:53",
		"[2001:4860:4860::8888]:53",
		"[2001:4860:4860::8844]:53",
	},
	ForwardTimeout: 5 * time.Second,
	ForwardNet:     "udp",
	RouteCacheSize: 4096,
	StartupTimeout: 30 * time.Second,
	SOAMName:       "sns.dns.icann.org.",
	SOARName:       "noc.dns.icann.org.",
	SOASerial:      20,
	SOARefresh:     7200,
	SOARetry:       600,
	SOAExpire:      3600000,
	SOAMinimum:     60,
}

// SOA returns the configured start-of-authority fields.
func (c *AppConfig) SOA() domain.SOAData {
	return domain.SOAData{
		MName:   c.SOAMName,
		RName:   c.SOARName,
		Serial:  c.SOASerial,
		Refresh: c.SOARefresh,
		Retry:   c.SOARetry,
		Expire:  c.SOAExpire,
		Minimum: c.SOAMinimum,
	}
}

// validIPPort reports whether the field is an "IP:Port" pair with a non-zero port.
func validIPPort(fl validator.FieldLevel) bool {
	addr := fl.Field().String()
	ip, port, err := net.SplitHostPort(addr)
	if err != nil || ip == "" || port == "" {
		return false
	}
	if net.ParseIP(ip) == nil {
		return false
	}
	portNum, err := strconv.ParseUint(port, 10, 16)
	return err == nil && portNum > 0
}

// envLoader loads DNS_-prefixed environment variables, lowercasing keys and
// splitting space or comma separated values into lists. Tests may replace it.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: "DNS_",
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, "DNS_"))
			value = strings.TrimSpace(value)

			if value == "" {
				return key, value
			}

			if strings.Contains(value, " ") || strings.Contains(value, ",") {
				parts := strings.FieldsFunc(value, func(r rune) bool {
					return r == ' ' || r == ','
				})
				return key, parts
			}

			return key, value
		},
	}), nil)
}

// defaultLoader loads DEFAULT_APP_CONFIG. Tests may replace it.
var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DEFAULT_APP_CONFIG, "koanf"), nil)
}

// registerValidation registers the custom "ip_port" rule. Tests may replace it.
var registerValidation = func(v *validator.Validate) error {
	return v.RegisterValidation("ip_port", validIPPort)
}

// Load applies defaults, then environment overrides, and validates the result.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	if err := defaultLoader(k); err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}

	if err := envLoader(k); err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := registerValidation(validate); err != nil {
		return nil, fmt.Errorf("error registering validation: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}

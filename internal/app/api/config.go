package api

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"

	platformobservability "github.com/Apurer/northwind-orders/internal/platform/observability"
)

const defaultAddr = "0.0.0.0:8080"

// Config holds the process configuration, loadable from environment variables
// (NORTHWIND_ prefix), flags, or YAML config files.
type Config struct {
	Addr           string `default:"0.0.0.0:8080" usage:"HTTP listen address"`
	DatabaseURL    string `usage:"PostgreSQL DSN; empty runs on the in-memory repository" flag:"database-url"`
	MigrateOnStart bool   `default:"false" usage:"Apply the schema before serving" flag:"migrate-on-start"`
	SeedFile       string `usage:"YAML reference catalog; empty uses the bundled sample" flag:"seed-file"`
	ServiceName    string `default:"northwind-orders-api" usage:"Service name reported to telemetry" flag:"service-name"`
	Environment    string `default:"local" usage:"Deployment environment reported to telemetry"`
	LogLevel       string `default:"info" usage:"debug, info, warn or error" flag:"log-level"`
	OTLPEndpoint   string `usage:"OTLP/HTTP trace endpoint (host:port)" flag:"otlp-endpoint"`
	Graceful       GracefulConfig
}

// GracefulConfig controls server timeouts and shutdown timing.
type GracefulConfig struct {
	ReadHeaderTimeout time.Duration `default:"5s"  usage:"Maximum time to read request headers" flag:"read-header-timeout"`
	ShutdownTimeout   time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config files
// and args, then applies platform defaults and validates the result.
func LoadConfig(args []string) (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "NORTHWIND",
		Files:     []string{"config.yaml", "/etc/northwind/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
		Args: args,
	})
	if err := loader.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.applyPlatformDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values the loader cannot.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("addr must not be empty"))
	}
	if c.Graceful.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("shutdown timeout must be positive"))
	}
	if _, err := platformobservability.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// applyPlatformDefaults honours the conventional POSTGRES_DSN and PORT variables.
func (c *Config) applyPlatformDefaults() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
	}
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" && c.Addr == defaultAddr {
		c.Addr = "0.0.0.0:" + port
	}
}

// Package config loads server configuration from an optional YAML file with
// environment-variable overrides.
//
// PRECEDENCE (lowest to highest):
//  1. built-in defaults
//  2. the YAML file, if one is given (${VAR} references inside it are
//     expanded from the environment, so secrets can stay out of the file)
//  3. plain environment variables (PORT, DB_PATH, JWT_SECRET, ...)
//
// Env-only deployments — the common case for this backend — just skip the
// file and set the variables.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds everything the server needs at startup.
type Config struct {
	Port          int      `yaml:"port"`
	DBPath        string   `yaml:"db_path"`
	JWTSecret     string   `yaml:"jwt_secret"`
	AdminPassword string   `yaml:"admin_password"`
	UploadDir     string   `yaml:"upload_dir"`
	CORSOrigins   []string `yaml:"cors_origins"`
}

// Default returns the built-in defaults. The JWT secret and admin password
// have no default on purpose — they must come from the file or environment.
func Default() *Config {
	return &Config{
		Port:        4000,
		DBPath:      "data/portfolio.db",
		UploadDir:   "data/uploads",
		CORSOrigins: []string{"*"},
	}
}

// envVarPattern matches ${VAR_NAME} references inside the YAML file.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Load reads the YAML file at path on top of the defaults, then applies
// environment overrides. Pass an empty path for env-only configuration.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}

		// Expand ${VAR} references before parsing, so the file can say
		// `jwt_secret: ${JWT_SECRET}` without holding the secret itself.
		expanded := envVarPattern.ReplaceAllStringFunc(string(data), func(match string) string {
			name := envVarPattern.FindStringSubmatch(match)[1]
			return os.Getenv(name)
		})

		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv overrides fields from plain environment variables.
func (c *Config) applyEnv() error {
	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("config: invalid PORT %q: %w", portStr, err)
		}
		c.Port = port
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		c.AdminPassword = v
	}
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		c.UploadDir = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		c.CORSOrigins = origins
	}
	return nil
}

// Validate checks that the configuration is usable. The token service has
// its own minimum-length check; failing here too means a missing secret is
// reported as "config" rather than surfacing later as an auth failure.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", c.Port)
	}
	return nil
}

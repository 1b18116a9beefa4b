// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, access control) via constructors.
  - Zero Hidden State: No global variables are used to store config. The
    super-admin allow-list in particular is an explicit value handed to the
    access service at startup, never read ad hoc.
*/
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// builtinSuperAdmins are the platform operator identities that always retain
// access, even when the user or grant tables are corrupted or unprovisioned.
// Membership is case-sensitive.
var builtinSuperAdmins = []string{
	"admin@cbrazil.com",
}

// # Configuration Schema

// Config holds all runtime configuration for the Redator API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// Cryptographic keys for identity signing
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// SuperAdminEmails is an operator-supplied comma-separated list of emails
	// merged with the built-in allow-list.
	SuperAdminEmails string `env:"SUPER_ADMIN_EMAILS"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// SuperAdmins returns the merged super-admin allow-list: the built-in operator
// set plus any emails supplied via SUPER_ADMIN_EMAILS.
//
// Entries are trimmed but NOT lowercased — the allow-list is case-sensitive.
func (c *Config) SuperAdmins() []string {
	admins := make([]string, 0, len(builtinSuperAdmins)+2)
	admins = append(admins, builtinSuperAdmins...)

	for _, entry := range strings.Split(c.SuperAdminEmails, ",") {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			admins = append(admins, entry)
		}
	}

	return admins
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

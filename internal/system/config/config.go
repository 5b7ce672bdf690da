/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package config provides structures and functions for loading and managing server configurations.
package config

import (
	"errors"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/halport/portal/internal/system/log"
)

// ServerConfig holds the server configuration details.
type ServerConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	HTTPOnly bool   `yaml:"http_only"`
}

// SecurityConfig holds the TLS configuration details.
type SecurityConfig struct {
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// CORSConfig holds the CORS configuration details.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// DataSource holds the individual database connection details.
type DataSource struct {
	Type     string `yaml:"type"`
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	Path     string `yaml:"path"`
	Options  string `yaml:"options"`

	MaxOpenConns    int `yaml:"max_open_conns"`
	MaxIdleConns    int `yaml:"max_idle_conns"`
	ConnMaxLifetime int `yaml:"conn_max_lifetime"`
}

// DatabaseConfig holds the different database configuration details.
type DatabaseConfig struct {
	Identity DataSource `yaml:"identity"`
	Runtime  DataSource `yaml:"runtime"`
}

// CacheProperty holds the configuration details for an individual named cache.
type CacheProperty struct {
	Name     string `yaml:"name"`
	Disabled bool   `yaml:"disabled"`
	Size     int    `yaml:"size"`
	TTL      int    `yaml:"ttl"`
}

// RedisConfig holds the connection details for the redis cache backend.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// CacheConfig holds the cache configuration details.
type CacheConfig struct {
	Disabled        bool            `yaml:"disabled"`
	Type            string          `yaml:"type"`
	Size            int             `yaml:"size"`
	EvictionPolicy  string          `yaml:"eviction_policy"`
	CleanupInterval int             `yaml:"cleanup_interval"`
	Redis           RedisConfig     `yaml:"redis"`
	Properties      []CacheProperty `yaml:"properties"`
}

// IdentityProviderConfig holds the federated identity provider details used
// to verify inbound access tokens.
type IdentityProviderConfig struct {
	Issuer       string `yaml:"issuer"`
	Audience     string `yaml:"audience"`
	JWKSEndpoint string `yaml:"jwks_endpoint"`
}

// SessionConfig holds the session lifecycle configuration details.
type SessionConfig struct {
	// ValidityPeriod is the session lifetime in seconds.
	ValidityPeriod int64 `yaml:"validity_period"`
	// ExtensionPeriod is the sliding extension applied on each verified request, in seconds.
	ExtensionPeriod int64 `yaml:"extension_period"`
	// PurgeInterval is how often expired sessions are removed, in seconds.
	PurgeInterval int64 `yaml:"purge_interval"`
}

// CryptoConfig holds the cryptographic configuration details.
type CryptoConfig struct {
	// SessionSalt is the server-only salt mixed into session signatures.
	SessionSalt string `yaml:"session_salt"`
}

// EventsConfig holds the audit event publisher configuration details.
type EventsConfig struct {
	Disabled bool   `yaml:"disabled"`
	URL      string `yaml:"url"`
	Exchange string `yaml:"exchange"`
}

// Config holds the complete configuration details of the server.
type Config struct {
	Server           ServerConfig           `yaml:"server"`
	Security         SecurityConfig         `yaml:"security"`
	CORS             CORSConfig             `yaml:"cors"`
	Database         DatabaseConfig         `yaml:"database"`
	Cache            CacheConfig            `yaml:"cache"`
	IdentityProvider IdentityProviderConfig `yaml:"identity_provider"`
	Session          SessionConfig          `yaml:"session"`
	Crypto           CryptoConfig           `yaml:"crypto"`
	Events           EventsConfig           `yaml:"events"`
}

// LoadConfig loads the configurations from the specified YAML file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	file, err := os.Open(path) // #nosec G304 - path is resolved from the portal home directory
	if err != nil {
		return nil, err
	}
	defer func() {
		if ferr := file.Close(); ferr != nil {
			log.GetLogger().Error("Failed to close config file", log.Error(ferr))
		}
	}()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnvOverrides overrides sensitive configuration values from the environment.
// The environment may be seeded from an env file loaded at startup.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PORTAL_DB_PASSWORD"); v != "" {
		cfg.Database.Identity.Password = v
	}
	if v := os.Getenv("PORTAL_RUNTIME_DB_PASSWORD"); v != "" {
		cfg.Database.Runtime.Password = v
	}
	if v := os.Getenv("PORTAL_SESSION_SALT"); v != "" {
		cfg.Crypto.SessionSalt = v
	}
	if v := os.Getenv("PORTAL_REDIS_PASSWORD"); v != "" {
		cfg.Cache.Redis.Password = v
	}
}

// validate verifies that the loaded configuration is complete enough to start the server.
// Schema validation failures are fatal at startup.
func (c *Config) validate() error {
	if c.Server.Port <= 0 {
		return errors.New("server port must be a positive integer")
	}
	if c.Database.Identity.Type == "" {
		return errors.New("identity database type is required")
	}
	if c.IdentityProvider.Issuer == "" || c.IdentityProvider.JWKSEndpoint == "" {
		return errors.New("identity provider issuer and jwks_endpoint are required")
	}
	if c.Crypto.SessionSalt == "" {
		return errors.New("crypto session_salt is required")
	}
	if c.Session.ValidityPeriod <= 0 {
		return fmt.Errorf("session validity_period must be positive, got %d", c.Session.ValidityPeriod)
	}
	return nil
}

// Package config holds the validator configuration: the allow-list of
// tables known to exist outside the file under validation, and the
// allow-list of column types accepted by the column-definition rule.
package config

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config configures the rule engine.
type Config struct {
	// KnownTables are tables defined by migrations outside the current
	// file. References to them never trigger unknown-table findings.
	KnownTables []string `yaml:"known_tables" json:"known_tables"`

	// AllowedTypes are column types accepted by the column-definition
	// rule, in addition to the built-in primitives and domains.
	AllowedTypes []string `yaml:"allowed_types" json:"allowed_types"`

	// DisableDefaults drops the built-in allow-lists so only the
	// entries from the config file apply.
	DisableDefaults bool `yaml:"disable_defaults" json:"disable_defaults"`

	knownTables  map[string]struct{}
	allowedTypes map[string]struct{}
}

// defaultKnownTables are the application tables created by earlier
// migrations plus the hosted-platform system tables.
var defaultKnownTables = []string{
	"users",
	"profiles",
	"companies",
	"company_members",
	"projects",
	"project_members",
	"tasks",
	"task_assignments",
	"task_comments",
	"task_dependencies",
	"milestones",
	"documents",
	"document_versions",
	"notifications",
	"activity_logs",
	"budgets",
	"expenses",
	"inspections",
	"punch_list_items",
	// hosted auth/storage schemas
	"auth.users",
	"auth.sessions",
	"storage.objects",
	"storage.buckets",
}

// defaultAllowedTypes covers standard Postgres primitives plus the
// application's custom domain types.
var defaultAllowedTypes = []string{
	"text", "varchar", "char", "character",
	"smallint", "integer", "int", "int2", "int4", "int8", "bigint",
	"serial", "bigserial", "smallserial",
	"numeric", "decimal", "real", "double", "float4", "float8", "money",
	"boolean", "bool",
	"date", "time", "timetz", "timestamp", "timestamptz", "interval",
	"uuid", "json", "jsonb", "bytea", "inet", "cidr", "citext", "tsvector",
	// application domain types
	"user_role", "project_status", "task_status", "task_priority",
	"document_category", "notification_type",
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.buildIndexes()
	return cfg
}

// LoadFromFile loads configuration from a YAML or JSON file. Unless
// disable_defaults is set, the file entries extend the built-in lists.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file: %s", filename)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		if jsonErr := json.Unmarshal(data, &cfg); jsonErr != nil {
			return nil, errors.Wrapf(err, "failed to parse config file: %s", filename)
		}
	}

	cfg.buildIndexes()
	return &cfg, nil
}

func (c *Config) buildIndexes() {
	c.knownTables = make(map[string]struct{})
	c.allowedTypes = make(map[string]struct{})

	if !c.DisableDefaults {
		for _, t := range defaultKnownTables {
			c.knownTables[t] = struct{}{}
		}
		for _, t := range defaultAllowedTypes {
			c.allowedTypes[t] = struct{}{}
		}
	}
	for _, t := range c.KnownTables {
		c.knownTables[strings.ToLower(t)] = struct{}{}
	}
	for _, t := range c.AllowedTypes {
		c.allowedTypes[strings.ToLower(t)] = struct{}{}
	}
}

// IsKnownTable reports whether name is in the known-table allow-list.
// Lookup is case-insensitive; a schema-qualified name matches both its
// full form and, for the public schema, its bare form.
func (c *Config) IsKnownTable(name string) bool {
	name = strings.ToLower(name)
	if _, ok := c.knownTables[name]; ok {
		return true
	}
	if rest, ok := strings.CutPrefix(name, "public."); ok {
		_, ok := c.knownTables[rest]
		return ok
	}
	return false
}

// IsAllowedType reports whether the column type is accepted. Length and
// precision arguments are ignored, e.g. VARCHAR(255) matches varchar.
func (c *Config) IsAllowedType(typeName string) bool {
	base := strings.ToLower(strings.TrimSpace(typeName))
	if i := strings.IndexByte(base, '('); i >= 0 {
		base = strings.TrimSpace(base[:i])
	}
	// normalize multi-word types to their leading keyword
	switch {
	case strings.HasPrefix(base, "double precision"):
		base = "double"
	case strings.HasPrefix(base, "character varying"):
		base = "varchar"
	case strings.HasPrefix(base, "timestamp"):
		if strings.Contains(base, "with time zone") {
			base = "timestamptz"
		} else {
			base = "timestamp"
		}
	case strings.HasPrefix(base, "time "):
		if strings.Contains(base, "with time zone") {
			base = "timetz"
		} else {
			base = "time"
		}
	}
	_, ok := c.allowedTypes[base]
	return ok
}

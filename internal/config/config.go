// Package config provides Viper-based configuration loading for the combat engine and its tools.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings for the attack log.
type DatabaseConfig struct {
	// Enabled turns attack log persistence on. When false the remaining fields are not validated.
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// CombatConfig holds the rule switches consumed by the combat engine.
type CombatConfig struct {
	// ImprovedAdrenalineRush raises the adrenaline rush modifier from 5 to 8.
	ImprovedAdrenalineRush bool `mapstructure:"improved_adrenaline_rush"`
	// NoBreakEnchanted keeps enchanted player items equipped when their condition reaches zero.
	NoBreakEnchanted bool `mapstructure:"no_break_enchanted"`
	// ClassicDodge subtracts the attacker's dodging skill instead of the target's.
	ClassicDodge bool `mapstructure:"classic_dodge"`
	// Seed selects a deterministic random source when non-zero.
	Seed uint64 `mapstructure:"seed"`
}

// ContentConfig holds the directories of the YAML content tables.
type ContentConfig struct {
	WeaponsDir string `mapstructure:"weapons_dir"`
	ArmorDir   string `mapstructure:"armor_dir"`
	NPCsDir    string `mapstructure:"npcs_dir"`
	CareersDir string `mapstructure:"careers_dir"`
	EffectsDir string `mapstructure:"effects_dir"`
}

// ScriptingConfig holds Lua mod settings.
type ScriptingConfig struct {
	// ModsDir is the directory of *.lua override mods; empty disables Lua overrides.
	ModsDir string `mapstructure:"mods_dir"`
	// InstructionLimit caps the Lua opcodes executed by a single override call.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Combat    CombatConfig    `mapstructure:"combat"`
	Content   ContentConfig   `mapstructure:"content"`
	Scripting ScriptingConfig `mapstructure:"scripting"`
	Database  DatabaseConfig  `mapstructure:"database"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateScripting(c.Scripting); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Database.Enabled {
		if err := validateDatabase(c.Database); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateContent(c ContentConfig) error {
	var errs []string
	dirs := []struct {
		key, val string
	}{
		{"content.weapons_dir", c.WeaponsDir},
		{"content.armor_dir", c.ArmorDir},
		{"content.npcs_dir", c.NPCsDir},
		{"content.careers_dir", c.CareersDir},
		{"content.effects_dir", c.EffectsDir},
	}
	for _, d := range dirs {
		if d.val == "" {
			errs = append(errs, d.key+" must not be empty")
		}
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateScripting(s ScriptingConfig) error {
	if s.InstructionLimit < 0 {
		return fmt.Errorf("scripting.instruction_limit must be >= 0, got %d", s.InstructionLimit)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with DFCOMBAT_ prefix
	v.SetEnvPrefix("DFCOMBAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance populated only with default values.
//
// Postcondition: LoadFromViper(Defaults()) succeeds.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("combat.improved_adrenaline_rush", false)
	v.SetDefault("combat.no_break_enchanted", false)
	v.SetDefault("combat.classic_dodge", false)
	v.SetDefault("combat.seed", 0)

	v.SetDefault("content.weapons_dir", "content/weapons")
	v.SetDefault("content.armor_dir", "content/armor")
	v.SetDefault("content.npcs_dir", "content/npcs")
	v.SetDefault("content.careers_dir", "content/careers")
	v.SetDefault("content.effects_dir", "content/effects")

	v.SetDefault("scripting.mods_dir", "content/mods")
	v.SetDefault("scripting.instruction_limit", 100_000)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "dfcombat")
	v.SetDefault("database.password", "dfcombat")
	v.SetDefault("database.name", "dfcombat")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")
}

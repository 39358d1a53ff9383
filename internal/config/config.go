// Package config provides Viper-based configuration loading for the game.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is a file path, "stderr" or "discard". The terminal frontend owns
	// stdout, so stdout is not accepted.
	Output string `mapstructure:"output"`
}

// TimingConfig holds the fixed delays that drive scripted sequences.
type TimingConfig struct {
	// Walk is how long the transient walking flag stays set after a step.
	Walk time.Duration `mapstructure:"walk"`
	// BellReward is the delay between the threshold ring and the reward grant.
	BellReward time.Duration `mapstructure:"bell_reward"`
	// CutsceneReveal is the delay before an NPC cutscene's second stage.
	CutsceneReveal time.Duration `mapstructure:"cutscene_reveal"`
	// CutsceneVanish is the delay between the second stage and object removal.
	CutsceneVanish time.Duration `mapstructure:"cutscene_vanish"`
	// AltarChant is the delay between a successful altar interaction and the win state.
	AltarChant time.Duration `mapstructure:"altar_chant"`
	// Credits is the delay between the win state and the credits state.
	Credits time.Duration `mapstructure:"credits"`
	// Verse is how long a room's entry verse stays on the overlay.
	Verse time.Duration `mapstructure:"verse"`
	// Tick is the frontend clock interval used to advance the session.
	Tick time.Duration `mapstructure:"tick"`
}

// ContentConfig locates game data.
type ContentConfig struct {
	// Dir is a directory holding world.yaml, items.yaml, recipes.yaml and
	// hints.yaml. Empty means the embedded default content.
	Dir string `mapstructure:"dir"`
	// ScriptDir holds Lua hook scripts. Empty means the embedded scripts.
	ScriptDir string `mapstructure:"script_dir"`
	// ScriptsEnabled toggles the Lua hook VM entirely.
	ScriptsEnabled bool `mapstructure:"scripts_enabled"`
	// ScriptInstructionLimit caps opcodes per hook call. 0 = scripting default.
	ScriptInstructionLimit int `mapstructure:"script_instruction_limit"`
}

// UIConfig holds terminal frontend settings.
type UIConfig struct {
	// LocaleDir is a gettext locale tree for interface strings. Empty = built-in English.
	LocaleDir string `mapstructure:"locale_dir"`
	// Language selects the locale under LocaleDir, e.g. "en_US".
	Language string `mapstructure:"language"`
	// WrapWidth is the column at which dialogue text is wrapped.
	WrapWidth int `mapstructure:"wrap_width"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Timing  TimingConfig  `mapstructure:"timing"`
	Content ContentConfig `mapstructure:"content"`
	UI      UIConfig      `mapstructure:"ui"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateTiming(c.Timing); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateUI(c.UI); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
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
	if l.Output == "" || l.Output == "stdout" {
		return fmt.Errorf("logging.output must be a file path, \"stderr\" or \"discard\", got %q", l.Output)
	}
	return nil
}

func validateTiming(t TimingConfig) error {
	var errs []string
	named := []struct {
		key string
		d   time.Duration
	}{
		{"timing.walk", t.Walk},
		{"timing.bell_reward", t.BellReward},
		{"timing.cutscene_reveal", t.CutsceneReveal},
		{"timing.cutscene_vanish", t.CutsceneVanish},
		{"timing.altar_chant", t.AltarChant},
		{"timing.credits", t.Credits},
		{"timing.verse", t.Verse},
	}
	for _, n := range named {
		if n.d < 0 {
			errs = append(errs, fmt.Sprintf("%s must not be negative, got %s", n.key, n.d))
		}
	}
	if t.Tick <= 0 {
		errs = append(errs, fmt.Sprintf("timing.tick must be > 0, got %s", t.Tick))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateContent(c ContentConfig) error {
	if c.ScriptInstructionLimit < 0 {
		return fmt.Errorf("content.script_instruction_limit must be >= 0, got %d", c.ScriptInstructionLimit)
	}
	return nil
}

func validateUI(u UIConfig) error {
	if u.WrapWidth < 20 {
		return fmt.Errorf("ui.wrap_width must be >= 20, got %d", u.WrapWidth)
	}
	if u.LocaleDir != "" && u.Language == "" {
		return errors.New("ui.language must not be empty when ui.locale_dir is set")
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path loads defaults and
// environment overrides only.
//
// Precondition: path is empty or names a readable YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with RASA_ prefix
	v.SetEnvPrefix("RASA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
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

// Defaults returns the configuration produced by Load with no file and no
// environment overrides.
//
// Postcondition: Returns a Config that passes Validate.
func Defaults() Config {
	v := viper.New()
	setDefaults(v)
	cfg, err := LoadFromViper(v)
	if err != nil {
		panic(fmt.Sprintf("default configuration is invalid: %v", err))
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "rasaratna.log")

	v.SetDefault("timing.walk", "150ms")
	v.SetDefault("timing.bell_reward", "1s")
	v.SetDefault("timing.cutscene_reveal", "3s")
	v.SetDefault("timing.cutscene_vanish", "1500ms")
	v.SetDefault("timing.altar_chant", "3s")
	v.SetDefault("timing.credits", "4s")
	v.SetDefault("timing.verse", "10s")
	v.SetDefault("timing.tick", "50ms")

	v.SetDefault("content.dir", "")
	v.SetDefault("content.script_dir", "")
	v.SetDefault("content.scripts_enabled", true)
	v.SetDefault("content.script_instruction_limit", 0)

	v.SetDefault("ui.locale_dir", "")
	v.SetDefault("ui.language", "en_US")
	v.SetDefault("ui.wrap_width", 60)
}

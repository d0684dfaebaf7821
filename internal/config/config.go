// Package config loads server settings and artifact locations.
//
// Values are layered: built-in defaults, then an optional YAML or TOML file,
// then environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"churnpredictor/internal/artifacts"
)

type Config struct {
	Server    ServerConfig    `yaml:"server" toml:"server"`
	Artifacts ArtifactsConfig `yaml:"artifacts" toml:"artifacts"`
	Log       LogConfig       `yaml:"log" toml:"log"`
}

type ServerConfig struct {
	Port   string `yaml:"port" toml:"port" validate:"required,numeric"`
	APIKey string `yaml:"api_key" toml:"api_key"`
	Mode   string `yaml:"mode" toml:"mode" validate:"oneof=debug release test"`
}

type ArtifactsConfig struct {
	Classifier       string `yaml:"classifier" toml:"classifier" validate:"required"`
	GenderEncoder    string `yaml:"gender_encoder" toml:"gender_encoder" validate:"required"`
	GeographyEncoder string `yaml:"geography_encoder" toml:"geography_encoder" validate:"required"`
	Scaler           string `yaml:"scaler" toml:"scaler" validate:"required"`
}

type LogConfig struct {
	Level string `yaml:"level" toml:"level" validate:"oneof=debug info warn error"`
	File  string `yaml:"file" toml:"file"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{Port: "8080", Mode: "release"},
		Artifacts: ArtifactsConfig{
			Classifier:       filepath.Join("artifacts", "model.json"),
			GenderEncoder:    filepath.Join("artifacts", "label_encoder_gender.json"),
			GeographyEncoder: filepath.Join("artifacts", "onehot_encoder_geo.json"),
			Scaler:           filepath.Join("artifacts", "scaler.json"),
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load builds the configuration. path may be empty, in which case only defaults
// and environment variables apply.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, c)
	case ".toml":
		err = toml.Unmarshal(b, c)
	default:
		return fmt.Errorf("config %s: unsupported format %q", path, filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	for env, dst := range map[string]*string{
		"PORT":                   &c.Server.Port,
		"API_KEY":                &c.Server.APIKey,
		"GIN_MODE":               &c.Server.Mode,
		"CLASSIFIER_PATH":        &c.Artifacts.Classifier,
		"GENDER_ENCODER_PATH":    &c.Artifacts.GenderEncoder,
		"GEOGRAPHY_ENCODER_PATH": &c.Artifacts.GeographyEncoder,
		"SCALER_PATH":            &c.Artifacts.Scaler,
		"LOG_LEVEL":              &c.Log.Level,
		"LOG_FILE":               &c.Log.File,
	} {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			*dst = v
		}
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c Config) Address() string { return ":" + c.Server.Port }

func (c Config) ArtifactPaths() artifacts.Paths {
	return artifacts.Paths{
		Classifier:       c.Artifacts.Classifier,
		GenderEncoder:    c.Artifacts.GenderEncoder,
		GeographyEncoder: c.Artifacts.GeographyEncoder,
		Scaler:           c.Artifacts.Scaler,
	}
}

// OverridePaths replaces any artifact path for which a non-empty value is given.
func (c *Config) OverridePaths(p artifacts.Paths) {
	if p.Classifier != "" {
		c.Artifacts.Classifier = p.Classifier
	}
	if p.GenderEncoder != "" {
		c.Artifacts.GenderEncoder = p.GenderEncoder
	}
	if p.GeographyEncoder != "" {
		c.Artifacts.GeographyEncoder = p.GeographyEncoder
	}
	if p.Scaler != "" {
		c.Artifacts.Scaler = p.Scaler
	}
}

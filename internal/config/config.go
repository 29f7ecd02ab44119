package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config carries the tool settings. Every field has a usable default,
// so running without a config file works.
type Config struct {
	Debug bool `yaml:"debug"`
	TEI   struct {
		SchemaPath string `yaml:"schema_path"`
	} `yaml:"tei"`
	Trang struct {
		JavaBin string `yaml:"java_bin"`
		JarPath string `yaml:"jar_path"`
	} `yaml:"trang"`
	Publish struct {
		NbConvertBin string `yaml:"nbconvert_bin"`
	} `yaml:"publish"`
}

// Default returns the built-in settings.
func Default() *Config {
	cfg := &Config{}
	cfg.TEI.SchemaPath = "tei/tei_all.xsd"
	cfg.Trang.JavaBin = "java"
	cfg.Trang.JarPath = "trang/trang.jar"
	cfg.Publish.NbConvertBin = "jupyter"
	return cfg
}

// Load reads settings from path on top of the defaults. A missing
// config file is fine, a malformed one is not. Environment variables
// override both.
func Load(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Overlay the YAML config when present
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// 3. Override with environment variables if present
	applyEnv(cfg)

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("XSDINFO_TEI_SCHEMA"); v != "" {
		cfg.TEI.SchemaPath = v
	}
	if v := os.Getenv("XSDINFO_JAVA_BIN"); v != "" {
		cfg.Trang.JavaBin = v
	}
	if v := os.Getenv("XSDINFO_TRANG_JAR"); v != "" {
		cfg.Trang.JarPath = v
	}
	if v := os.Getenv("XSDINFO_NBCONVERT_BIN"); v != "" {
		cfg.Publish.NbConvertBin = v
	}
	if v := os.Getenv("XSDINFO_DEBUG"); v == "true" || v == "1" {
		cfg.Debug = true
	}
}

// Package config loads gleaner settings from a YAML file and GLEANER_*
// environment variables. Environment variables take precedence over the
// file; every key carries a default so a bare install runs without any
// configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all gleaner configuration.
type Config struct {
	Server   ServerConfig
	Upload   UploadConfig
	Cache    CacheConfig
	Labeler  LabelerConfig
	Patterns PatternsConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr       string
	SamplePath string
}

// UploadConfig holds upload limits.
type UploadConfig struct {
	MaxBytes int64
}

// CacheConfig holds extraction response cache settings.
type CacheConfig struct {
	TTL        time.Duration
	MaxEntries int
}

// LabelerConfig selects and parameterizes the statistical entity source.
type LabelerConfig struct {
	Kind     string // registered labeler kind ("prose", "onnx", "remote", "genai", "heuristic", "null")
	ModelDir string // local model assets (onnx)
	Endpoint string // remote service URL (remote)
	APIKey   string // credential (remote, genai)
	Model    string // model identifier (genai)
}

// PatternsConfig points at an optional event rule table file.
type PatternsConfig struct {
	Path string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string // "text" or "json"
	File   string // rotation-managed log file; empty logs to stderr
}

// Load reads configuration. With an explicit path the file must exist;
// with an empty path gleaner.yaml is searched for in the working directory
// and the user config directory, and absence is fine.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("gleaner")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "gleaner"))
		}
	}

	v.SetEnvPrefix("GLEANER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if path != "" {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: %w", err)
		}
	}

	cfg := Config{
		Server: ServerConfig{
			Addr:       v.GetString("server.addr"),
			SamplePath: v.GetString("server.sample_path"),
		},
		Upload: UploadConfig{
			MaxBytes: v.GetInt64("upload.max_bytes"),
		},
		Cache: CacheConfig{
			TTL:        v.GetDuration("cache.ttl"),
			MaxEntries: v.GetInt("cache.max_entries"),
		},
		Labeler: LabelerConfig{
			Kind:     v.GetString("labeler.kind"),
			ModelDir: v.GetString("labeler.model_dir"),
			Endpoint: v.GetString("labeler.endpoint"),
			APIKey:   v.GetString("labeler.api_key"),
			Model:    v.GetString("labeler.model"),
		},
		Patterns: PatternsConfig{
			Path: v.GetString("patterns.path"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			File:   v.GetString("log.file"),
		},
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.sample_path", "data/sample_news.txt")
	v.SetDefault("upload.max_bytes", 16<<20)
	v.SetDefault("cache.ttl", "5m")
	v.SetDefault("cache.max_entries", 100)
	v.SetDefault("labeler.kind", "prose")
	v.SetDefault("labeler.model_dir", "")
	v.SetDefault("labeler.endpoint", "")
	v.SetDefault("labeler.api_key", "")
	v.SetDefault("labeler.model", "")
	v.SetDefault("patterns.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
}

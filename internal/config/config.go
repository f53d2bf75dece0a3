package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PathEnv names the environment variable pointing at an optional YAML file.
const PathEnv = "YTSCRIBE_CONFIG"

const (
	DefaultDownloader  = "yt-dlp"
	DefaultConcurrency = 8
	DefaultConverter   = "ffmpeg"
	DefaultEndpoint    = "https://api.groq.com/openai/v1/audio/transcriptions"
	DefaultModel       = "whisper-large-v3"
	DefaultAPIKeyEnv   = "GROQ_API_KEY"
)

type Config struct {
	WorkDir       string              `yaml:"workdir"`
	Downloader    DownloaderConfig    `yaml:"downloader"`
	Converter     ConverterConfig     `yaml:"converter"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	Log           LogConfig           `yaml:"log"`
}

type DownloaderConfig struct {
	Binary      string `yaml:"binary"`
	Concurrency int    `yaml:"concurrency"`
}

type ConverterConfig struct {
	Binary string `yaml:"binary"`
}

type TranscriptionConfig struct {
	Endpoint  string `yaml:"endpoint"`
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads the file named by PathEnv, or returns defaults when it is unset.
func Load() (*Config, error) {
	return LoadFile(os.Getenv(PathEnv))
}

// LoadFile reads a YAML config from path. An empty path yields defaults.
func LoadFile(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.WorkDir == "" {
		c.WorkDir = "."
	}
	if c.Downloader.Binary == "" {
		c.Downloader.Binary = DefaultDownloader
	}
	if c.Downloader.Concurrency <= 0 {
		c.Downloader.Concurrency = DefaultConcurrency
	}
	if c.Converter.Binary == "" {
		c.Converter.Binary = DefaultConverter
	}
	if c.Transcription.Endpoint == "" {
		c.Transcription.Endpoint = DefaultEndpoint
	}
	if c.Transcription.Model == "" {
		c.Transcription.Model = DefaultModel
	}
	if c.Transcription.APIKeyEnv == "" {
		c.Transcription.APIKeyEnv = DefaultAPIKeyEnv
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

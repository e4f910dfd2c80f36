package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Database struct {
		URI string `yaml:"uri"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	JWT struct {
		Secret string `yaml:"secret"`
		Expiry int    `yaml:"expiry"` // token expiry in minutes
	} `yaml:"jwt"`

	// Analysis holds the remote sentiment/summarization endpoints. Both are
	// optional; when unset or unreachable the local heuristics are used.
	Analysis struct {
		SentimentURL string `yaml:"sentimentUrl"`
		SummaryURL   string `yaml:"summaryUrl"`
		Timeout      int    `yaml:"timeout"` // seconds
	} `yaml:"analysis"`

	Gemini struct {
		ApiKey string `yaml:"apiKey"`
	} `yaml:"gemini"`

	Feed struct {
		Enabled  bool `yaml:"enabled"`
		Interval int  `yaml:"interval"` // seconds between simulated comments
	} `yaml:"feed"`
}

// LoadConfig reads the configuration file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	return &cfg, nil
}

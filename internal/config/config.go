// Package config loads the standalone refresher's yaml configuration. The
// HTTP server uses the kratos config loader instead; this lighter form keeps
// the one-shot binary free of the server bootstrap.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DB      DBConfig      `yaml:"db"`
	LLM     LLMConfig     `yaml:"llm"`
	Refresh RefreshConfig `yaml:"refresh"`
	Search  SearchConfig  `yaml:"search"`
	Log     LogConfig     `yaml:"log"`
}

type DBConfig struct {
	Driver string `yaml:"driver"`
	Source string `yaml:"source"`
}

type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

type RefreshConfig struct {
	TTL          string `yaml:"ttl"`
	RetryBackoff string `yaml:"retry_backoff"`
	MaxRetries   int    `yaml:"max_retries"`
	RPM          int    `yaml:"rpm"`
}

type SearchConfig struct {
	Provider string        `yaml:"provider"`
	Tavily   TavilyConfig  `yaml:"tavily"`
	SearXNG  SearXNGConfig `yaml:"searxng"`
}

type TavilyConfig struct {
	APIKey string `yaml:"api_key"`
}

type SearXNGConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// LoadConfig reads and parses the yaml file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Cfg 全局配置实例
var Cfg *Config

type Config struct {
	Server ServerConfig `yaml:"server"`
	Model  ModelConfig  `yaml:"model"`
	Search SearchConfig `yaml:"search"`
	MySQL  MySQLConfig  `yaml:"mysql"`
	MQ     MQConfig     `yaml:"mq"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type ModelConfig struct {
	Name      string `yaml:"name"`
	APIKey    string `yaml:"api_key"`
	BaseURL   string `yaml:"base_url"`
	MaxTokens int    `yaml:"max_tokens"`
}

type SearchConfig struct {
	Endpoint string `yaml:"endpoint"`
}

type MySQLConfig struct {
	DSN string `yaml:"dsn"`
}

type MQConfig struct {
	NameServer []string `yaml:"name_server"`
}

// Load 从YAML文件加载配置
func Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %v", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %v", path, err)
	}

	if cfg.Model.MaxTokens <= 0 {
		cfg.Model.MaxTokens = 1024
	}
	if cfg.Search.Endpoint == "" {
		cfg.Search.Endpoint = "https://api.duckduckgo.com/"
	}

	Cfg = cfg
	return nil
}

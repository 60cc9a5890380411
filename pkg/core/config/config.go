// Package config loads the application configuration from a yaml file,
// with environment variables (via .env) carrying the secrets.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"contract_intel/pkg/core/agent"
	"contract_intel/pkg/core/store"
)

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type DatabaseConfig struct {
	Enabled bool `yaml:"enabled"` // DATABASE_URL supplies the DSN
}

type ObjectStoreConfig struct {
	Enabled bool `yaml:"enabled"`
	store.ObjectStoreConfig `yaml:",inline"`
}

type PipelineConfig struct {
	MaxConcurrentChunks int  `yaml:"max_concurrent_chunks"`
	ChunkTimeoutSeconds int  `yaml:"chunk_timeout_seconds"`
	SemanticEnabled     bool `yaml:"semantic_enabled"`
}

type AppConfig struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	ObjectStore ObjectStoreConfig `yaml:"object_store"`
	Pipeline    PipelineConfig    `yaml:"pipeline"`
	Agents      agent.Config      `yaml:"agents"`
}

// Load reads the config file. A missing file yields the defaults rather
// than an error so the server runs out of the box.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{
		Server: ServerConfig{Addr: ":8080"},
		Pipeline: PipelineConfig{
			MaxConcurrentChunks: 4,
			ChunkTimeoutSeconds: 60,
			SemanticEnabled:     true,
		},
		Agents: agent.Config{ActiveProvider: "gemini"},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

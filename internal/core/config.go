package core

import (
	"encoding/json"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds optional tool settings loaded from a YAML or JSON file.
// API keys do not live here; they belong to the credential store.
type Config struct {
	CredentialsFile string `json:"credentials_file" yaml:"credentials_file"`
	Limit           int    `json:"limit" yaml:"limit"`
	Format          string `json:"format" yaml:"format"`
	NoAI            bool   `json:"no_ai" yaml:"no_ai"`
}

func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var cfg Config
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		err = yaml.NewDecoder(f).Decode(&cfg)
	} else {
		err = json.NewDecoder(f).Decode(&cfg)
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

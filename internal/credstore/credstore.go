// internal/credstore/credstore.go
package credstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/DM20911/Shodan-AI/internal/core"
)

// Credentials holds the API keys the tool needs. The Shodan key is required
// for dispatching searches; the OpenAI key is optional and only enables the
// AI translation path.
type Credentials struct {
	ShodanAPIKey string `json:"shodan_api_key"`
	OpenAIAPIKey string `json:"openai_api_key,omitempty"`
}

const (
	fileMode = os.FileMode(0600) // owner read/write only
	dirMode  = os.FileMode(0700)
)

// DefaultPath returns the standard credential file location
// (~/.config/shodan-ai/credentials.json).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "shodan-ai", "credentials.json"), nil
}

// Load reads saved credentials from path. Returns core.ErrNoCredentials when
// no file exists yet.
func Load(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.ErrNoCredentials
		}
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}
	return &creds, nil
}

// Save writes credentials to path with owner-only permissions. A plain
// overwrite: the previous content is replaced, no atomic rename.
func Save(path string, creds *Credentials) error {
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}
	if err := os.WriteFile(path, data, fileMode); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}
	// WriteFile only applies the mode on creation; tighten an existing file too.
	if err := os.Chmod(path, fileMode); err != nil {
		return fmt.Errorf("failed to restrict credentials file permissions: %w", err)
	}
	return nil
}

// Resolve returns the effective credentials: the saved file (if any) with the
// SHODAN_API_KEY and OPENAI_API_KEY environment variables layered on top.
// A missing file is not an error here; the returned keys may simply be empty.
func Resolve(path string) (*Credentials, error) {
	creds, err := Load(path)
	if err != nil {
		if err != core.ErrNoCredentials {
			return nil, err
		}
		creds = &Credentials{}
	}
	if env := os.Getenv("SHODAN_API_KEY"); env != "" {
		creds.ShodanAPIKey = env
	}
	if env := os.Getenv("OPENAI_API_KEY"); env != "" {
		creds.OpenAIAPIKey = env
	}
	return creds, nil
}

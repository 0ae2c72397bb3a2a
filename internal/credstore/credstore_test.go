package credstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DM20911/Shodan-AI/internal/core"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	want := &Credentials{ShodanAPIKey: "shodan-key-123", OpenAIAPIKey: "openai-key-456"}

	if err := Save(path, want); err != nil {
		t.Fatalf("Save returned an error: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned an error: %v", err)
	}
	if got.ShodanAPIKey != want.ShodanAPIKey {
		t.Errorf("ShodanAPIKey = %q, want %q", got.ShodanAPIKey, want.ShodanAPIKey)
	}
	if got.OpenAIAPIKey != want.OpenAIAPIKey {
		t.Errorf("OpenAIAPIKey = %q, want %q", got.OpenAIAPIKey, want.OpenAIAPIKey)
	}
}

func TestSaveRestrictsPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := Save(path, &Credentials{ShodanAPIKey: "secret"}); err != nil {
		t.Fatalf("Save returned an error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("credentials file mode = %o, want 0600", perm)
	}
}

func TestSaveOverwriteKeepsPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	// Pre-create with lax permissions to simulate an old or tampered file.
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatalf("setup write failed: %v", err)
	}
	if err := Save(path, &Credentials{ShodanAPIKey: "secret"}); err != nil {
		t.Fatalf("Save returned an error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("credentials file mode after overwrite = %o, want 0600", perm)
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "credentials.json")
	_, err := Load(path)
	if err != core.ErrNoCredentials {
		t.Errorf("Load on missing file = %v, want core.ErrNoCredentials", err)
	}
}

func TestResolveEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := Save(path, &Credentials{ShodanAPIKey: "from-file", OpenAIAPIKey: "ai-from-file"}); err != nil {
		t.Fatalf("Save returned an error: %v", err)
	}
	t.Setenv("SHODAN_API_KEY", "from-env")
	t.Setenv("OPENAI_API_KEY", "")

	creds, err := Resolve(path)
	if err != nil {
		t.Fatalf("Resolve returned an error: %v", err)
	}
	if creds.ShodanAPIKey != "from-env" {
		t.Errorf("ShodanAPIKey = %q, want env value %q", creds.ShodanAPIKey, "from-env")
	}
	// Empty env var must not wipe the saved key.
	if creds.OpenAIAPIKey != "ai-from-file" {
		t.Errorf("OpenAIAPIKey = %q, want file value %q", creds.OpenAIAPIKey, "ai-from-file")
	}
}

func TestResolveMissingFileIsNotAnError(t *testing.T) {
	t.Setenv("SHODAN_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	creds, err := Resolve(filepath.Join(t.TempDir(), "credentials.json"))
	if err != nil {
		t.Fatalf("Resolve returned an error: %v", err)
	}
	if creds.ShodanAPIKey != "" || creds.OpenAIAPIKey != "" {
		t.Errorf("expected empty credentials, got %+v", creds)
	}
}

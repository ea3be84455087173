package mail

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestResolveCredentialsMissing(t *testing.T) {
	t.Setenv("GMAIL_USER", "")
	t.Setenv("GMAIL_APP_PASSWORD", "")

	_, err := ResolveCredentials(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.Is(err, ErrCredentialsMissing) {
		t.Fatalf("err = %v, want ErrCredentialsMissing", err)
	}
}

func TestResolveCredentialsFromEnv(t *testing.T) {
	t.Setenv("GMAIL_USER", "env-user@example.com")
	t.Setenv("GMAIL_APP_PASSWORD", "env-pass")

	creds, err := ResolveCredentials("")
	if err != nil {
		t.Fatalf("ResolveCredentials: %v", err)
	}
	if creds.User != "env-user@example.com" || creds.Password != "env-pass" {
		t.Fatalf("creds = %+v", creds)
	}
}

func TestResolveCredentialsSecretsFileBeatsEnv(t *testing.T) {
	t.Setenv("GMAIL_USER", "env-user@example.com")
	t.Setenv("GMAIL_APP_PASSWORD", "env-pass")

	path := filepath.Join(t.TempDir(), "secrets.json")
	payload := `{"gmail_user":"file-user@example.com","gmail_app_password":"file-pass"}`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("write secrets: %v", err)
	}

	creds, err := ResolveCredentials(path)
	if err != nil {
		t.Fatalf("ResolveCredentials: %v", err)
	}
	if creds.User != "file-user@example.com" || creds.Password != "file-pass" {
		t.Fatalf("creds = %+v", creds)
	}
}

func TestResolveCredentialsCorruptSecretsFallsBackToEnv(t *testing.T) {
	t.Setenv("GMAIL_USER", "env-user@example.com")
	t.Setenv("GMAIL_APP_PASSWORD", "env-pass")

	path := filepath.Join(t.TempDir(), "secrets.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write secrets: %v", err)
	}

	creds, err := ResolveCredentials(path)
	if err != nil {
		t.Fatalf("ResolveCredentials: %v", err)
	}
	if creds.User != "env-user@example.com" {
		t.Fatalf("creds = %+v", creds)
	}
}

package mail

import (
	"encoding/json"
	"errors"
	"os"
)

// Hardcoded account pair, first stop in the resolution order. The password
// stays empty in source control; fill it only on a private deployment.
const (
	hardcodedUser        = "jumsune2@gmail.com"
	hardcodedAppPassword = ""
)

var ErrCredentialsMissing = errors.New("gmail credentials not configured")

type Credentials struct {
	User     string
	Password string
}

// ResolveCredentials checks the hardcoded pair, then the secrets file, then
// the GMAIL_USER / GMAIL_APP_PASSWORD environment variables.
func ResolveCredentials(secretsPath string) (Credentials, error) {
	if hardcodedUser != "" && hardcodedAppPassword != "" {
		return Credentials{User: hardcodedUser, Password: hardcodedAppPassword}, nil
	}

	user, password := readSecretsFile(secretsPath)
	if user == "" {
		user = os.Getenv("GMAIL_USER")
	}
	if password == "" {
		password = os.Getenv("GMAIL_APP_PASSWORD")
	}
	if user == "" || password == "" {
		return Credentials{}, ErrCredentialsMissing
	}
	return Credentials{User: user, Password: password}, nil
}

func readSecretsFile(path string) (string, string) {
	if path == "" {
		return "", ""
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", ""
	}
	var s struct {
		User     string `json:"gmail_user"`
		Password string `json:"gmail_app_password"`
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", ""
	}
	return s.User, s.Password
}

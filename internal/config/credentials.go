package config

import (
	"os"

	"jamesfarrell.me/ytscribe/internal/domain"
)

// CredentialProvider supplies the bearer token for the transcription API.
type CredentialProvider interface {
	APIKey() (string, error)
}

// EnvCredentials reads the token from an environment variable.
type EnvCredentials struct {
	Var string
}

func (e EnvCredentials) APIKey() (string, error) {
	key := os.Getenv(e.Var)
	if key == "" {
		return "", domain.Errorf(domain.ErrConfig, "%s not set", e.Var)
	}
	return key, nil
}

// StaticCredentials always returns the same token. An empty token is reported
// as missing.
type StaticCredentials string

func (s StaticCredentials) APIKey() (string, error) {
	if s == "" {
		return "", domain.Errorf(domain.ErrConfig, "API key not set")
	}
	return string(s), nil
}

// MaskSecret hides all but a short prefix of a credential for logging.
func MaskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 8 {
		return "[masked]"
	}
	return secret[:4] + "...[masked]"
}

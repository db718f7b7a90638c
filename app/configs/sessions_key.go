package configs

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/gorilla/securecookie"
)

type SessionKeys struct {
	AuthKey []byte
	EncKey  []byte
	CSRFKey []byte
}

func LoadSessionKeys(env ENV) (*SessionKeys, error) {
	if env.AppAuthKey == "" {
		return nil, fmt.Errorf("APP_AUTH_KEY environment variable not set")
	}
	if env.AppEncKey == "" {
		return nil, fmt.Errorf("APP_ENC_KEY environment variable not set")
	}

	authKey, err := base64.URLEncoding.DecodeString(env.AppAuthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode APP_AUTH_KEY from Base64: %w", err)
	}
	encKey, err := base64.URLEncoding.DecodeString(env.AppEncKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode APP_ENC_KEY from Base64: %w", err)
	}
	if len(encKey) != 16 && len(encKey) != 24 && len(encKey) != 32 {
		return nil, fmt.Errorf("APP_ENC_KEY has invalid length %d after decoding, must be 16, 24 or 32 bytes", len(encKey))
	}

	keys := &SessionKeys{AuthKey: authKey, EncKey: encKey}

	if env.CSRFKey != "" {
		csrfKey, err := base64.URLEncoding.DecodeString(env.CSRFKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decode CSRF_KEY from Base64: %w", err)
		}
		if len(csrfKey) != 32 {
			return nil, fmt.Errorf("CSRF_KEY has invalid length %d after decoding, must be 32 bytes", len(csrfKey))
		}
		keys.CSRFKey = csrfKey
	}

	return keys, nil
}

// GenerateSessionKeys writes a fresh key set to path in .env format and
// returns the lines written.
func GenerateSessionKeys(path string) (string, error) {
	authKey := securecookie.GenerateRandomKey(64)
	encKey := securecookie.GenerateRandomKey(32)
	csrfKey := securecookie.GenerateRandomKey(32)
	if authKey == nil || encKey == nil || csrfKey == nil {
		return "", fmt.Errorf("could not generate random keys")
	}

	lines := fmt.Sprintf("APP_AUTH_KEY=%s\nAPP_ENC_KEY=%s\nCSRF_KEY=%s\n",
		base64.URLEncoding.EncodeToString(authKey),
		base64.URLEncoding.EncodeToString(encKey),
		base64.URLEncoding.EncodeToString(csrfKey),
	)

	if err := os.WriteFile(path, []byte(lines), 0o600); err != nil {
		return "", fmt.Errorf("failed to write keys to %s: %w", path, err)
	}
	return lines, nil
}

package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNotConfigured is returned for an optional secret that has no value.
var ErrNotConfigured = errors.New("secret is not configured")

// Source describes where the remote bearer token (or any other secret)
// comes from.
type Source struct {
	// Name is used in error messages.
	Name string
	// Value is an inline secret from configuration or the environment.
	Value string
	// File holds the secret. It takes precedence over Value.
	File string
}

// Load resolves the secret, trimmed. A source with neither File nor Value
// yields ErrNotConfigured; an empty file is always an error.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	if file := strings.TrimSpace(src.File); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		secret := strings.TrimSpace(string(data))
		if secret == "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
		return secret, nil
	}

	secret := strings.TrimSpace(src.Value)
	if secret == "" {
		return "", fmt.Errorf("%s: %w", name, ErrNotConfigured)
	}

	return secret, nil
}

// LoadOptional is Load that treats a missing secret as empty.
func LoadOptional(src Source) (string, error) {
	secret, err := Load(src)
	if errors.Is(err, ErrNotConfigured) {
		return "", nil
	}
	return secret, err
}

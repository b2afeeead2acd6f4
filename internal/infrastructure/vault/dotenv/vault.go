// Package dotenv provides a dotenv-based vault implementation for development.
package dotenv

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/unifiedui/admin-gateway/internal/core/vault"
)

// Scheme is the reference prefix understood by this vault.
const Scheme = "dotenv://"

// Vault implements the vault.Vault interface using environment variables.
// Overrides take precedence and are meant for tests and CLI flags.
type Vault struct {
	overrides map[string]string
}

var _ vault.Vault = (*Vault)(nil)

// NewVault creates a new DotEnv vault instance.
func NewVault(overrides map[string]string) *Vault {
	copied := make(map[string]string, len(overrides))
	for k, v := range overrides {
		copied[k] = v
	}
	return &Vault{overrides: copied}
}

// GetSecret resolves a "dotenv://KEY" reference.
func (v *Vault) GetSecret(ctx context.Context, ref string) (string, error) {
	if !strings.HasPrefix(ref, Scheme) {
		return "", fmt.Errorf("unsupported secret reference %q", ref)
	}
	key := strings.TrimPrefix(ref, Scheme)
	if key == "" {
		return "", fmt.Errorf("secret reference %q has no key", ref)
	}

	if value, ok := v.overrides[key]; ok {
		return value, nil
	}
	if value := os.Getenv(key); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("secret not found: %s", key)
}

// Ping checks if the vault is available (always returns nil for dotenv).
func (v *Vault) Ping(ctx context.Context) error {
	return nil
}

// Close closes the vault (no-op for dotenv).
func (v *Vault) Close() error {
	return nil
}

// Package vault defines the secrets interface used to resolve upstream
// login credentials.
package vault

import (
	"context"
	"fmt"
	"strings"
)

// Type represents the type of vault.
type Type string

const (
	// TypeDotEnv represents a DotEnv vault (for development).
	TypeDotEnv Type = "dotenv"
)

// Vault resolves secret references.
type Vault interface {
	// GetSecret retrieves a secret by reference, e.g. "dotenv://ADMIN_PASSWORD".
	GetSecret(ctx context.Context, ref string) (string, error)

	// Ping checks if the vault is reachable.
	Ping(ctx context.Context) error

	// Close closes the vault connection.
	Close() error
}

// Credentials are the username and password posted to the login endpoint.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ResolveCredentials builds login credentials, reading the password from v.
func ResolveCredentials(ctx context.Context, v Vault, username, passwordRef string) (*Credentials, error) {
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("username is required")
	}
	if passwordRef == "" {
		return nil, fmt.Errorf("password reference is required")
	}

	password, err := v.GetSecret(ctx, passwordRef)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve password for %s: %w", username, err)
	}
	return &Credentials{Username: username, Password: password}, nil
}

package encryption_test

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unifiedui/admin-gateway/internal/pkg/encryption"
)

const rawKey = "0123456789abcdef0123456789abcdef"

func TestNewAESEncryptor_KeyLength(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{name: "raw 32 bytes", key: rawKey},
		{name: "base64 32 bytes", key: base64.StdEncoding.EncodeToString([]byte(rawKey))},
		{name: "too short", key: "short", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := encryption.NewAESEncryptor(tt.key)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, enc)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, enc)
		})
	}
}

func TestAESEncryptor_RoundTrip(t *testing.T) {
	// Arrange
	enc, err := encryption.NewAESEncryptor(rawKey)
	require.NoError(t, err)
	plaintext := []byte(`{"applied":{"phone":"+15550100"}}`)

	// Act
	sealed, err := enc.Seal(plaintext)
	require.NoError(t, err)
	opened, err := enc.Open(sealed)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, plaintext, opened)
	assert.NotContains(t, string(sealed), "+15550100")
}

func TestAESEncryptor_NonceIsFresh(t *testing.T) {
	enc, err := encryption.NewAESEncryptor(rawKey)
	require.NoError(t, err)

	a, err := enc.Seal([]byte("same"))
	require.NoError(t, err)
	b, err := enc.Seal([]byte("same"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestAESEncryptor_OpenRejectsTampering(t *testing.T) {
	enc, err := encryption.NewAESEncryptor(rawKey)
	require.NoError(t, err)
	other, err := encryption.NewAESEncryptor(strings.Repeat("z", 32))
	require.NoError(t, err)

	sealed, err := enc.Seal([]byte("secret"))
	require.NoError(t, err)

	_, err = other.Open(sealed)
	assert.Error(t, err)

	_, err = enc.Open([]byte(base64.StdEncoding.EncodeToString([]byte("abc"))))
	assert.ErrorIs(t, err, encryption.ErrCiphertextTooShort)

	_, err = enc.Open([]byte("not base64!"))
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	noop, err := encryption.New("")
	require.NoError(t, err)
	assert.IsType(t, &encryption.NoOpEncryptor{}, noop)

	sealed, err := noop.Seal([]byte("plain"))
	require.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("plain")), string(sealed))

	aes, err := encryption.New(rawKey)
	require.NoError(t, err)
	assert.IsType(t, &encryption.AESEncryptor{}, aes)

	_, err = encryption.New("bad")
	assert.Error(t, err)
}

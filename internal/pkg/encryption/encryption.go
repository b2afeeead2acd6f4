// Package encryption seals values written to shared storage with AES-256-GCM.
package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

// ErrCiphertextTooShort is returned when a sealed value is shorter than its nonce.
var ErrCiphertextTooShort = errors.New("ciphertext too short")

// Encryptor seals and opens opaque values.
type Encryptor interface {
	// Seal encrypts plaintext and returns base64-encoded ciphertext.
	Seal(plaintext []byte) ([]byte, error)

	// Open reverses Seal.
	Open(sealed []byte) ([]byte, error)
}

// AESEncryptor implements Encryptor using AES-256-GCM. The nonce is
// prepended to every sealed value.
type AESEncryptor struct {
	gcm cipher.AEAD
}

// NewAESEncryptor creates an encryptor from a 32-byte key, given raw or
// base64-encoded.
func NewAESEncryptor(key string) (*AESEncryptor, error) {
	keyBytes, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		keyBytes = []byte(key)
	}
	if len(keyBytes) != 32 {
		return nil, fmt.Errorf("encryption key must be 32 bytes, got %d", len(keyBytes))
	}

	block, err := aes.NewCipher(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return &AESEncryptor{gcm: gcm}, nil
}

// Seal encrypts plaintext under a fresh random nonce.
func (e *AESEncryptor) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, e.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return encode(e.gcm.Seal(nonce, nonce, plaintext, nil)), nil
}

// Open decrypts a value produced by Seal.
func (e *AESEncryptor) Open(sealed []byte) ([]byte, error) {
	data, err := decode(sealed)
	if err != nil {
		return nil, err
	}

	nonceSize := e.gcm.NonceSize()
	if len(data) < nonceSize {
		return nil, ErrCiphertextTooShort
	}
	plaintext, err := e.gcm.Open(nil, data[:nonceSize], data[nonceSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	return plaintext, nil
}

// NoOpEncryptor only base64-encodes. Used when no key is configured.
type NoOpEncryptor struct{}

// NewNoOpEncryptor creates a no-operation encryptor.
func NewNoOpEncryptor() *NoOpEncryptor {
	return &NoOpEncryptor{}
}

// Seal returns plaintext as base64.
func (NoOpEncryptor) Seal(plaintext []byte) ([]byte, error) {
	return encode(plaintext), nil
}

// Open decodes base64.
func (NoOpEncryptor) Open(sealed []byte) ([]byte, error) {
	return decode(sealed)
}

// New returns an AES encryptor for key, or a NoOpEncryptor when key is empty.
func New(key string) (Encryptor, error) {
	if key == "" {
		return NewNoOpEncryptor(), nil
	}
	return NewAESEncryptor(key)
}

func encode(b []byte) []byte {
	out := make([]byte, base64.StdEncoding.EncodedLen(len(b)))
	base64.StdEncoding.Encode(out, b)
	return out
}

func decode(b []byte) ([]byte, error) {
	out := make([]byte, base64.StdEncoding.DecodedLen(len(b)))
	n, err := base64.StdEncoding.Decode(out, b)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}
	return out[:n], nil
}

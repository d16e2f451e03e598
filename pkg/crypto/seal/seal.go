// Package seal provides authenticated encryption for persisted session
// state, with automatic algorithm selection.
//
// It selects the optimal cipher based on hardware capabilities:
// - AES-GCM when hardware AES acceleration is available
// - ChaCha20-Poly1305 otherwise
package seal

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"
	"runtime"
)

// CipherType identifies the cipher algorithm.
type CipherType string

const (
	CipherAESGCM   CipherType = "aes-gcm"
	CipherChaCha20 CipherType = "chacha20-poly1305"
)

// ErrOpenFailed indicates the sealed payload could not be authenticated.
var ErrOpenFailed = errors.New("seal: payload authentication failed")

// Sealer provides authenticated encryption for small payloads.
// Sealed output embeds the nonce, so a Sealer is stateless.
type Sealer interface {
	// Type returns the cipher type.
	Type() CipherType

	// Seal encrypts plaintext bound to additionalData.
	Seal(plaintext, additionalData []byte) ([]byte, error)

	// Open decrypts a sealed payload bound to additionalData.
	Open(sealed, additionalData []byte) ([]byte, error)
}

// KeySize is the required key length in bytes for all supported ciphers.
const KeySize = 32

// New creates a new Sealer with the given 32-byte key, selecting the
// optimal algorithm for the current hardware.
func New(key []byte) (Sealer, error) {
	if hasAESAcceleration() {
		return NewAESGCM(key)
	}
	return NewChaCha20(key)
}

// NewWithType creates a Sealer of the specified type.
func NewWithType(key []byte, cipherType CipherType) (Sealer, error) {
	switch cipherType {
	case CipherAESGCM:
		return NewAESGCM(key)
	case CipherChaCha20:
		return NewChaCha20(key)
	default:
		return nil, errors.New("seal: unknown cipher type: " + string(cipherType))
	}
}

// hasAESAcceleration checks if hardware AES acceleration is available.
// Go's crypto/aes uses AES-NI on amd64 and ARM crypto extensions on arm64.
func hasAESAcceleration() bool {
	switch runtime.GOARCH {
	case "amd64", "arm64":
		return true
	default:
		return false
	}
}

// baseSealer provides the shared seal/open implementation.
type baseSealer struct {
	aead cipher.AEAD
}

// seal encrypts plaintext and prepends the random nonce to the output.
func (b *baseSealer) seal(plaintext, additionalData []byte) ([]byte, error) {
	nonce := make([]byte, b.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return b.aead.Seal(nonce, nonce, plaintext, additionalData), nil
}

// open splits the nonce from the payload and decrypts the remainder.
func (b *baseSealer) open(sealed, additionalData []byte) ([]byte, error) {
	nonceSize := b.aead.NonceSize()
	if len(sealed) < nonceSize+b.aead.Overhead() {
		return nil, ErrOpenFailed
	}
	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	plaintext, err := b.aead.Open(nil, nonce, ciphertext, additionalData)
	if err != nil {
		return nil, ErrOpenFailed
	}
	return plaintext, nil
}

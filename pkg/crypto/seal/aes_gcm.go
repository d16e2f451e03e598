package seal

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
)

// AESGCM implements AES-256-GCM authenticated encryption.
type AESGCM struct {
	baseSealer
}

// NewAESGCM creates a new AES-256-GCM sealer.
//
// Key must be exactly 32 bytes.
func NewAESGCM(key []byte) (*AESGCM, error) {
	if len(key) != KeySize {
		return nil, errors.New("seal: invalid key size for AES-256-GCM: must be 32 bytes")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &AESGCM{
		baseSealer: baseSealer{aead: aead},
	}, nil
}

// Type returns the cipher type.
func (c *AESGCM) Type() CipherType {
	return CipherAESGCM
}

// Seal encrypts plaintext bound to additionalData.
func (c *AESGCM) Seal(plaintext, additionalData []byte) ([]byte, error) {
	return c.seal(plaintext, additionalData)
}

// Open decrypts a sealed payload bound to additionalData.
func (c *AESGCM) Open(sealed, additionalData []byte) ([]byte, error) {
	return c.open(sealed, additionalData)
}

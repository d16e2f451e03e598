package seal

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return key
}

func TestRoundTrip(t *testing.T) {
	for _, ct := range []CipherType{CipherAESGCM, CipherChaCha20} {
		t.Run(string(ct), func(t *testing.T) {
			s, err := NewWithType(testKey(t), ct)
			if err != nil {
				t.Fatalf("NewWithType(%s) error = %v", ct, err)
			}

			plaintext := []byte(`{"principal":"u","rememberMe":true}`)
			aad := []byte("routeguard.token")

			sealed, err := s.Seal(plaintext, aad)
			if err != nil {
				t.Fatalf("Seal() error = %v", err)
			}
			if bytes.Contains(sealed, plaintext) {
				t.Error("sealed payload contains plaintext")
			}

			opened, err := s.Open(sealed, aad)
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			if !bytes.Equal(opened, plaintext) {
				t.Errorf("Open() = %q, want %q", opened, plaintext)
			}
		})
	}
}

func TestOpenRejectsTampering(t *testing.T) {
	s, err := New(testKey(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	sealed, err := s.Seal([]byte("payload"), nil)
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}

	sealed[len(sealed)-1] ^= 0x01
	if _, err := s.Open(sealed, nil); !errors.Is(err, ErrOpenFailed) {
		t.Errorf("Open(tampered) error = %v, want ErrOpenFailed", err)
	}
}

func TestOpenRejectsWrongAAD(t *testing.T) {
	s, err := New(testKey(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	sealed, err := s.Seal([]byte("payload"), []byte("aad-one"))
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}

	if _, err := s.Open(sealed, []byte("aad-two")); !errors.Is(err, ErrOpenFailed) {
		t.Errorf("Open(wrong aad) error = %v, want ErrOpenFailed", err)
	}
}

func TestOpenRejectsTruncated(t *testing.T) {
	s, err := New(testKey(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := s.Open([]byte("short"), nil); !errors.Is(err, ErrOpenFailed) {
		t.Errorf("Open(truncated) error = %v, want ErrOpenFailed", err)
	}
}

func TestInvalidKeySize(t *testing.T) {
	if _, err := NewAESGCM(make([]byte, 16)); err == nil {
		t.Error("NewAESGCM(16-byte key) should fail")
	}
	if _, err := NewChaCha20(make([]byte, 31)); err == nil {
		t.Error("NewChaCha20(31-byte key) should fail")
	}
}

func TestNewSelectsACipher(t *testing.T) {
	s, err := New(testKey(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if s.Type() != CipherAESGCM && s.Type() != CipherChaCha20 {
		t.Errorf("Type() = %q, want a supported cipher", s.Type())
	}
}

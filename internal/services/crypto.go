package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// CryptoService turns values into opaque blobs and back. Callers never
// interpret blob structure; a failed Decrypt is the only signal a blob is
// bad.
type CryptoService interface {
	Encrypt(v any) (string, error)
	Decrypt(blob string, out any) error
}

type aeadCrypto struct {
	key [chacha20poly1305.KeySize]byte
}

// NewCryptoService derives an XChaCha20-Poly1305 key from the configured
// secret.
func NewCryptoService(secret string) (CryptoService, error) {
	if secret == "" {
		return nil, fmt.Errorf("crypto secret required")
	}
	return &aeadCrypto{key: sha256.Sum256([]byte(secret))}, nil
}

func (c *aeadCrypto) Encrypt(v any) (string, error) {
	plain, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal for encryption: %w", err)
	}
	aead, err := chacha20poly1305.NewX(c.key[:])
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plain)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("nonce: %w", err)
	}
	sealed := aead.Seal(nonce, nonce, plain, nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (c *aeadCrypto) Decrypt(blob string, out any) error {
	sealed, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return fmt.Errorf("decode blob: %w", err)
	}
	aead, err := chacha20poly1305.NewX(c.key[:])
	if err != nil {
		return err
	}
	if len(sealed) < aead.NonceSize() {
		return fmt.Errorf("blob too short")
	}
	nonce, ct := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ct, nil)
	if err != nil {
		return fmt.Errorf("open blob: %w", err)
	}
	if err := json.Unmarshal(plain, out); err != nil {
		return fmt.Errorf("unmarshal decrypted value: %w", err)
	}
	return nil
}

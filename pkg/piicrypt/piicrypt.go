// Package piicrypt protects sensitive client data (travel document
// numbers) at rest using AES-256-GCM.
//
// An encrypted value is stored as a single opaque string:
//
//	base64(nonce) "." base64(tag) "." base64(ciphertext)
//
// The nonce is 12 bytes and freshly random per call; the tag is the
// 16-byte GCM authentication tag. Decryption validates the tag before
// returning any plaintext, so tampering or a wrong key is always
// detected rather than producing garbage.
package piicrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
)

const (
	// KeySize is the required symmetric key length (AES-256).
	KeySize = 32

	nonceSize = 12
)

var (
	// ErrInvalidKey indicates a missing key or one that is not exactly
	// 32 bytes after base64 decoding. This is a configuration problem,
	// not a data problem.
	ErrInvalidKey = errors.New("piicrypt: encryption key must be 32 bytes")

	// ErrMalformedEnvelope indicates the stored value does not have the
	// nonce.tag.ciphertext structure.
	ErrMalformedEnvelope = errors.New("piicrypt: malformed encrypted payload")

	// ErrDecryptFailed indicates the authentication tag did not
	// validate — the value was tampered with or the key is wrong.
	ErrDecryptFailed = errors.New("piicrypt: authentication failed")
)

// ParseKey decodes a base64 key from configuration and validates its
// length. An empty input yields ErrInvalidKey.
func ParseKey(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, ErrInvalidKey
	}
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(key) != KeySize {
		return nil, ErrInvalidKey
	}
	return key, nil
}

// Encrypt seals value under key and returns the serialized envelope.
func Encrypt(value string, key []byte) (string, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	sealed := gcm.Seal(nil, nonce, []byte(value), nil)
	split := len(sealed) - gcm.Overhead()
	ciphertext, tag := sealed[:split], sealed[split:]

	return strings.Join([]string{
		base64.StdEncoding.EncodeToString(nonce),
		base64.StdEncoding.EncodeToString(tag),
		base64.StdEncoding.EncodeToString(ciphertext),
	}, "."), nil
}

// Decrypt opens an envelope produced by Encrypt. It returns
// ErrMalformedEnvelope when the structure is broken and ErrDecryptFailed
// when the tag does not validate; callers rendering lists must handle
// both per record instead of failing the whole view.
func Decrypt(envelope string, key []byte) (string, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	parts := strings.Split(envelope, ".")
	if len(parts) < 3 {
		return "", ErrMalformedEnvelope
	}

	nonce, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil || len(nonce) != nonceSize {
		return "", ErrMalformedEnvelope
	}
	tag, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", ErrMalformedEnvelope
	}
	ciphertext, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil {
		return "", ErrMalformedEnvelope
	}

	plaintext, err := gcm.Open(nil, nonce, append(ciphertext, tag...), nil)
	if err != nil {
		return "", ErrDecryptFailed
	}
	return string(plaintext), nil
}

// Last4 returns the trailing four characters of value (trimmed), or the
// whole value when it is four characters or fewer. It lets list views
// display a partial identifier without decrypting anything.
func Last4(value string) string {
	clean := strings.TrimSpace(value)
	runes := []rune(clean)
	if len(runes) <= 4 {
		return clean
	}
	return string(runes[len(runes)-4:])
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKey
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

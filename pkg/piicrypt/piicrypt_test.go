package piicrypt

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func testKey(t *testing.T, b byte) []byte {
	t.Helper()
	key := make([]byte, KeySize)
	for i := range key {
		key[i] = b
	}
	return key
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	key := testKey(t, 0x42)

	for _, plaintext := range []string{"AB123456", "", "número-con-acentos", strings.Repeat("x", 4096)} {
		envelope, err := Encrypt(plaintext, key)
		if err != nil {
			t.Fatalf("Encrypt(%q): %v", plaintext, err)
		}
		if got := strings.Count(envelope, "."); got != 2 {
			t.Fatalf("expected 3-part envelope, got %q", envelope)
		}

		decrypted, err := Decrypt(envelope, key)
		if err != nil {
			t.Fatalf("Decrypt: %v", err)
		}
		if decrypted != plaintext {
			t.Fatalf("round trip mismatch: got %q want %q", decrypted, plaintext)
		}
	}
}

func TestEncrypt_FreshNonce(t *testing.T) {
	key := testKey(t, 0x01)

	first, err := Encrypt("same value", key)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	second, err := Encrypt("same value", key)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if first == second {
		t.Fatalf("two encryptions of the same value must differ (nonce reuse)")
	}
}

func TestDecrypt_TamperDetection(t *testing.T) {
	key := testKey(t, 0x42)
	envelope, err := Encrypt("AB123456", key)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	parts := strings.Split(envelope, ".")

	// Flip a byte in the tag and in the ciphertext; each must be caught.
	for _, idx := range []int{1, 2} {
		raw, err := base64.StdEncoding.DecodeString(parts[idx])
		if err != nil {
			t.Fatalf("decode part %d: %v", idx, err)
		}
		raw[0] ^= 0xFF
		tampered := make([]string, 3)
		copy(tampered, parts)
		tampered[idx] = base64.StdEncoding.EncodeToString(raw)

		if _, err := Decrypt(strings.Join(tampered, "."), key); !errors.Is(err, ErrDecryptFailed) {
			t.Fatalf("tampered part %d: expected ErrDecryptFailed, got %v", idx, err)
		}
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	envelope, err := Encrypt("secret", testKey(t, 0x11))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if _, err := Decrypt(envelope, testKey(t, 0x22)); !errors.Is(err, ErrDecryptFailed) {
		t.Fatalf("expected ErrDecryptFailed, got %v", err)
	}
}

func TestDecrypt_Malformed(t *testing.T) {
	key := testKey(t, 0x42)
	for _, payload := range []string{"", "only-one", "two.parts", "!!!.###.$$$"} {
		if _, err := Decrypt(payload, key); !errors.Is(err, ErrMalformedEnvelope) {
			t.Fatalf("Decrypt(%q): expected ErrMalformedEnvelope, got %v", payload, err)
		}
	}
}

func TestKeyValidation(t *testing.T) {
	if _, err := Encrypt("x", []byte("short")); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey for short key, got %v", err)
	}
	if _, err := Decrypt("a.b.c", nil); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey for nil key, got %v", err)
	}
}

func TestParseKey(t *testing.T) {
	valid := base64.StdEncoding.EncodeToString(testKey(t, 0x07))
	key, err := ParseKey(valid)
	if err != nil {
		t.Fatalf("ParseKey valid: %v", err)
	}
	if len(key) != KeySize {
		t.Fatalf("expected %d-byte key, got %d", KeySize, len(key))
	}

	for _, bad := range []string{"", "not base64!!", base64.StdEncoding.EncodeToString([]byte("too short"))} {
		if _, err := ParseKey(bad); !errors.Is(err, ErrInvalidKey) {
			t.Fatalf("ParseKey(%q): expected ErrInvalidKey, got %v", bad, err)
		}
	}
}

func TestLast4(t *testing.T) {
	cases := map[string]string{
		"AB123456": "3456",
		"X":        "X",
		"1234":     "1234",
		" 98765 ":  "8765",
		"":         "",
	}
	for in, want := range cases {
		if got := Last4(in); got != want {
			t.Fatalf("Last4(%q) = %q, want %q", in, got, want)
		}
	}
}

package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signManifest(t *testing.T, secret, dataID, requestID, ts string) string {
	t.Helper()
	manifest := fmt.Sprintf("id:%s;request-id:%s;ts:%s;", dataID, requestID, ts)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(manifest))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	const secret = "whk-secret"

	t.Run("no secret configured is unverified", func(t *testing.T) {
		got := VerifySignature("", "ts=123,v1=deadbeef", "req-1", "456")
		assert.Equal(t, Unverified, got)
	})

	t.Run("valid signature verifies", func(t *testing.T) {
		v1 := signManifest(t, secret, "12345", "req-1", "1700000000")
		header := "ts=1700000000,v1=" + v1
		got := VerifySignature(secret, header, "req-1", "12345")
		assert.Equal(t, Verified, got)
	})

	t.Run("data id is lowercased before signing", func(t *testing.T) {
		v1 := signManifest(t, secret, "abc123", "req-1", "1700000000")
		header := "ts=1700000000,v1=" + v1
		got := VerifySignature(secret, header, "req-1", "ABC123")
		assert.Equal(t, Verified, got)
	})

	t.Run("wrong secret invalid", func(t *testing.T) {
		v1 := signManifest(t, "other-secret", "12345", "req-1", "1700000000")
		header := "ts=1700000000,v1=" + v1
		got := VerifySignature(secret, header, "req-1", "12345")
		assert.Equal(t, Invalid, got)
	})

	t.Run("tampered ts invalid", func(t *testing.T) {
		v1 := signManifest(t, secret, "12345", "req-1", "1700000000")
		header := "ts=1700000001,v1=" + v1
		got := VerifySignature(secret, header, "req-1", "12345")
		assert.Equal(t, Invalid, got)
	})

	t.Run("malformed header invalid", func(t *testing.T) {
		for _, header := range []string{"", "garbage", "ts=123", "v1=abc", "ts=,v1="} {
			assert.Equal(t, Invalid, VerifySignature(secret, header, "req-1", "12345"), "header %q", header)
		}
	})

	t.Run("header parses with spaces", func(t *testing.T) {
		v1 := signManifest(t, secret, "12345", "req-1", "1700000000")
		header := "ts=1700000000, v1=" + v1
		got := VerifySignature(secret, header, "req-1", "12345")
		assert.Equal(t, Verified, got)
	})
}

package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
)

// Outcome is the result of webhook signature verification. The handler, not
// the verifier, decides policy: Unverified is accepted (no secret
// configured), Invalid is rejected.
type Outcome int

const (
	Verified Outcome = iota
	Unverified
	Invalid
)

func (o Outcome) String() string {
	switch o {
	case Verified:
		return "verified"
	case Unverified:
		return "unverified"
	default:
		return "invalid"
	}
}

// VerifySignature checks the Mercado Pago x-signature header
// ("ts=<unix>,v1=<hex hmac>") against the canonical manifest
// "id:<data.id>;request-id:<x-request-id>;ts:<ts>;".
// With no secret configured every delivery is Unverified.
func VerifySignature(secret, signatureHeader, requestID, dataID string) Outcome {
	if secret == "" {
		return Unverified
	}

	ts, v1 := parseSignature(signatureHeader)
	if ts == "" || v1 == "" {
		return Invalid
	}

	manifest := fmt.Sprintf("id:%s;request-id:%s;ts:%s;", strings.ToLower(dataID), requestID, ts)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(manifest))
	expected := hex.EncodeToString(mac.Sum(nil))

	if subtle.ConstantTimeCompare([]byte(expected), []byte(v1)) != 1 {
		return Invalid
	}
	return Verified
}

func parseSignature(header string) (ts, v1 string) {
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "ts":
			ts = v
		case "v1":
			v1 = v
		}
	}
	return ts, v1
}

package common

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
)

// MakeRandHexString returns size random bytes encoded as hex (2*size chars).
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// WipeByteArray zeroes b in place. Nil is allowed.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// DecodeOrDefault unmarshals data into a fresh T and returns it. Empty input
// and any decoding error yield fallback; it never fails.
func DecodeOrDefault[T any](data []byte, fallback T) T {
	if len(data) == 0 {
		return fallback
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return fallback
	}
	return v
}

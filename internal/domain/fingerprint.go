package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"unicode/utf8"
)

// FingerprintLength is the length of a source-text fingerprint in hex characters.
const FingerprintLength = sha256.Size * 2

// Fingerprint returns the lowercase hex SHA-256 digest of text's UTF-8 bytes.
// It correlates generation attempts for auditing and is not a security primitive.
func Fingerprint(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// TextLength counts characters, not bytes, so limits match what users type.
func TextLength(text string) int {
	return utf8.RuneCountInString(text)
}

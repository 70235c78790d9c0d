// Package secret encrypts small values at rest, e.g. smtp passwords.
// The key is derived with argon2id and values are sealed with nacl/secretbox.
package secret

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	// Prefix marks a sealed value.
	Prefix = "enc:v1:"

	keyLen   = 32
	nonceLen = 24

	defaultSalt = "growfast-secret-box"
)

var (
	// ErrMalformed is returned for sealed values that can not be decoded.
	ErrMalformed = errors.New("secret: malformed sealed value")

	// ErrDecrypt is returned if the value was sealed with another key.
	ErrDecrypt = errors.New("secret: can not decrypt value")

	// ErrNoKey is returned when opening a sealed value without passphrase.
	ErrNoKey = errors.New("secret: no passphrase configured")
)

// Box seals and opens values. A Box without passphrase passes values through.
type Box struct {
	key     *[keyLen]byte
	enabled bool
}

// New derives the box key from passphrase and salt.
// An empty passphrase returns a disabled box.
func New(passphrase, salt string) *Box {
	if passphrase == "" {
		return &Box{}
	}

	if salt == "" {
		salt = defaultSalt
	}

	var key [keyLen]byte

	copy(key[:], argon2.IDKey([]byte(passphrase), []byte(salt), 1, 64*1024, 4, keyLen)) //nolint:mnd

	return &Box{key: &key, enabled: true}
}

// Enabled reports whether Seal encrypts.
func (b *Box) Enabled() bool {
	return b != nil && b.enabled
}

// IsSealed reports whether value carries the sealed prefix.
func IsSealed(value string) bool {
	return strings.HasPrefix(value, Prefix)
}

// Seal encrypts value. Empty and already sealed values are returned unchanged.
func (b *Box) Seal(value string) (string, error) {
	if !b.Enabled() || value == "" || IsSealed(value) {
		return value, nil
	}

	var nonce [nonceLen]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", err //nolint:wrapcheck
	}

	sealed := secretbox.Seal(nonce[:], []byte(value), &nonce, b.key)

	return Prefix + base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Open decrypts a sealed value. Plain values are returned unchanged.
func (b *Box) Open(value string) (string, error) {
	if !IsSealed(value) {
		return value, nil
	}

	if !b.Enabled() {
		return "", ErrNoKey
	}

	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(value, Prefix))
	if err != nil || len(raw) < nonceLen+secretbox.Overhead {
		return "", ErrMalformed
	}

	var nonce [nonceLen]byte

	copy(nonce[:], raw[:nonceLen])

	out, ok := secretbox.Open(nil, raw[nonceLen:], &nonce, b.key)
	if !ok {
		return "", ErrDecrypt
	}

	return string(out), nil
}

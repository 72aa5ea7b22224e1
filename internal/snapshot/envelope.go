// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"golang.org/x/crypto/pbkdf2"
)

// Envelope key derivation defaults.
const (
	keyProviderName   = "key_provider.pbkdf2.revdiff"
	defaultIterations = 600000
	defaultKeyLength  = 32
	saltLength        = 32
)

// ErrDecrypt is returned when an envelope cannot be opened with the given
// passphrase.
var ErrDecrypt = errors.New("failed to decrypt snapshot")

type envelope struct {
	Meta          map[string]string `json:"meta"`
	EncryptedData string            `json:"encrypted_data"`
}

type keyProvider struct {
	Salt       string `json:"salt"`
	Iterations int    `json:"iterations"`
	HashFunc   string `json:"hash_function"`
	KeyLength  int    `json:"key_length"`
}

// IsEncrypted reports whether data is an encrypted snapshot envelope.
func IsEncrypted(data []byte) bool {
	if !gjson.ValidBytes(data) {
		return false
	}
	r := gjson.ParseBytes(data)
	return r.IsObject() && r.Get("encrypted_data").Type == gjson.String
}

// Encrypt seals plain in an envelope keyed by passphrase: PBKDF2-SHA512
// derives an AES-256 key and AES-GCM seals the body with a random nonce.
func Encrypt(plain []byte, passphrase string) ([]byte, error) {
	return encrypt(plain, passphrase, defaultIterations)
}

func encrypt(plain []byte, passphrase string, iterations int) ([]byte, error) {
	if passphrase == "" {
		return nil, errors.New("passphrase is required")
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	kp := keyProvider{
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Iterations: iterations,
		HashFunc:   "sha512",
		KeyLength:  defaultKeyLength,
	}
	kpJSON, err := json.Marshal(kp)
	if err != nil {
		return nil, err
	}

	key := pbkdf2.Key([]byte(passphrase), salt, kp.Iterations, kp.KeyLength, sha512.New)
	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aesGCM.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	sealed := aesGCM.Seal(nonce, nonce, plain, nil)

	return json.Marshal(envelope{
		Meta:          map[string]string{keyProviderName: base64.StdEncoding.EncodeToString(kpJSON)},
		EncryptedData: base64.StdEncoding.EncodeToString(sealed),
	})
}

// Decrypt opens an envelope produced by Encrypt.
func Decrypt(data []byte, passphrase string) ([]byte, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to parse envelope: %w", err)
	}

	raw, ok := env.Meta[keyProviderName]
	if !ok {
		return nil, fmt.Errorf("envelope has no %s key provider", keyProviderName)
	}
	kpJSON, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode key provider config: %w", err)
	}
	var kp keyProvider
	if err := json.Unmarshal(kpJSON, &kp); err != nil {
		return nil, fmt.Errorf("failed to parse key provider config: %w", err)
	}
	if kp.HashFunc != "sha512" {
		return nil, fmt.Errorf("unsupported key provider hash function %q", kp.HashFunc)
	}
	if kp.Iterations <= 0 || kp.KeyLength <= 0 {
		return nil, errors.New("invalid key provider parameters")
	}

	salt, err := base64.StdEncoding.DecodeString(kp.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}

	key := pbkdf2.Key([]byte(passphrase), salt, kp.Iterations, kp.KeyLength, sha512.New)
	return open(env.EncryptedData, key)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}

func open(encryptedData string, key []byte) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(encryptedData)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}

	aesGCM, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonceSize := aesGCM.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf(
			"ciphertext too short: expected at least %d bytes, got %d",
			nonceSize,
			len(ciphertext),
		)
	}

	plain, err := aesGCM.Open(nil, ciphertext[:nonceSize], ciphertext[nonceSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecrypt, err)
	}
	return plain, nil
}

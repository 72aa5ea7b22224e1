// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package snapshot

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fewer iterations keep the tests fast; Decrypt reads the count from the
// envelope.
const testIterations = 1000

func TestEnvelopeRoundTrip(t *testing.T) {
	t.Parallel()
	plain := []byte(`[{"Name":"Wall-01"}]`)

	sealed, err := encrypt(plain, "correct horse", testIterations)
	require.NoError(t, err)
	assert.True(t, IsEncrypted(sealed))
	assert.NotContains(t, string(sealed), "Wall-01")

	got, err := Decrypt(sealed, "correct horse")
	require.NoError(t, err)
	assert.Equal(t, plain, got)
}

func TestEnvelopeWrongPassphrase(t *testing.T) {
	t.Parallel()
	sealed, err := encrypt([]byte(`[]`), "right", testIterations)
	require.NoError(t, err)

	_, err = Decrypt(sealed, "wrong")
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestEnvelopeNoncesDiffer(t *testing.T) {
	t.Parallel()
	a, err := encrypt([]byte(`[]`), "p", testIterations)
	require.NoError(t, err)
	b, err := encrypt([]byte(`[]`), "p", testIterations)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestEncryptRequiresPassphrase(t *testing.T) {
	t.Parallel()
	_, err := Encrypt([]byte(`[]`), "")
	assert.ErrorContains(t, err, "passphrase is required")
}

func TestDecryptMalformed(t *testing.T) {
	t.Parallel()
	kp := func(v keyProvider) string {
		b, _ := json.Marshal(v)
		return base64.StdEncoding.EncodeToString(b)
	}
	good := keyProvider{Salt: base64.StdEncoding.EncodeToString([]byte("salt")), Iterations: 10, HashFunc: "sha512", KeyLength: 32}
	wrongHash := good
	wrongHash.HashFunc = "md5"
	zeroIter := good
	zeroIter.Iterations = 0

	tests := []struct {
		name string
		env  envelope
		msg  string
	}{
		{"missing provider", envelope{Meta: map[string]string{}, EncryptedData: "AA=="}, "no key_provider"},
		{"bad provider base64", envelope{Meta: map[string]string{keyProviderName: "!!"}, EncryptedData: "AA=="}, "key provider config"},
		{"unsupported hash", envelope{Meta: map[string]string{keyProviderName: kp(wrongHash)}, EncryptedData: "AA=="}, "hash function"},
		{"zero iterations", envelope{Meta: map[string]string{keyProviderName: kp(zeroIter)}, EncryptedData: "AA=="}, "invalid key provider"},
		{"bad data base64", envelope{Meta: map[string]string{keyProviderName: kp(good)}, EncryptedData: "!!"}, "base64"},
		{"short ciphertext", envelope{Meta: map[string]string{keyProviderName: kp(good)}, EncryptedData: "AA=="}, "too short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.env)
			require.NoError(t, err)
			_, err = Decrypt(data, "p")
			assert.ErrorContains(t, err, tt.msg)
		})
	}

	_, err := Decrypt([]byte("not json"), "p")
	assert.ErrorContains(t, err, "failed to parse envelope")
}

func TestIsEncrypted(t *testing.T) {
	t.Parallel()
	assert.False(t, IsEncrypted([]byte(`[{"encrypted_data":"x"}]`)))
	assert.False(t, IsEncrypted([]byte(`{"encrypted_data":1}`)))
	assert.False(t, IsEncrypted([]byte(`nope`)))
	assert.True(t, IsEncrypted([]byte(`{"meta":{},"encrypted_data":"x"}`)))
}

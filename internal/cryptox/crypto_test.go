package cryptox

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	secret := []byte("secret-password")
	salt := []byte("fixed-salt-value")

	key1 := DeriveKey(secret, salt)
	key2 := DeriveKey(secret, salt)

	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}
	if len(key1) != KeySize {
		t.Errorf("expected %d byte key, got %d", KeySize, len(key1))
	}
}

func TestDeriveKey_DifferentInputs(t *testing.T) {
	secret := []byte("secret-password")

	key1 := DeriveKey(secret, []byte("salt-1"))
	key2 := DeriveKey(secret, []byte("salt-2"))
	key3 := DeriveKey([]byte("other-password"), []byte("salt-1"))

	if bytes.Equal(key1, key2) {
		t.Errorf("expected different results for different salts, got same")
	}
	if bytes.Equal(key1, key3) {
		t.Errorf("expected different results for different secrets, got same")
	}
}

func TestMakeVerifier(t *testing.T) {
	a := MakeVerifier([]byte("k1"))
	b := MakeVerifier([]byte("k1"))
	c := MakeVerifier([]byte("k2"))

	assert.Len(t, a, 32)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestEncryptDecryptEntry(t *testing.T) {
	key, err := GenerateRandByteArray(KeySize)
	require.NoError(t, err)

	in := map[string]any{"id": 42, "office": "London"}
	ct, nonce, err := EncryptEntry(in, key)
	require.NoError(t, err)
	assert.NotContains(t, string(ct), "London")

	var out map[string]any
	require.NoError(t, DecryptEntry(ct, nonce, key, &out))
	assert.Equal(t, json.Number("42"), out["id"])
	assert.Equal(t, "London", out["office"])
}

func TestDecryptEntry_WrongKeyOrNonce(t *testing.T) {
	key, err := GenerateRandByteArray(KeySize)
	require.NoError(t, err)
	other, err := GenerateRandByteArray(KeySize)
	require.NoError(t, err)

	ct, nonce, err := EncryptEntry("payload", key)
	require.NoError(t, err)

	var out string
	require.Error(t, DecryptEntry(ct, nonce, other, &out))
	require.Error(t, DecryptEntry(ct, nonce[:4], key, &out))
}

func TestSeal_FreshNonces(t *testing.T) {
	key, err := GenerateRandByteArray(KeySize)
	require.NoError(t, err)

	_, n1, err := Seal([]byte("x"), key)
	require.NoError(t, err)
	_, n2, err := Seal([]byte("x"), key)
	require.NoError(t, err)

	if bytes.Equal(n1, n2) {
		t.Logf("warning: two nonces are identical; extremely unlikely")
	}
}

func TestSeal_BadKey(t *testing.T) {
	_, _, err := Seal([]byte("x"), []byte("short"))
	require.Error(t, err)
}

func TestWipeByteArray(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	assert.Equal(t, []byte{0, 0, 0, 0, 0}, buf)

	WipeByteArray(nil)
}

func TestNewSalt(t *testing.T) {
	s, err := NewSalt()
	require.NoError(t, err)
	assert.Len(t, s, SaltSize)
}

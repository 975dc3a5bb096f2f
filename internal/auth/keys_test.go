package auth

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadECDSAPrivateKey(t *testing.T) {
	tests := []struct {
		name    string
		keyPath string
		wantErr bool
	}{
		{name: "load valid key", keyPath: validKeyFile, wantErr: false},
		{name: "load invalid key", keyPath: invalidKeyFile, wantErr: true},
		{name: "file does not exist", keyPath: "non_existent_key.pem", wantErr: true},
		{name: "empty key path", keyPath: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadECDSAPrivateKey(tt.keyPath)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadECDSAPrivateKey() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr {
				checkECDSAPrivateKey(t, got)
				assert.True(t, got.Equal(testJwtPrivateKey))
			}
		})
	}
}

func TestLoadOrCreateECDSAPrivateKey(t *testing.T) {
	t.Run("creates missing key", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "keys", "session.pem")

		key, created, err := LoadOrCreateECDSAPrivateKey(path)
		require.NoError(t, err)
		assert.True(t, created)
		checkECDSAPrivateKey(t, key)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

		again, created, err := LoadOrCreateECDSAPrivateKey(path)
		require.NoError(t, err)
		assert.False(t, created)
		assert.True(t, key.Equal(again))
	})

	t.Run("loads existing key", func(t *testing.T) {
		key, created, err := LoadOrCreateECDSAPrivateKey(validKeyFile)
		require.NoError(t, err)
		assert.False(t, created)
		assert.True(t, key.Equal(testJwtPrivateKey))
	})

	t.Run("corrupt key is not replaced", func(t *testing.T) {
		_, _, err := LoadOrCreateECDSAPrivateKey(invalidKeyFile)
		assert.Error(t, err)
	})

	t.Run("empty path", func(t *testing.T) {
		_, _, err := LoadOrCreateECDSAPrivateKey("")
		assert.Error(t, err)
	})
}

func checkECDSAPrivateKey(t *testing.T, key *ecdsa.PrivateKey) {
	t.Helper()
	require.NotNil(t, key)
	assert.Equal(t, elliptic.P256(), key.Curve)

	hash := sha256.Sum256([]byte("test message"))
	r, s, err := ecdsa.Sign(rand.Reader, key, hash[:])
	require.NoError(t, err)
	assert.True(t, ecdsa.Verify(&key.PublicKey, hash[:], r, s))
}

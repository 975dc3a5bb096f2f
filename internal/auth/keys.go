package auth

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

const pemBlockType = "EC PRIVATE KEY"

// LoadECDSAPrivateKey loads a PEM encoded ECDSA private key from keyPath.
func LoadECDSAPrivateKey(keyPath string) (*ecdsa.PrivateKey, error) {
	if _, err := os.Stat(keyPath); err != nil {
		return nil, fmt.Errorf("private key path does not exist: %w", err)
	}

	keyData, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	block, _ := pem.Decode(keyData)
	if block == nil {
		return nil, fmt.Errorf("failed to decode PEM block")
	}

	privateKey, err := x509.ParseECPrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ECDSA private key: %w", err)
	}

	return privateKey, nil
}

// LoadOrCreateECDSAPrivateKey loads the key at keyPath, generating and
// persisting a new P-256 key (mode 0600) when the file does not exist.
func LoadOrCreateECDSAPrivateKey(keyPath string) (*ecdsa.PrivateKey, bool, error) {
	if keyPath == "" {
		return nil, false, fmt.Errorf("private key path is empty")
	}

	key, err := LoadECDSAPrivateKey(keyPath)
	if err == nil {
		return key, false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, false, err
	}

	key, err = ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, false, fmt.Errorf("failed to generate ECDSA private key: %w", err)
	}

	if dir := filepath.Dir(keyPath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, false, fmt.Errorf("failed to create key directory: %w", err)
		}
	}
	out, err := os.OpenFile(keyPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create key file: %w", err)
	}
	defer out.Close()

	if err := EncodeECDSAPrivateKeyToPEM(out, key); err != nil {
		return nil, false, err
	}

	return key, true, nil
}

// EncodeECDSAPrivateKeyToPEM writes key to out as an "EC PRIVATE KEY" PEM block.
func EncodeECDSAPrivateKeyToPEM(out io.Writer, key *ecdsa.PrivateKey) error {
	der, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		return fmt.Errorf("failed to marshal ECDSA private key: %w", err)
	}
	block := &pem.Block{
		Type:  pemBlockType,
		Bytes: der,
	}
	if err := pem.Encode(out, block); err != nil {
		return fmt.Errorf("failed to encode PEM: %w", err)
	}
	return nil
}

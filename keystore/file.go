package keystore

import (
	"fmt"
	"os"
	"path/filepath"
)

// KeyPath returns the key file path for a role inside a data directory.
func KeyPath(dataDir, role string) string {
	return filepath.Join(dataDir, "keys", role+".key")
}

// SaveKey encrypts a key pair and writes it to path, creating parent
// directories as needed. The file is owner-readable only.
func SaveKey(path string, kp *KeyPair, password string) error {
	if kp == nil || kp.PrivateKey == nil {
		return ErrInvalidKey
	}
	encrypted, err := EncryptKey(kp.Bytes(), password)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("keystore: create directory: %w", err)
	}
	if err := os.WriteFile(path, encrypted, 0600); err != nil {
		return fmt.Errorf("keystore: write %s: %w", path, err)
	}
	return nil
}

// LoadKey reads and decrypts a key pair from path.
func LoadKey(path, password string) (*KeyPair, error) {
	encrypted, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, path)
		}
		return nil, fmt.Errorf("keystore: read %s: %w", path, err)
	}
	raw, err := DecryptKey(encrypted, password)
	if err != nil {
		return nil, err
	}
	return FromBytes(raw)
}

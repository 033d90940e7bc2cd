package keystore

import "errors"

var (
	// ErrInvalidKey indicates the private key material is empty or malformed.
	ErrInvalidKey = errors.New("keystore: invalid private key")

	// ErrInvalidDigest indicates the digest is not 32 bytes.
	ErrInvalidDigest = errors.New("keystore: digest must be 32 bytes")

	// ErrInvalidSignature indicates the signature is malformed or does not
	// verify against the digest and public key.
	ErrInvalidSignature = errors.New("keystore: invalid signature")

	// ErrDecryptionFailed indicates wrong password or corrupted key data.
	ErrDecryptionFailed = errors.New("keystore: key decryption failed (wrong password or corrupted data)")

	// ErrChecksumMismatch indicates key checksum verification failed after decryption.
	ErrChecksumMismatch = errors.New("keystore: key checksum mismatch")

	// ErrKeyNotFound indicates the key file does not exist.
	ErrKeyNotFound = errors.New("keystore: key file not found")
)

// Package keystore manages the secp256k1 role keys of a Neptune deployment:
// the team treasury key, the epoch governor key and the node operator key.
// Keys are persisted encrypted at rest and sign 32-byte digests for operator
// attestations.
package keystore

import (
	"fmt"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"

	"github.com/neptunefi/libneptune-go/token"
)

// Role names used for key files.
const (
	RoleTeam     = "team"
	RoleGovernor = "governor"
	RoleOperator = "operator"
)

// PrivateKeyLen is the length of a serialized private key in bytes.
const PrivateKeyLen = 32

// DigestLen is the length of a signable digest in bytes.
const DigestLen = 32

// KeyPair holds a role's secp256k1 key pair.
type KeyPair struct {
	PrivateKey *ec.PrivateKey
	PublicKey  *ec.PublicKey
}

// Generate creates a new random key pair.
func Generate() (*KeyPair, error) {
	priv, err := ec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("keystore: generate key: %w", err)
	}
	return &KeyPair{PrivateKey: priv, PublicKey: priv.PubKey()}, nil
}

// FromBytes rebuilds a key pair from a 32-byte private key.
func FromBytes(b []byte) (*KeyPair, error) {
	if len(b) != PrivateKeyLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidKey, len(b))
	}
	priv, pub := ec.PrivateKeyFromBytes(b)
	return &KeyPair{PrivateKey: priv, PublicKey: pub}, nil
}

// Bytes returns the 32-byte private key.
func (kp *KeyPair) Bytes() []byte {
	return kp.PrivateKey.Serialize()
}

// Address returns the key's ledger account address.
func (kp *KeyPair) Address() token.Address {
	return token.AddressFromPubKey(kp.PublicKey)
}

// SignDigest signs a 32-byte digest and returns the DER-encoded signature.
func (kp *KeyPair) SignDigest(digest []byte) ([]byte, error) {
	if len(digest) != DigestLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidDigest, len(digest))
	}
	sig, err := kp.PrivateKey.Sign(digest)
	if err != nil {
		return nil, fmt.Errorf("keystore: sign digest: %w", err)
	}
	return sig.Serialize(), nil
}

// VerifyDigest checks a DER-encoded signature over a 32-byte digest.
func VerifyDigest(pub *ec.PublicKey, digest, sigDER []byte) error {
	if len(digest) != DigestLen {
		return fmt.Errorf("%w: %d bytes", ErrInvalidDigest, len(digest))
	}
	sig, err := ec.ParseDERSignature(sigDER)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}
	if !sig.Verify(digest, pub) {
		return ErrInvalidSignature
	}
	return nil
}

// Package cryptox implements the demo encryption layer: symmetric message
// encryption under a single shared key, and the credential-hash stub used to
// simulate ZKP authentication.
//
// This is a placeholder, not a security boundary. Every installation derives
// the same key from the same compiled-in passphrase, so any client can
// decrypt any message. A production system would negotiate per-conversation
// keys instead.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/dmitrijs2005/gophchat/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	// defaultPassphrase is the shared secret every client derives the
	// message key from.
	defaultPassphrase = "goku-super-saiyan-secret-key"

	// keySalt is fixed so all installations derive the same key.
	keySalt = "gophchat-static-salt"

	nonceSize = 12
)

// DeriveKey derives a 32-byte AES-256 key from a passphrase and salt using
// argon2id.
func DeriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, 32)
}

// Cipher encrypts and decrypts message content with AES-256-GCM under a
// fixed key. Construct once at process start and inject where needed.
type Cipher struct {
	key []byte
}

// NewCipher returns a Cipher using the compiled-in shared passphrase.
func NewCipher() *Cipher {
	return NewCipherWithPassphrase(defaultPassphrase)
}

// NewCipherWithPassphrase returns a Cipher whose key is derived from the
// given passphrase. Useful in tests to produce foreign ciphertext.
func NewCipherWithPassphrase(passphrase string) *Cipher {
	return &Cipher{key: DeriveKey([]byte(passphrase), []byte(keySalt))}
}

// Encrypt seals the plaintext with a fresh random nonce and returns
// base64(nonce || ciphertext). Two encryptions of the same plaintext yield
// different outputs.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	sealed := aesgcm.Seal(nil, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(append(nonce, sealed...)), nil
}

// Decrypt reverses Encrypt. It fails with common.ErrDecryptionFailure when
// the ciphertext is malformed or was produced under a different key.
func (c *Cipher) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrDecryptionFailure, err)
	}
	if len(raw) < nonceSize {
		return "", fmt.Errorf("%w: ciphertext too short", common.ErrDecryptionFailure)
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	plaintext, err := aesgcm.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrDecryptionFailure, err)
	}
	return string(plaintext), nil
}

// HashCredentials computes the hex SHA-256 digest of email+password.
//
// This simulates ZKP authentication: the digest is computed and returned but
// never compared against anything. Actual authentication is a plaintext
// password comparison in the users repository. The call is kept for
// behavioral parity with the original flow.
func HashCredentials(email, password string) string {
	sum := sha256.Sum256([]byte(email + password))
	return hex.EncodeToString(sum[:])
}

// KeyPair is a demo stand-in for an asymmetric key pair.
type KeyPair struct {
	PublicKey  string
	PrivateKey string
}

// GenerateKeyPair produces random hex strings shaped like a key pair. No
// real asymmetric cryptography happens anywhere; the pair is surfaced
// nowhere else in the application.
func GenerateKeyPair() (*KeyPair, error) {
	pub, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, err
	}
	priv, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, err
	}
	return &KeyPair{PublicKey: pub, PrivateKey: priv}, nil
}

package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	kerrors "github.com/neo-th/iot-cache/internal/errors"
	"github.com/pkg/errors"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// NonceSize is the standard GCM nonce size.
	NonceSize = 12
	// SaltSize is the PBKDF2 salt size.
	SaltSize = 16
	// TagSize is the GCM authentication tag size.
	TagSize = 16
	// HeaderSize is the fixed prefix before the ciphertext.
	HeaderSize = NonceSize + SaltSize + TagSize
	// KeySize selects AES-256.
	KeySize = 32
	// Iterations is the PBKDF2 iteration count.
	Iterations = 100000
)

var blobEncoding = base64.StdEncoding.Strict()

// DeriveKey stretches passphrase and salt into a 32-byte key.
func DeriveKey(passphrase, salt []byte) []byte {
	return deriveKey(passphrase, salt, Iterations)
}

func deriveKey(passphrase, salt []byte, iterations int) []byte {
	return pbkdf2.Key(passphrase, salt, iterations, KeySize, sha256.New)
}

// Encrypt seals plaintext under a key derived from passphrase and returns the encoded blob.
func Encrypt(plaintext, passphrase []byte) (string, error) {
	return seal(rand.Reader, Iterations, plaintext, passphrase)
}

// Decrypt opens a blob produced by Encrypt.
//
// Returns ErrMalformedBlob if the blob is not base64 or is shorter than HeaderSize.
// Returns ErrAuthenticationFailure if the tag does not verify.
func Decrypt(blob string, passphrase []byte) ([]byte, error) {
	return open(Iterations, blob, passphrase)
}

func seal(random io.Reader, iterations int, plaintext, passphrase []byte) (string, error) {
	header := make([]byte, HeaderSize, HeaderSize+len(plaintext))
	nonce := header[:NonceSize]
	salt := header[NonceSize : NonceSize+SaltSize]

	if _, err := io.ReadFull(random, nonce); err != nil {
		return "", errors.Wrap(err, "cannot generate nonce")
	}
	if _, err := io.ReadFull(random, salt); err != nil {
		return "", errors.Wrap(err, "cannot generate salt")
	}

	gcm, err := newGCM(deriveKey(passphrase, salt, iterations))
	if err != nil {
		return "", err
	}

	// GCM appends the tag after the ciphertext; the blob stores it first.
	sealed := gcm.Seal(nil, nonce, plaintext, nil)
	ciphertext, tag := sealed[:len(plaintext)], sealed[len(plaintext):]

	raw := append(header[:NonceSize+SaltSize], tag...)
	raw = append(raw, ciphertext...)
	return blobEncoding.EncodeToString(raw), nil
}

func open(iterations int, blob string, passphrase []byte) ([]byte, error) {
	raw, err := blobEncoding.DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrMalformedBlob, err)
	}
	if len(raw) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes, header needs %d", kerrors.ErrMalformedBlob, len(raw), HeaderSize)
	}

	nonce := raw[:NonceSize]
	salt := raw[NonceSize : NonceSize+SaltSize]
	tag := raw[NonceSize+SaltSize : HeaderSize]
	ciphertext := raw[HeaderSize:]

	gcm, err := newGCM(deriveKey(passphrase, salt, iterations))
	if err != nil {
		return nil, err
	}

	sealed := make([]byte, 0, len(ciphertext)+TagSize)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, kerrors.ErrAuthenticationFailure
	}
	if plaintext == nil {
		plaintext = []byte{}
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create new aes block cipher")
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create new gcm cipher")
	}
	return gcm, nil
}

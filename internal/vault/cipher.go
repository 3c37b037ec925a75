package vault

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/neo-th/iot-cache/internal/serial"
)

// Cipher seals and opens values with the passphrase its resolver supplies.
type Cipher struct {
	resolver   serial.Resolver
	random     io.Reader
	iterations int
}

// New returns a Cipher keyed by the hardware serial that resolver reports.
func New(resolver serial.Resolver) *Cipher {
	return &Cipher{
		resolver:   resolver,
		random:     rand.Reader,
		iterations: Iterations,
	}
}

// Seal encrypts plaintext and returns the encoded blob.
func (c *Cipher) Seal(plaintext []byte) (string, error) {
	passphrase, err := c.passphrase()
	if err != nil {
		return "", err
	}
	return seal(c.random, c.iterations, plaintext, passphrase)
}

// Open decrypts a blob written on a machine with the same serial.
func (c *Cipher) Open(blob string) ([]byte, error) {
	passphrase, err := c.passphrase()
	if err != nil {
		return nil, err
	}
	return open(c.iterations, blob, passphrase)
}

func (c *Cipher) passphrase() ([]byte, error) {
	if c.resolver == nil {
		return nil, fmt.Errorf("cipher has no serial resolver")
	}
	value, err := c.resolver.Resolve()
	if err != nil {
		return nil, fmt.Errorf("resolving encryption passphrase: %w", err)
	}
	return []byte(value), nil
}

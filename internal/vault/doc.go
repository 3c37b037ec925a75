// Package vault encrypts individual store values under a key derived from
// the machine's hardware serial.
//
// # Key Derivation
//
// Every encryption call draws a fresh 16-byte salt and stretches the
// passphrase with PBKDF2-HMAC-SHA256 (100,000 iterations, 32-byte output)
// into an AES-256 key. Derivation is deterministic, so decryption re-derives
// the same key from the salt stored in the blob.
//
// # Blob Format
//
// AES-256-GCM with a fresh 12-byte nonce produces a 16-byte tag and a
// ciphertext as long as the plaintext. The four parts are concatenated at
// fixed offsets and base64 encoded (standard alphabet, padded):
//
//	base64( nonce[12] | salt[16] | tag[16] | ciphertext[n] )
//
// The header is 44 bytes, so a decoded blob shorter than that is malformed.
// Decoding is strict: non-canonical padding bits are rejected, so every bit
// flip in the encoded text either fails to decode (ErrMalformedBlob) or fails
// authentication (ErrAuthenticationFailure). No partial plaintext is ever
// returned.
//
// # Usage
//
//	c := vault.New(serial.NewCached(serial.DefaultSource()))
//	blob, err := c.Seal([]byte("hunter2"))
//	plaintext, err := c.Open(blob)
package vault

// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package primitive wraps the fixed set of cryptographic building
// blocks the protection engine composes: Ed25519 signatures, X25519
// key agreement, AES-256-GCM, HKDF-SHA-256, and SHA-256. It introduces
// no new constructions; it only gives them byte-level framing and a
// single error taxonomy.
package primitive

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	luxhashing "github.com/luxfi/crypto/hashing"
	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the length in bytes of an X25519 scalar/point, an
	// AES-256-GCM key, and every payload this package wraps.
	KeySize = 32
	// NonceSize is the length in bytes of an AES-GCM nonce.
	NonceSize = 12
	// SignaturePublicKeySize is the length of an Ed25519 public key.
	SignaturePublicKeySize = ed25519.PublicKeySize
	// SignaturePrivateKeySize is the length of an Ed25519 private key
	// (seed + public key, as returned by ed25519.GenerateKey).
	SignaturePrivateKeySize = ed25519.PrivateKeySize
	// SignatureSize is the length of an Ed25519 signature.
	SignatureSize = ed25519.SignatureSize
)

var (
	ErrDecryptAuth        = errors.New("primitive: aead authentication failed")
	ErrInvalidSignature   = errors.New("primitive: signature verification failed")
	ErrInvalidKeyEncoding = errors.New("primitive: invalid key encoding")
	ErrRngUnavailable     = errors.New("primitive: secure random source unavailable")
)

// RandomBytes draws n bytes from the process's cryptographic RNG.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, ErrRngUnavailable
	}
	return b, nil
}

// Hash computes SHA-256, via luxfi/crypto/hashing the way the teacher
// hashes commitment material elsewhere in this lineage.
func Hash(data []byte) [32]byte {
	var out [32]byte
	copy(out[:], luxhashing.ComputeHash256(data))
	return out
}

// GenerateSigningKeyPair returns a fresh Ed25519 key pair, with the
// private half expressed as its 32-byte seed (the canonical raw-key
// encoding this engine stores and transmits).
func GenerateSigningKeyPair() (public, seed [32]byte, err error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return public, seed, ErrRngUnavailable
	}
	copy(public[:], pub)
	copy(seed[:], priv.Seed())
	return public, seed, nil
}

// Sign signs a message (in this engine, always a 32-byte hash) with
// the Ed25519 private key derived from seed. The raw message bytes
// are the signed domain; no additional prefix is applied.
func Sign(seed [32]byte, message []byte) []byte {
	priv := ed25519.NewKeyFromSeed(seed[:])
	return ed25519.Sign(priv, message)
}

// Verify checks an Ed25519 signature over message.
func Verify(pub [32]byte, message, sig []byte) bool {
	if len(sig) != SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub[:]), message, sig)
}

// GenerateEncryptionKeyPair returns a fresh X25519 key pair.
func GenerateEncryptionKeyPair() (public, private [32]byte, err error) {
	if _, err := io.ReadFull(rand.Reader, private[:]); err != nil {
		return public, private, ErrRngUnavailable
	}
	pub, err := curve25519.X25519(private[:], curve25519.Basepoint)
	if err != nil {
		return public, private, ErrInvalidKeyEncoding
	}
	copy(public[:], pub)
	return public, private, nil
}

var zero32 [32]byte

// ScalarMult computes scalar*point over Curve25519 and rejects an
// all-zero result, which indicates a low-order or otherwise invalid
// peer key.
func ScalarMult(scalar, point []byte) ([]byte, error) {
	out, err := curve25519.X25519(scalar, point)
	if err != nil {
		return nil, ErrInvalidKeyEncoding
	}
	if subtleEqual(out, zero32[:]) {
		return nil, ErrInvalidKeyEncoding
	}
	return out, nil
}

func subtleEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var v byte
	for i := range a {
		v |= a[i] ^ b[i]
	}
	return v == 0
}

// HKDF derives length bytes from secret using HKDF-SHA-256 with an
// empty salt and the given info string.
func HKDF(secret []byte, info string, length int) ([]byte, error) {
	r := hkdf.New(sha256.New, secret, nil, []byte(info))
	out := make([]byte, length)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, ErrInvalidKeyEncoding
	}
	return out, nil
}

// Seal encrypts plaintext under key with a freshly drawn nonce using
// AES-256-GCM with a 128-bit tag and no associated data. It returns
// the nonce and ciphertext separately, per the wire framing in the
// document format.
func Seal(key, plaintext []byte) (nonce, ciphertext []byte, err error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}
	nonce, err = RandomBytes(NonceSize)
	if err != nil {
		return nil, nil, err
	}
	ciphertext = aead.Seal(nil, nonce, plaintext, nil)
	return nonce, ciphertext, nil
}

// Open decrypts ciphertext under key and nonce, authenticating with a
// zero-length associated-data input. Tag failure surfaces
// ErrDecryptAuth.
func Open(key, nonce, ciphertext []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptAuth
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeyEncoding
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, ErrInvalidKeyEncoding
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, ErrInvalidKeyEncoding
	}
	return aead, nil
}

// Zero overwrites b's backing array with zero bytes. Used to scrub
// transaction keys, group keys, ephemeral scalars, and HKDF outputs
// before they fall out of scope.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

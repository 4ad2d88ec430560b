// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package wrap builds and opens wrapped-key envelopes: an X25519-ECDH
// key agreement, HKDF-SHA-256 derivation, and AES-256-GCM seal of a
// fixed 32-byte payload to a recipient's encryption public key. This
// generalizes the ephemeral-encapsulation pattern in the teacher
// repo's HPKE implementation to the engine's envelope wire shape.
package wrap

import (
	"github.com/luxfi/dvpguard/internal/primitive"
)

const wrapInfo = "key_wrapping"

// Envelope is the fixed wire shape for a wrapped 32-byte payload:
// an ephemeral X25519 public key, a 12-byte AEAD nonce, and the
// ciphertext.
type Envelope struct {
	EphemeralPublicKey [32]byte
	Nonce              []byte
	Ciphertext         []byte
}

// Wrap encrypts a 32-byte payload (a transaction key K_T or a
// group-derived key K_G) for the holder of recipientPublic.
func Wrap(recipientPublic [32]byte, payload []byte) (*Envelope, error) {
	ephemeralPublic, ephemeralPrivate, err := primitive.GenerateEncryptionKeyPair()
	if err != nil {
		return nil, err
	}
	defer primitive.Zero(ephemeralPrivate[:])

	shared, err := primitive.ScalarMult(ephemeralPrivate[:], recipientPublic[:])
	if err != nil {
		return nil, err
	}
	defer primitive.Zero(shared)

	wk, err := primitive.HKDF(shared, wrapInfo, primitive.KeySize)
	if err != nil {
		return nil, err
	}
	defer primitive.Zero(wk)

	nonce, ciphertext, err := primitive.Seal(wk, payload)
	if err != nil {
		return nil, err
	}

	return &Envelope{
		EphemeralPublicKey: ephemeralPublic,
		Nonce:              nonce,
		Ciphertext:         ciphertext,
	}, nil
}

// Unwrap recovers the 32-byte payload sealed in env using the
// recipient's encryption private key. Tag failure returns
// primitive.ErrDecryptAuth; an invalid or low-order ephemeral key
// returns primitive.ErrInvalidKeyEncoding.
func Unwrap(recipientPrivate [32]byte, env *Envelope) ([]byte, error) {
	shared, err := primitive.ScalarMult(recipientPrivate[:], env.EphemeralPublicKey[:])
	if err != nil {
		return nil, err
	}
	defer primitive.Zero(shared)

	wk, err := primitive.HKDF(shared, wrapInfo, primitive.KeySize)
	if err != nil {
		return nil, err
	}
	defer primitive.Zero(wk)

	return primitive.Open(wk, env.Nonce, env.Ciphertext)
}

// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package wrap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/dvpguard/internal/primitive"
)

func TestWrapUnwrapRoundTrip(t *testing.T) {
	require := require.New(t)

	pub, priv, err := primitive.GenerateEncryptionKeyPair()
	require.NoError(err)

	payload, err := primitive.RandomBytes(primitive.KeySize)
	require.NoError(err)

	env, err := Wrap(pub, payload)
	require.NoError(err)
	require.NotEqual([32]byte{}, env.EphemeralPublicKey)

	recovered, err := Unwrap(priv, env)
	require.NoError(err)
	require.Equal(payload, recovered)
}

func TestUnwrapFailsForWrongRecipient(t *testing.T) {
	require := require.New(t)

	pub, _, err := primitive.GenerateEncryptionKeyPair()
	require.NoError(err)
	_, otherPriv, err := primitive.GenerateEncryptionKeyPair()
	require.NoError(err)

	payload, err := primitive.RandomBytes(primitive.KeySize)
	require.NoError(err)

	env, err := Wrap(pub, payload)
	require.NoError(err)

	_, err = Unwrap(otherPriv, env)
	require.ErrorIs(err, primitive.ErrDecryptAuth)
}

func TestUnwrapFailsForTamperedEnvelope(t *testing.T) {
	require := require.New(t)

	pub, priv, err := primitive.GenerateEncryptionKeyPair()
	require.NoError(err)
	payload, err := primitive.RandomBytes(primitive.KeySize)
	require.NoError(err)

	env, err := Wrap(pub, payload)
	require.NoError(err)
	env.Ciphertext[0] ^= 0xFF

	_, err = Unwrap(priv, env)
	require.ErrorIs(err, primitive.ErrDecryptAuth)
}

func TestWrapProducesDistinctEphemeralKeysPerCall(t *testing.T) {
	require := require.New(t)

	pub, _, err := primitive.GenerateEncryptionKeyPair()
	require.NoError(err)
	payload, err := primitive.RandomBytes(primitive.KeySize)
	require.NoError(err)

	env1, err := Wrap(pub, payload)
	require.NoError(err)
	env2, err := Wrap(pub, payload)
	require.NoError(err)

	require.NotEqual(env1.EphemeralPublicKey, env2.EphemeralPublicKey)
	require.NotEqual(env1.Ciphertext, env2.Ciphertext)
}

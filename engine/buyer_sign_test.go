// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/dvpguard/engine"
	"github.com/luxfi/dvpguard/internal/primitive"
)

func TestBuyerSignAppendsValidSignature(t *testing.T) {
	require := require.New(t)
	dir := newMemoryDirectory()
	dir.addCompany("acme")
	dir.addCompany("globex")
	doc := protectSample(t, dir, nil, nil)

	deps := engine.Deps{Companies: dir, Vault: dir, Groups: dir}
	signed, err := engine.BuyerSign(doc, "globex", deps)
	require.NoError(err)
	require.NotNil(signed.Signatures.Buyer)
	require.Equal("globex", signed.Signatures.Buyer.Company)

	keys, err := dir.Lookup("globex")
	require.NoError(err)
	require.True(primitive.Verify(keys.SigningPublicKey, signed.TransactionHash, signed.Signatures.Buyer.Signature))
}

func TestBuyerSignDoesNotMutateOriginalDocument(t *testing.T) {
	require := require.New(t)
	dir := newMemoryDirectory()
	dir.addCompany("acme")
	dir.addCompany("globex")
	doc := protectSample(t, dir, nil, nil)

	deps := engine.Deps{Companies: dir, Vault: dir, Groups: dir}
	_, err := engine.BuyerSign(doc, "globex", deps)
	require.NoError(err)
	require.Nil(doc.Signatures.Buyer)
}

func TestBuyerSignIsAPureBuilderAndAllowsReassignment(t *testing.T) {
	require := require.New(t)
	dir := newMemoryDirectory()
	dir.addCompany("acme")
	dir.addCompany("globex")
	doc := protectSample(t, dir, nil, nil)

	deps := engine.Deps{Companies: dir, Vault: dir, Groups: dir}
	first, err := engine.BuyerSign(doc, "globex", deps)
	require.NoError(err)
	second, err := engine.BuyerSign(first, "globex", deps)
	require.NoError(err)
	require.NotNil(second.Signatures.Buyer)
}

// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/dvpguard/engine"
	"github.com/luxfi/dvpguard/errs"
)

func newTestTransaction(t *testing.T) engine.Transaction {
	t.Helper()
	tx, err := engine.ParseTransaction([]byte(sampleTransaction))
	require.NoError(t, err)
	return tx
}

func TestProtectIssuesDocumentForSellerAndBuyer(t *testing.T) {
	require := require.New(t)
	dir := newMemoryDirectory()
	dir.addCompany("acme")
	dir.addCompany("globex")

	deps := engine.Deps{Companies: dir, Vault: dir, Groups: dir}
	result, err := engine.Protect(newTestTransaction(t), "acme", "globex", nil, nil, deps)
	require.NoError(err)
	require.Empty(result.Warnings)

	doc := result.Document
	require.Equal(engine.Version, doc.Version)
	require.EqualValues(1001, doc.TransactionID)
	require.Len(doc.TransactionHash, 32)
	require.Equal("acme", doc.Signatures.Seller.Company)
	require.Nil(doc.Signatures.Buyer)
	require.Contains(doc.WrappedKeys, "acme")
	require.Contains(doc.WrappedKeys, "globex")
}

func TestProtectRejectsSellerMismatch(t *testing.T) {
	require := require.New(t)
	dir := newMemoryDirectory()
	dir.addCompany("acme")
	dir.addCompany("globex")

	deps := engine.Deps{Companies: dir, Vault: dir, Groups: dir}
	_, err := engine.Protect(newTestTransaction(t), "not-acme", "globex", nil, nil, deps)
	require.Error(err)
	require.True(errs.Is(err, errs.FieldMismatch))
}

func TestProtectDegradesUnresolvedRecipientToWarning(t *testing.T) {
	require := require.New(t)
	dir := newMemoryDirectory()
	dir.addCompany("acme")
	dir.addCompany("globex")

	deps := engine.Deps{Companies: dir, Vault: dir, Groups: dir}
	result, err := engine.Protect(newTestTransaction(t), "acme", "globex", []string{"ghost-corp"}, nil, deps)
	require.NoError(err)
	require.Len(result.Warnings, 1)
	require.Equal(engine.WarningUnresolvedRecipient, result.Warnings[0].Code)
	require.NotContains(result.Document.WrappedKeys, "ghost-corp")
}

func TestProtectDegradesUnknownGroupToWarning(t *testing.T) {
	require := require.New(t)
	dir := newMemoryDirectory()
	dir.addCompany("acme")
	dir.addCompany("globex")

	deps := engine.Deps{Companies: dir, Vault: dir, Groups: dir}
	result, err := engine.Protect(newTestTransaction(t), "acme", "globex", nil, []string{"unknown-group"}, deps)
	require.NoError(err)
	require.Len(result.Warnings, 1)
	require.Equal(engine.WarningUnknownGroup, result.Warnings[0].Code)
	require.NotContains(result.Document.GroupWrappedKeys, "unknown-group")
}

func TestProtectBuildsGroupEntryWithDataKeyBridge(t *testing.T) {
	require := require.New(t)
	dir := newMemoryDirectory()
	dir.addCompany("acme")
	dir.addCompany("globex")
	dir.addCompany("partner-a")
	dir.addCompany("partner-b")
	dir.addGroup("settlement-ring", "partner-a", "partner-b")

	deps := engine.Deps{Companies: dir, Vault: dir, Groups: dir}
	result, err := engine.Protect(newTestTransaction(t), "acme", "globex", nil, []string{"settlement-ring"}, deps)
	require.NoError(err)
	require.Empty(result.Warnings)

	entry, ok := result.Document.GroupWrappedKeys["settlement-ring"]
	require.True(ok)
	require.Contains(entry.Members, "partner-a")
	require.Contains(entry.Members, "partner-b")
	require.NotEmpty(entry.DataKeyBridge.Nonce)
	require.NotEmpty(entry.DataKeyBridge.Ciphertext)
}

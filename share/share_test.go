// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package share_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/dvpguard/directory"
	"github.com/luxfi/dvpguard/internal/primitive"
	"github.com/luxfi/dvpguard/share"
)

type memoryVault struct {
	companies map[string]directory.CompanyKeys
	signing   map[string][32]byte
}

func newMemoryVault() *memoryVault {
	return &memoryVault{companies: make(map[string]directory.CompanyKeys), signing: make(map[string][32]byte)}
}

func (v *memoryVault) addCompany(name string) {
	pub, seed, _ := primitive.GenerateSigningKeyPair()
	v.companies[name] = directory.CompanyKeys{SigningPublicKey: pub}
	v.signing[name] = seed
}

func (v *memoryVault) Lookup(name string) (directory.CompanyKeys, error) {
	keys, ok := v.companies[name]
	if !ok {
		return directory.CompanyKeys{}, directory.ErrNotFound
	}
	return keys, nil
}

func (v *memoryVault) Signing(name string) ([32]byte, error) {
	seed, ok := v.signing[name]
	if !ok {
		return [32]byte{}, directory.ErrNotFound
	}
	return seed, nil
}

func (v *memoryVault) Encryption(name string) ([32]byte, error) {
	return [32]byte{}, directory.ErrNotFound
}

func TestIndividualShareVerifies(t *testing.T) {
	require := require.New(t)
	vault := newMemoryVault()
	vault.addCompany("acme")

	rec, err := share.Individual(1001, "acme", "globex", vault)
	require.NoError(err)
	require.Equal("acme", rec.SharedBy)
	require.Equal("globex", rec.SharedWith)
	require.Empty(rec.GroupID)

	require.NoError(share.Verify(rec, vault))
}

func TestGroupShareVerifies(t *testing.T) {
	require := require.New(t)
	vault := newMemoryVault()
	vault.addCompany("acme")

	rec, err := share.Group(1001, "acme", "settlement-ring", vault)
	require.NoError(err)
	require.Equal("settlement-ring", rec.GroupID)
	require.Empty(rec.SharedWith)

	require.NoError(share.Verify(rec, vault))
}

func TestVerifyRejectsTamperedRecord(t *testing.T) {
	require := require.New(t)
	vault := newMemoryVault()
	vault.addCompany("acme")

	rec, err := share.Individual(1001, "acme", "globex", vault)
	require.NoError(err)
	rec.SharedWith = "someone-else"

	require.Error(share.Verify(rec, vault))
}

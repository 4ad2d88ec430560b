// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package engine_test

import (
	"github.com/luxfi/dvpguard/directory"
	"github.com/luxfi/dvpguard/internal/primitive"
)

// memoryDirectory is a minimal in-memory implementation of the three
// directory capability interfaces, used only by this package's tests.
type memoryDirectory struct {
	companies map[string]directory.CompanyKeys
	signing   map[string][32]byte
	enc       map[string][32]byte
	groups    map[string][]string
}

func newMemoryDirectory() *memoryDirectory {
	return &memoryDirectory{
		companies: make(map[string]directory.CompanyKeys),
		signing:   make(map[string][32]byte),
		enc:       make(map[string][32]byte),
		groups:    make(map[string][]string),
	}
}

func (m *memoryDirectory) addCompany(name string) directory.CompanyKeys {
	signingPub, signingSeed, _ := primitive.GenerateSigningKeyPair()
	encPub, encPriv, _ := primitive.GenerateEncryptionKeyPair()
	keys := directory.CompanyKeys{SigningPublicKey: signingPub, EncryptionPublicKey: encPub}
	m.companies[name] = keys
	m.signing[name] = signingSeed
	m.enc[name] = encPriv
	return keys
}

func (m *memoryDirectory) addGroup(groupID string, members ...string) {
	m.groups[groupID] = members
}

func (m *memoryDirectory) Lookup(name string) (directory.CompanyKeys, error) {
	keys, ok := m.companies[name]
	if !ok {
		return directory.CompanyKeys{}, directory.ErrNotFound
	}
	return keys, nil
}

func (m *memoryDirectory) Signing(name string) ([32]byte, error) {
	seed, ok := m.signing[name]
	if !ok {
		return [32]byte{}, directory.ErrNotFound
	}
	return seed, nil
}

func (m *memoryDirectory) Encryption(name string) ([32]byte, error) {
	priv, ok := m.enc[name]
	if !ok {
		return [32]byte{}, directory.ErrNotFound
	}
	return priv, nil
}

func (m *memoryDirectory) Members(groupID string) ([]string, error) {
	members, ok := m.groups[groupID]
	if !ok {
		return nil, directory.ErrNotFound
	}
	return members, nil
}

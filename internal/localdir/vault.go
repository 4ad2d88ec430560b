// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package localdir

import (
	"os"
	"path/filepath"

	"github.com/luxfi/dvpguard/directory"
	"github.com/luxfi/dvpguard/internal/primitive"
)

// FileVault is a directory.PrivateKeyVault backed by a directory
// tree, one subdirectory per company, holding the raw 32-byte
// canonical encoding of each key half:
//
//	<root>/<company>/signing_private.key
//	<root>/<company>/signing_public.key
//	<root>/<company>/encryption_private.key
//	<root>/<company>/encryption_public.key
//
// This mirrors the on-disk layout a key manager in this lineage has
// always used; dvpguard's CLI keygen command writes it and the vault
// reads it back.
type FileVault struct {
	root string
}

// NewFileVault opens a vault rooted at dir. The directory is created
// on first Generate call if it does not already exist.
func NewFileVault(dir string) *FileVault {
	return &FileVault{root: dir}
}

func (v *FileVault) companyDir(name string) string {
	return filepath.Join(v.root, name)
}

// Generate creates a fresh signing and encryption key pair for name
// and writes all four files, returning the public halves for
// registration with a CompanyKeyDirectory.
func (v *FileVault) Generate(name string) (directory.CompanyKeys, error) {
	signingPub, signingPriv, err := primitive.GenerateSigningKeyPair()
	if err != nil {
		return directory.CompanyKeys{}, err
	}
	encPub, encPriv, err := primitive.GenerateEncryptionKeyPair()
	if err != nil {
		return directory.CompanyKeys{}, err
	}

	dir := v.companyDir(name)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return directory.CompanyKeys{}, err
	}

	files := map[string][32]byte{
		"signing_public.key":     signingPub,
		"signing_private.key":    signingPriv,
		"encryption_public.key":  encPub,
		"encryption_private.key": encPriv,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), content[:], 0o600); err != nil {
			return directory.CompanyKeys{}, err
		}
	}
	primitive.Zero(signingPriv[:])
	primitive.Zero(encPriv[:])

	return directory.CompanyKeys{SigningPublicKey: signingPub, EncryptionPublicKey: encPub}, nil
}

// Signing implements directory.PrivateKeyVault.
func (v *FileVault) Signing(name string) ([32]byte, error) {
	return v.readKey(name, "signing_private.key")
}

// Encryption implements directory.PrivateKeyVault.
func (v *FileVault) Encryption(name string) ([32]byte, error) {
	return v.readKey(name, "encryption_private.key")
}

func (v *FileVault) readKey(name, file string) ([32]byte, error) {
	var key [32]byte
	raw, err := os.ReadFile(filepath.Join(v.companyDir(name), file))
	if err != nil {
		if os.IsNotExist(err) {
			return key, directory.ErrNotFound
		}
		return key, err
	}
	defer primitive.Zero(raw)
	if len(raw) != 32 {
		return key, directory.ErrNotFound
	}
	copy(key[:], raw)
	return key, nil
}

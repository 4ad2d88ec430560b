// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package localdir

import (
	"encoding/json"
	"errors"

	"github.com/luxfi/database"

	"github.com/luxfi/dvpguard/directory"
)

const companyKeyPrefix = "company:"

type companyRecord struct {
	SigningPublicKey    []byte `json:"signing_public_key"`
	EncryptionPublicKey []byte `json:"encryption_public_key"`
}

// Companies is a Store-backed directory.CompanyKeyDirectory, and also
// the write side (Register) used by the CLI's keygen command and the
// reference storage service's /register_company endpoint.
type Companies struct {
	store *Store
}

// NewCompanies wraps store as a company key directory.
func NewCompanies(store *Store) *Companies {
	return &Companies{store: store}
}

// Register publishes a company's public key material. It returns an
// error if the company already exists, matching the storage service's
// 409-on-duplicate contract (spec.md §6.2).
func (c *Companies) Register(name string, keys directory.CompanyKeys) error {
	key := []byte(companyKeyPrefix + name)
	if ok, err := c.store.Has(key); err != nil {
		return err
	} else if ok {
		return errors.New("localdir: company already registered")
	}
	rec := companyRecord{
		SigningPublicKey:    keys.SigningPublicKey[:],
		EncryptionPublicKey: keys.EncryptionPublicKey[:],
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return c.store.Put(key, raw)
}

// Lookup implements directory.CompanyKeyDirectory.
func (c *Companies) Lookup(name string) (directory.CompanyKeys, error) {
	raw, err := c.store.Get([]byte(companyKeyPrefix + name))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return directory.CompanyKeys{}, directory.ErrNotFound
		}
		return directory.CompanyKeys{}, err
	}
	var rec companyRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return directory.CompanyKeys{}, err
	}
	var keys directory.CompanyKeys
	copy(keys.SigningPublicKey[:], rec.SigningPublicKey)
	copy(keys.EncryptionPublicKey[:], rec.EncryptionPublicKey)
	return keys, nil
}

// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package share issues and verifies signed share records: the
// auditable proof that a seller disclosed a transaction to an
// individual or a group.
package share

import (
	"github.com/google/uuid"

	"github.com/luxfi/dvpguard/directory"
	"github.com/luxfi/dvpguard/errs"
	"github.com/luxfi/dvpguard/internal/canon"
	"github.com/luxfi/dvpguard/internal/primitive"
)

// Record is a signed statement that shared_by disclosed
// transaction_id to shared_with (an individual share) or to the
// members of group_id (a group share). Exactly one of SharedWith and
// GroupID is set. Timestamp is left zero by this package; the storage
// boundary stamps it on receipt, per spec.
type Record struct {
	ID            string `json:"id"`
	TransactionID int64  `json:"transaction_id"`
	SharedBy      string `json:"shared_by"`
	SharedWith    string `json:"shared_with,omitempty"`
	GroupID       string `json:"group_id,omitempty"`
	Timestamp     int64  `json:"timestamp"`
	Signature     []byte `json:"signature"`
}

func (r Record) canonicalFields() map[string]interface{} {
	fields := map[string]interface{}{
		"transaction_id": r.TransactionID,
		"shared_by":      r.SharedBy,
	}
	if r.GroupID != "" {
		fields["group_id"] = r.GroupID
	} else {
		fields["shared_with"] = r.SharedWith
	}
	return fields
}

func (r Record) hash() ([32]byte, error) {
	canonical, err := canon.Marshal(r.canonicalFields())
	if err != nil {
		return [32]byte{}, errs.Wrap(errs.InvalidDocument, "share record canonicalization failed", err)
	}
	return primitive.Hash(canonical), nil
}

// Individual issues a signed disclosure record naming an individual
// recipient.
func Individual(transactionID int64, sharedBy, sharedWith string, vault directory.PrivateKeyVault) (*Record, error) {
	r := &Record{
		ID:            uuid.NewString(),
		TransactionID: transactionID,
		SharedBy:      sharedBy,
		SharedWith:    sharedWith,
	}
	return sign(r, vault)
}

// Group issues a signed disclosure record naming a partner group.
func Group(transactionID int64, sharedBy, groupID string, vault directory.PrivateKeyVault) (*Record, error) {
	r := &Record{
		ID:            uuid.NewString(),
		TransactionID: transactionID,
		SharedBy:      sharedBy,
		GroupID:       groupID,
	}
	return sign(r, vault)
}

func sign(r *Record, vault directory.PrivateKeyVault) (*Record, error) {
	h, err := r.hash()
	if err != nil {
		return nil, err
	}
	seed, err := vault.Signing(r.SharedBy)
	if err != nil {
		return nil, errs.Wrap(errs.UnknownCompany, r.SharedBy, err)
	}
	r.Signature = primitive.Sign(seed, h[:])
	return r, nil
}

// Verify recomputes the record's hash from its canonical fields and
// checks Signature against SharedBy's signing public key. Any auditor
// holding the document and the company directory can call this.
func Verify(r *Record, companies directory.CompanyKeyDirectory) error {
	h, err := r.hash()
	if err != nil {
		return err
	}
	keys, err := companies.Lookup(r.SharedBy)
	if err != nil {
		return errs.Wrap(errs.UnknownCompany, r.SharedBy, err)
	}
	if !primitive.Verify(keys.SigningPublicKey, h[:], r.Signature) {
		return errs.New(errs.DecryptAuth, "share record signature verification failed")
	}
	return nil
}

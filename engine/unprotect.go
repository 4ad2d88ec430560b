// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package engine

import (
	"fmt"
	"sort"

	"github.com/luxfi/dvpguard/errs"
	"github.com/luxfi/dvpguard/internal/primitive"
	"github.com/luxfi/dvpguard/internal/wrap"
)

// AccessIndividual and AccessGroupPrefix identify the access path
// Unprotect used to recover the transaction key.
const (
	AccessIndividual  = "individual"
	AccessGroupPrefix = "group:"
)

// UnprotectResult carries the recovered plaintext and the access path
// that produced it.
type UnprotectResult struct {
	Transaction  Transaction
	AccessMethod string
}

// Unprotect selects an access path for asCompany, unwraps the
// transaction key, decrypts encrypted_transaction, and parses the
// result. The individual path is tried first; group paths are tried
// in sorted group-id order. A matched envelope that fails AEAD
// authentication is surfaced as DecryptAuth and never falls through
// to another path, since that indicates tampering rather than absence
// of access.
func Unprotect(doc *Document, asCompany string, deps Deps) (*UnprotectResult, error) {
	logger := deps.logger()

	dataKey, accessMethod, err := resolveDataKey(doc, asCompany, deps.Vault)
	if err != nil {
		return nil, err
	}
	defer primitive.Zero(dataKey)

	plaintext, err := primitive.Open(dataKey, doc.EncryptedTransaction.Nonce, doc.EncryptedTransaction.Ciphertext)
	if err != nil {
		return nil, errs.Wrap(errs.DecryptAuth, "encrypted_transaction authentication failed", err)
	}
	defer primitive.Zero(plaintext)

	tx, err := ParseTransaction(plaintext)
	if err != nil {
		return nil, err
	}

	logger.Debug(fmt.Sprintf("unprotect: tx_id=%d as=%s via=%s", doc.TransactionID, asCompany, accessMethod))
	return &UnprotectResult{Transaction: tx, AccessMethod: accessMethod}, nil
}

func resolveDataKey(doc *Document, asCompany string, vault interface {
	Encryption(name string) ([32]byte, error)
}) ([]byte, string, error) {
	if entry, ok := doc.WrappedKeys[asCompany]; ok {
		priv, err := vault.Encryption(asCompany)
		if err != nil {
			return nil, "", errs.Wrap(errs.NoAccess, asCompany, err)
		}
		env := envelopeFromWire(entry)
		dataKey, err := wrap.Unwrap(priv, env)
		primitive.Zero(priv[:])
		if err != nil {
			return nil, "", errs.Wrap(errs.DecryptAuth, "individual envelope authentication failed", err)
		}
		return dataKey, AccessIndividual, nil
	}

	groupIDs := make([]string, 0, len(doc.GroupWrappedKeys))
	for id := range doc.GroupWrappedKeys {
		groupIDs = append(groupIDs, id)
	}
	sort.Strings(groupIDs)

	for _, groupID := range groupIDs {
		group := doc.GroupWrappedKeys[groupID]
		memberEntry, ok := group.Members[asCompany]
		if !ok {
			continue
		}
		priv, err := vault.Encryption(asCompany)
		if err != nil {
			return nil, "", errs.Wrap(errs.NoAccess, asCompany, err)
		}
		groupKey, err := wrap.Unwrap(priv, envelopeFromWire(memberEntry))
		primitive.Zero(priv[:])
		if err != nil {
			return nil, "", errs.Wrap(errs.DecryptAuth, "group envelope authentication failed", err)
		}
		dataKey, err := primitive.Open(groupKey, group.DataKeyBridge.Nonce, group.DataKeyBridge.Ciphertext)
		primitive.Zero(groupKey)
		if err != nil {
			return nil, "", errs.Wrap(errs.DecryptAuth, "data key bridge authentication failed", err)
		}
		return dataKey, AccessGroupPrefix + groupID, nil
	}

	return nil, "", errs.New(errs.NoAccess, asCompany)
}

func envelopeFromWire(w WrappedKey) *wrap.Envelope {
	var ephemeral [32]byte
	copy(ephemeral[:], w.EphemeralPublicKey)
	return &wrap.Envelope{
		EphemeralPublicKey: ephemeral,
		Nonce:              w.EncryptedKey.Nonce,
		Ciphertext:          w.EncryptedKey.Ciphertext,
	}
}

// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package engine

import (
	"github.com/luxfi/dvpguard/errs"
	"github.com/luxfi/dvpguard/internal/primitive"
)

// BuyerSign returns a copy of doc with signatures.buyer populated by
// signing doc.TransactionHash with buyer's signing key. It is a pure
// builder: it does not check whether a buyer signature already
// exists. Rejecting a second assignment is the storage boundary's
// responsibility (internal/storageservice), per the single-assignment
// contract in the wire interface.
func BuyerSign(doc *Document, buyer string, deps Deps) (*Document, error) {
	if len(doc.TransactionHash) != 32 {
		return nil, errs.New(errs.InvalidDocument, "transaction_hash must be 32 bytes")
	}
	seed, err := deps.Vault.Signing(buyer)
	if err != nil {
		return nil, errs.Wrap(errs.UnknownCompany, buyer, err)
	}
	sig := primitive.Sign(seed, doc.TransactionHash)

	out := *doc
	out.Signatures.Buyer = &SignatureEntry{Company: buyer, Signature: sig}
	return &out, nil
}

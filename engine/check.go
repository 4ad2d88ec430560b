// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package engine

import (
	"fmt"

	"github.com/luxfi/dvpguard/directory"
	"github.com/luxfi/dvpguard/internal/primitive"
)

// Report is the outcome of Check. It never causes a panic or a
// returned error; every finding is recorded in Details, Warnings, or
// Errors, and Valid summarizes whether any fatal finding occurred.
type Report struct {
	Valid           bool
	Details         map[string]string
	Warnings        []string
	Errors          []string
	RecipientCount  int
	GroupCount      int
}

const (
	statusValid        = "valid"
	statusInvalid      = "invalid"
	statusMissing      = "missing"
	statusCannotVerify = "cannot_verify"
)

// Check verifies signatures, structure, version, and the
// transaction_hash shape of doc. It requires no key access and is
// callable by any party holding the document.
func Check(doc *Document, companies directory.CompanyKeyDirectory) *Report {
	r := &Report{
		Valid:   true,
		Details: make(map[string]string),
	}

	if doc.Version != Version {
		r.Warnings = append(r.Warnings, fmt.Sprintf("unexpected version %q", doc.Version))
	}

	if doc.EncryptedTransaction.Nonce == nil || doc.EncryptedTransaction.Ciphertext == nil {
		r.Errors = append(r.Errors, "encrypted_transaction_shape: missing nonce or ciphertext")
		r.Valid = false
	}

	if len(doc.TransactionHash) != 32 {
		r.Errors = append(r.Errors, "transaction_hash: expected 32 bytes")
		r.Valid = false
	}

	checkSellerSignature(doc, companies, r)
	checkBuyerSignature(doc, companies, r)

	r.RecipientCount = len(doc.WrappedKeys)
	r.GroupCount = len(doc.GroupWrappedKeys)

	return r
}

func checkSellerSignature(doc *Document, companies directory.CompanyKeyDirectory, r *Report) {
	if doc.Signatures.Seller.Company == "" || doc.Signatures.Seller.Signature == nil {
		r.Errors = append(r.Errors, "missing_seller_signature")
		r.Details["seller_signature"] = statusMissing
		r.Valid = false
		return
	}
	keys, err := companies.Lookup(doc.Signatures.Seller.Company)
	if err != nil {
		r.Details["seller_signature"] = statusCannotVerify
		r.Warnings = append(r.Warnings, fmt.Sprintf("seller company %q not resolvable", doc.Signatures.Seller.Company))
		return
	}
	if len(doc.TransactionHash) != 32 {
		r.Details["seller_signature"] = statusInvalid
		r.Errors = append(r.Errors, "seller_signature: cannot verify against malformed transaction_hash")
		r.Valid = false
		return
	}
	if primitive.Verify(keys.SigningPublicKey, doc.TransactionHash, doc.Signatures.Seller.Signature) {
		r.Details["seller_signature"] = statusValid
	} else {
		r.Details["seller_signature"] = statusInvalid
		r.Errors = append(r.Errors, "seller_signature: verification failed")
		r.Valid = false
	}
}

func checkBuyerSignature(doc *Document, companies directory.CompanyKeyDirectory, r *Report) {
	if doc.Signatures.Buyer == nil {
		r.Details["buyer_signature"] = statusMissing
		r.Warnings = append(r.Warnings, "buyer_signature: not yet countersigned")
		return
	}
	keys, err := companies.Lookup(doc.Signatures.Buyer.Company)
	if err != nil {
		r.Details["buyer_signature"] = statusCannotVerify
		r.Warnings = append(r.Warnings, fmt.Sprintf("buyer company %q not resolvable", doc.Signatures.Buyer.Company))
		return
	}
	if len(doc.TransactionHash) != 32 {
		r.Details["buyer_signature"] = statusInvalid
		r.Errors = append(r.Errors, "buyer_signature: cannot verify against malformed transaction_hash")
		r.Valid = false
		return
	}
	if primitive.Verify(keys.SigningPublicKey, doc.TransactionHash, doc.Signatures.Buyer.Signature) {
		r.Details["buyer_signature"] = statusValid
	} else {
		r.Details["buyer_signature"] = statusInvalid
		r.Errors = append(r.Errors, "buyer_signature: verification failed")
		r.Valid = false
	}
}

// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package storageservice

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/luxfi/dvpguard/engine"
	"github.com/luxfi/dvpguard/internal/primitive"
)

// handleCreateTransaction stores a document a client has already
// protected locally (via engine.Protect or the dvpguard CLI's protect
// verb). The storage service never calls Protect itself: it has no
// access to plaintext, signing keys, or recipient private keys, and
// the spec requires it stay that way.
func (s *Service) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var doc engine.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, "malformed document body")
		return
	}
	if doc.TransactionID == 0 {
		writeError(w, http.StatusBadRequest, "transaction_id is required")
		return
	}

	report := engine.Check(&doc, s.companies)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[doc.TransactionID]; exists {
		writeError(w, http.StatusConflict, "transaction already stored")
		return
	}
	s.records[doc.TransactionID] = &record{doc: &doc, buyerSigned: doc.Signatures.Buyer != nil}

	if s.metrics != nil {
		outcome := "valid"
		if !report.Valid {
			outcome = "invalid"
		}
		s.metrics.ProtectTotal.WithLabelValues(outcome).Inc()
	}
	s.log.Info("storageservice: stored transaction " + strconv.FormatInt(doc.TransactionID, 10))
	writeJSON(w, http.StatusCreated, doc)
}

func (s *Service) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := parseTxID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.RLock()
	rec, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	}
	writeJSON(w, http.StatusOK, rec.doc)
}

// handleBuyerSign accepts a document the buyer has already
// countersigned locally (via engine.BuyerSign), verifies the new
// signature against the stored transaction_hash, and enforces
// single-assignment: a transaction that already carries a buyer
// signature rejects any further attempt with 409, per spec.md §9 (the
// engine's BuyerSign is a pure builder; this boundary is where the
// single-assignment contract is actually enforced).
func (s *Service) handleBuyerSign(w http.ResponseWriter, r *http.Request) {
	id, err := parseTxID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var signed engine.Document
	if err := json.NewDecoder(r.Body).Decode(&signed); err != nil {
		writeError(w, http.StatusBadRequest, "malformed document body")
		return
	}
	if signed.Signatures.Buyer == nil {
		writeError(w, http.StatusBadRequest, "signatures.buyer is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	}
	if rec.buyerSigned {
		writeError(w, http.StatusConflict, "buyer signature already assigned")
		return
	}

	keys, err := s.companies.Lookup(signed.Signatures.Buyer.Company)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "buyer company not registered")
		return
	}
	if !primitive.Verify(keys.SigningPublicKey, rec.doc.TransactionHash, signed.Signatures.Buyer.Signature) {
		writeError(w, http.StatusUnprocessableEntity, "buyer signature verification failed")
		return
	}

	rec.doc.Signatures.Buyer = signed.Signatures.Buyer
	rec.buyerSigned = true
	if s.metrics != nil {
		s.metrics.BuyerSignTotal.Inc()
	}
	writeJSON(w, http.StatusOK, rec.doc)
}

func parseTxID(r *http.Request) (int64, error) {
	return strconv.ParseInt(pathVar(r, "id"), 10, 64)
}

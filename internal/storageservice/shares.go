// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package storageservice

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/luxfi/dvpguard/share"
)

// Share records arrive pre-signed, the same way buyer-sign documents
// do: the seller issues them locally via share.Individual/share.Group
// and posts the result here for append-only storage. The service
// stamps Timestamp on receipt, matching share.Record's documented
// contract, and verifies the signature before accepting it.
func (s *Service) handleShare(w http.ResponseWriter, r *http.Request) {
	s.storeShare(w, r, false)
}

func (s *Service) handleShareGroup(w http.ResponseWriter, r *http.Request) {
	s.storeShare(w, r, true)
}

func (s *Service) storeShare(w http.ResponseWriter, r *http.Request, group bool) {
	id, err := parseTxID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var rec share.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "malformed share record")
		return
	}
	if rec.TransactionID != id {
		writeError(w, http.StatusBadRequest, "transaction_id mismatch between path and body")
		return
	}
	if group && rec.GroupID == "" {
		writeError(w, http.StatusBadRequest, "group_id is required for a group share")
		return
	}
	if !group && rec.SharedWith == "" {
		writeError(w, http.StatusBadRequest, "shared_with is required for an individual share")
		return
	}
	if err := share.Verify(&rec, s.companies); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "share record signature verification failed")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	txRec, ok := s.records[id]
	if !ok {
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	}

	rec.Timestamp = time.Now().Unix()
	if group {
		txRec.groupShares = append(txRec.groupShares, rec)
	} else {
		txRec.shares = append(txRec.shares, rec)
	}
	if s.metrics != nil {
		kind := "individual"
		if group {
			kind = "group"
		}
		s.metrics.ShareTotal.WithLabelValues(kind).Inc()
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Service) handleListShares(w http.ResponseWriter, r *http.Request) {
	id, err := parseTxID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	}
	writeJSON(w, http.StatusOK, rec.shares)
}

func (s *Service) handleListGroupShares(w http.ResponseWriter, r *http.Request) {
	id, err := parseTxID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	}
	writeJSON(w, http.StatusOK, rec.groupShares)
}

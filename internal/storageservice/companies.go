// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package storageservice

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/luxfi/dvpguard/directory"
)

// companyRegistry is an in-memory directory.CompanyKeyDirectory
// serving /register_company and /companies/{name}. The Service holds
// this concrete type; it does not take internal/localdir.Companies or
// any other directory.CompanyKeyDirectory in its place.
type companyRegistry struct {
	mu    sync.RWMutex
	byKey map[string]directory.CompanyKeys
}

func newCompanyRegistry() *companyRegistry {
	return &companyRegistry{byKey: make(map[string]directory.CompanyKeys)}
}

func (c *companyRegistry) Lookup(name string) (directory.CompanyKeys, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys, ok := c.byKey[name]
	if !ok {
		return directory.CompanyKeys{}, directory.ErrNotFound
	}
	return keys, nil
}

func (c *companyRegistry) register(name string, keys directory.CompanyKeys) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.byKey[name]; exists {
		return false
	}
	c.byKey[name] = keys
	return true
}

type registerCompanyRequest struct {
	Name                string `json:"name"`
	SigningPublicKey    string `json:"signing_public_key"`
	EncryptionPublicKey string `json:"encryption_public_key"`
}

func (s *Service) handleRegisterCompany(w http.ResponseWriter, r *http.Request) {
	var req registerCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	signing, err := decodeKey(req.SigningPublicKey)
	if err != nil {
		writeError(w, http.StatusBadRequest, "signing_public_key: "+err.Error())
		return
	}
	encryption, err := decodeKey(req.EncryptionPublicKey)
	if err != nil {
		writeError(w, http.StatusBadRequest, "encryption_public_key: "+err.Error())
		return
	}

	keys := directory.CompanyKeys{SigningPublicKey: signing, EncryptionPublicKey: encryption}
	if !s.companies.register(req.Name, keys) {
		writeError(w, http.StatusConflict, "company already registered")
		return
	}
	s.log.Info("storageservice: registered company " + req.Name)
	writeJSON(w, http.StatusCreated, map[string]string{"name": req.Name})
}

func (s *Service) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	name := pathVar(r, "name")
	keys, err := s.companies.Lookup(name)
	if err != nil {
		writeError(w, http.StatusNotFound, "company not found")
		return
	}
	writeJSON(w, http.StatusOK, registerCompanyRequest{
		Name:                name,
		SigningPublicKey:    encodeKey(keys.SigningPublicKey),
		EncryptionPublicKey: encodeKey(keys.EncryptionPublicKey),
	})
}

func decodeKey(s string) ([32]byte, error) {
	var out [32]byte
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return out, err
	}
	if len(raw) != 32 {
		return out, errBadKeyLength
	}
	copy(out[:], raw)
	return out, nil
}

func encodeKey(k [32]byte) string {
	return base64.StdEncoding.EncodeToString(k[:])
}

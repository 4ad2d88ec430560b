// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package groupservice is the reference implementation of the
// out-of-scope group-membership transport described in spec.md §6.3.
// It is the authoritative source a directory.GroupDirectory consults;
// the engine never imports it directly.
package groupservice

import (
	"encoding/json"
	"net/http"
	"sort"
	"sync"

	"github.com/gorilla/mux"

	"github.com/luxfi/dvpguard/directory"
	"github.com/luxfi/dvpguard/pkg/log"
)

// Service holds group membership snapshots in memory, keyed by group
// identifier. It implements directory.GroupDirectory directly so it
// can be wired straight into engine.Deps.Groups without adaptation.
type Service struct {
	mu      sync.RWMutex
	members map[string]map[string]bool
	log     log.Logger
}

// New creates an empty group service.
func New(logger log.Logger) *Service {
	if logger == nil {
		logger = log.NoOp()
	}
	return &Service{members: make(map[string]map[string]bool), log: logger}
}

// Members implements directory.GroupDirectory: an unknown group
// reports directory.ErrNotFound rather than an empty slice, so Protect
// distinguishes "no members yet" from "no such group."
func (s *Service) Members(groupID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set, ok := s.members[groupID]
	if !ok {
		return nil, directory.ErrNotFound
	}
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

func (s *Service) create(groupID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.members[groupID]; exists {
		return false
	}
	s.members[groupID] = make(map[string]bool)
	return true
}

func (s *Service) addMember(groupID, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.members[groupID]
	if !ok {
		return false
	}
	set[name] = true
	return true
}

func (s *Service) removeMember(groupID, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.members[groupID]
	if !ok {
		return false
	}
	delete(set, name)
	return true
}

// Router builds the mux.Router implementing spec.md §6.3.
func (s *Service) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/groups/create", s.handleCreate).Methods("POST")
	r.HandleFunc("/groups/{id}/add_member", s.handleAddMember).Methods("POST")
	r.HandleFunc("/groups/{id}/remove_member", s.handleRemoveMember).Methods("POST")
	r.HandleFunc("/groups/{id}/members", s.handleMembers).Methods("GET")
	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type createGroupRequest struct {
	ID string `json:"id"`
}

func (s *Service) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	if !s.create(req.ID) {
		writeError(w, http.StatusConflict, "group already exists")
		return
	}
	s.log.Info("groupservice: created group " + req.ID)
	writeJSON(w, http.StatusCreated, req)
}

type memberRequest struct {
	Name string `json:"name"`
}

func (s *Service) handleAddMember(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["id"]
	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if !s.addMember(groupID, req.Name) {
		writeError(w, http.StatusNotFound, "group not found")
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (s *Service) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["id"]
	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if !s.removeMember(groupID, req.Name) {
		writeError(w, http.StatusNotFound, "group not found")
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (s *Service) handleMembers(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["id"]
	members, err := s.Members(groupID)
	if err != nil {
		writeError(w, http.StatusNotFound, "group not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"id": groupID, "members": members})
}

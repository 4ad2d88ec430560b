// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package storageservice is the reference implementation of the
// out-of-scope HTTP transport described in spec.md §6.2: it stores
// and serves protected documents and their share records. It is an
// external collaborator, never imported by engine — the core never
// observes plaintext and has no dependency on this package.
package storageservice

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/luxfi/dvpguard/directory"
	"github.com/luxfi/dvpguard/engine"
	"github.com/luxfi/dvpguard/pkg/log"
	"github.com/luxfi/dvpguard/pkg/metric"
	"github.com/luxfi/dvpguard/share"
)

// record is everything the service holds about one transaction: the
// protected document, whether it has been buyer-countersigned yet
// (enforced here, not in engine, per spec.md §9), and its share logs.
type record struct {
	doc         *engine.Document
	buyerSigned bool
	shares      []share.Record
	groupShares []share.Record
}

// Service is the storage service: company registry plus protected
// document and share-record storage. Companies is also a
// directory.CompanyKeyDirectory, handed to engine.Check by callers
// that want to verify documents server-side.
type Service struct {
	mu         sync.RWMutex
	records    map[int64]*record
	companies  *companyRegistry
	log        log.Logger
	metrics    *metric.Metrics
}

// New creates a Service with an empty in-memory store.
func New(logger log.Logger, metrics *metric.Metrics) *Service {
	if logger == nil {
		logger = log.NoOp()
	}
	return &Service{
		records:   make(map[int64]*record),
		companies: newCompanyRegistry(),
		log:       logger,
		metrics:   metrics,
	}
}

// Companies exposes the service's company registry as a
// directory.CompanyKeyDirectory for server-side verification.
func (s *Service) Companies() directory.CompanyKeyDirectory { return s.companies }

// Router builds the mux.Router implementing spec.md §6.2.
func (s *Service) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/register_company", s.handleRegisterCompany).Methods("POST")
	r.HandleFunc("/companies/{name}", s.handleGetCompany).Methods("GET")
	r.HandleFunc("/transactions", s.handleCreateTransaction).Methods("POST")
	r.HandleFunc("/transactions/{id}", s.handleGetTransaction).Methods("GET")
	r.HandleFunc("/transactions/{id}/buyer_sign", s.handleBuyerSign).Methods("POST")
	r.HandleFunc("/transactions/{id}/share", s.handleShare).Methods("POST")
	r.HandleFunc("/transactions/{id}/share_group", s.handleShareGroup).Methods("POST")
	r.HandleFunc("/transactions/{id}/shares", s.handleListShares).Methods("GET")
	r.HandleFunc("/transactions/{id}/group_shares", s.handleListGroupShares).Methods("GET")
	if s.metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.metrics.GetGatherer(), promhttp.HandlerOpts{})).Methods("GET")
	}
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

func pathVar(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}

// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"path/filepath"

	"github.com/luxfi/dvpguard/engine"
	"github.com/luxfi/dvpguard/internal/localdir"
	"github.com/luxfi/dvpguard/pkg/log"
)

// state bundles the on-disk directories the CLI reads and writes
// across invocations: a file-backed key vault, and badger-backed
// company and group directories.
type state struct {
	vault     *localdir.FileVault
	companies *localdir.Companies
	groups    *localdir.Groups

	companyStore *localdir.Store
	groupStore   *localdir.Store
}

func openState(stateDir string) (*state, error) {
	companyStore, err := localdir.NewStore("badger", filepath.Join(stateDir, "companies"))
	if err != nil {
		return nil, err
	}
	groupStore, err := localdir.NewStore("badger", filepath.Join(stateDir, "groups"))
	if err != nil {
		return nil, err
	}

	return &state{
		vault:        localdir.NewFileVault(filepath.Join(stateDir, "keys")),
		companies:    localdir.NewCompanies(companyStore),
		groups:       localdir.NewGroups(groupStore),
		companyStore: companyStore,
		groupStore:   groupStore,
	}, nil
}

func (s *state) close() {
	s.companyStore.Close()
	s.groupStore.Close()
}

func (s *state) deps() engine.Deps {
	return engine.Deps{
		Companies: s.companies,
		Vault:     s.vault,
		Groups:    s.groups,
		Log:       log.NoOp(),
	}
}

// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package localdir

import (
	"encoding/json"
	"errors"
	"sort"

	"github.com/luxfi/database"

	"github.com/luxfi/dvpguard/directory"
)

const groupKeyPrefix = "group:"

// Groups is a Store-backed directory.GroupDirectory, and the write
// side used by the CLI and the reference group service (§6.3):
// Create, AddMember, RemoveMember. Membership changes take effect
// immediately for future Members() calls; they never retroactively
// touch a document already issued, since Protect only ever consults
// Members() once, at issuance.
type Groups struct {
	store *Store
}

// NewGroups wraps store as a group directory.
func NewGroups(store *Store) *Groups {
	return &Groups{store: store}
}

// Create registers an empty group. It is an error to create a group
// that already exists.
func (g *Groups) Create(groupID string) error {
	key := []byte(groupKeyPrefix + groupID)
	if ok, err := g.store.Has(key); err != nil {
		return err
	} else if ok {
		return errors.New("localdir: group already exists")
	}
	return g.putMembers(groupID, nil)
}

// AddMember adds a company to a group's membership snapshot.
func (g *Groups) AddMember(groupID, company string) error {
	members, err := g.Members(groupID)
	if err != nil {
		return err
	}
	for _, m := range members {
		if m == company {
			return nil
		}
	}
	return g.putMembers(groupID, append(members, company))
}

// RemoveMember removes a company from a group's membership snapshot.
// It does not affect any document already issued, since the
// envelopes in such a document were built from the membership
// snapshot at the moment Protect called Members().
func (g *Groups) RemoveMember(groupID, company string) error {
	members, err := g.Members(groupID)
	if err != nil {
		return err
	}
	out := members[:0]
	for _, m := range members {
		if m != company {
			out = append(out, m)
		}
	}
	return g.putMembers(groupID, out)
}

// Members implements directory.GroupDirectory: the authoritative
// membership snapshot at the instant of the call.
func (g *Groups) Members(groupID string) ([]string, error) {
	raw, err := g.store.Get([]byte(groupKeyPrefix + groupID))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, directory.ErrNotFound
		}
		return nil, err
	}
	var members []string
	if err := json.Unmarshal(raw, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (g *Groups) putMembers(groupID string, members []string) error {
	sorted := append([]string(nil), members...)
	sort.Strings(sorted)
	raw, err := json.Marshal(sorted)
	if err != nil {
		return err
	}
	return g.store.Put([]byte(groupKeyPrefix+groupID), raw)
}

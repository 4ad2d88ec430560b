// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package engine

import (
	"fmt"
	"sort"

	"github.com/luxfi/dvpguard/directory"
	"github.com/luxfi/dvpguard/errs"
	"github.com/luxfi/dvpguard/internal/primitive"
	"github.com/luxfi/dvpguard/internal/wrap"
	"github.com/luxfi/dvpguard/pkg/log"
)

// Deps bundles the three directory capabilities Protect, Unprotect,
// and BuyerSign consume. The engine never references a concrete
// directory implementation.
type Deps struct {
	Companies directory.CompanyKeyDirectory
	Vault     directory.PrivateKeyVault
	Groups    directory.GroupDirectory
	Log       log.Logger
}

func (d Deps) logger() log.Logger {
	if d.Log == nil {
		return log.NoOp()
	}
	return d.Log
}

// Protect assembles a protected document from tx. recipients and
// groups are optional; an unresolvable entry among them degrades to a
// warning rather than aborting the call. seller and buyer must match
// tx's own seller/buyer fields and must both resolve in Companies; the
// seller's signing key must resolve in Vault. Any of those failures is
// fatal.
func Protect(tx Transaction, seller, buyer string, recipients, groups []string, deps Deps) (*ProtectResult, error) {
	logger := deps.logger()
	logger.Debug(fmt.Sprintf("protect: starting tx for seller=%s buyer=%s", seller, buyer))

	if err := tx.Validate(); err != nil {
		return nil, err
	}
	txSeller, err := tx.Seller()
	if err != nil {
		return nil, err
	}
	txBuyer, err := tx.Buyer()
	if err != nil {
		return nil, err
	}
	if txSeller != seller {
		return nil, errs.New(errs.FieldMismatch, "plaintext.seller does not match seller")
	}
	if txBuyer != buyer {
		return nil, errs.New(errs.FieldMismatch, "plaintext.buyer does not match buyer")
	}
	txID, err := tx.ID()
	if err != nil {
		return nil, err
	}

	sellerSeed, err := deps.Vault.Signing(seller)
	if err != nil {
		return nil, errs.Wrap(errs.UnknownCompany, seller, err)
	}
	sellerKeys, err := deps.Companies.Lookup(seller)
	if err != nil {
		return nil, errs.Wrap(errs.UnknownCompany, seller, err)
	}
	buyerKeys, err := deps.Companies.Lookup(buyer)
	if err != nil {
		return nil, errs.Wrap(errs.UnknownCompany, buyer, err)
	}

	canonical, err := tx.Canonical()
	if err != nil {
		return nil, errs.Wrap(errs.InvalidDocument, "canonicalization failed", err)
	}
	hash := primitive.Hash(canonical)
	primitive.Zero(canonical)

	sellerSig := primitive.Sign(sellerSeed, hash[:])

	dataKey, err := primitive.RandomBytes(primitive.KeySize)
	if err != nil {
		return nil, errs.Wrap(errs.PrimitiveFailure, "rng unavailable", err)
	}
	defer primitive.Zero(dataKey)

	// Re-derive the canonical bytes for encryption since the first
	// copy was already scrubbed above.
	canonicalForSeal, err := tx.Canonical()
	if err != nil {
		return nil, errs.Wrap(errs.InvalidDocument, "canonicalization failed", err)
	}
	txNonce, txCiphertext, err := primitive.Seal(dataKey, canonicalForSeal)
	primitive.Zero(canonicalForSeal)
	if err != nil {
		return nil, errs.Wrap(errs.PrimitiveFailure, "transaction encryption failed", err)
	}

	wrappedKeys := make(map[string]WrappedKey)
	var warnings []Warning

	if err := addWrappedKey(wrappedKeys, seller, sellerKeys.EncryptionPublicKey, dataKey); err != nil {
		return nil, errs.Wrap(errs.PrimitiveFailure, "wrapping for seller failed", err)
	}
	if err := addWrappedKey(wrappedKeys, buyer, buyerKeys.EncryptionPublicKey, dataKey); err != nil {
		return nil, errs.Wrap(errs.PrimitiveFailure, "wrapping for buyer failed", err)
	}

	for _, recipient := range dedupExcluding(recipients, seller, buyer) {
		keys, err := deps.Companies.Lookup(recipient)
		if err != nil {
			logger.Warn(fmt.Sprintf("protect: unresolved recipient %s", recipient))
			warnings = append(warnings, Warning{Code: WarningUnresolvedRecipient, Detail: recipient})
			continue
		}
		if err := addWrappedKey(wrappedKeys, recipient, keys.EncryptionPublicKey, dataKey); err != nil {
			return nil, errs.Wrap(errs.PrimitiveFailure, "wrapping for recipient failed", err)
		}
	}

	groupWrappedKeys := make(map[string]GroupEntry)
	for _, groupID := range dedupStrings(groups) {
		members, err := deps.Groups.Members(groupID)
		if err != nil {
			logger.Warn(fmt.Sprintf("protect: unknown group %s", groupID))
			warnings = append(warnings, Warning{Code: WarningUnknownGroup, Detail: groupID})
			continue
		}

		groupKey, err := deriveGroupKey(dataKey, groupID, txID)
		if err != nil {
			return nil, errs.Wrap(errs.PrimitiveFailure, "group key derivation failed", err)
		}

		memberEnvelopes := make(map[string]WrappedKey)
		for _, member := range members {
			keys, err := deps.Companies.Lookup(member)
			if err != nil {
				logger.Warn(fmt.Sprintf("protect: unresolved group member %s in %s", member, groupID))
				warnings = append(warnings, Warning{Code: WarningUnresolvedMember, Detail: groupID + ":" + member})
				continue
			}
			if err := addWrappedKey(memberEnvelopes, member, keys.EncryptionPublicKey, groupKey); err != nil {
				primitive.Zero(groupKey)
				return nil, errs.Wrap(errs.PrimitiveFailure, "wrapping for group member failed", err)
			}
		}

		bridgeNonce, bridgeCiphertext, err := primitive.Seal(groupKey, dataKey)
		primitive.Zero(groupKey)
		if err != nil {
			return nil, errs.Wrap(errs.PrimitiveFailure, "data key bridge encryption failed", err)
		}

		groupWrappedKeys[groupID] = GroupEntry{
			Members: memberEnvelopes,
			DataKeyBridge: AEADBox{
				Nonce:      bridgeNonce,
				Ciphertext: bridgeCiphertext,
			},
		}
	}

	doc := &Document{
		Version:       Version,
		TransactionID: txID,
		EncryptedTransaction: AEADBox{
			Nonce:      txNonce,
			Ciphertext: txCiphertext,
		},
		Signatures: Signatures{
			Seller: SignatureEntry{Company: seller, Signature: sellerSig},
			Buyer:  nil,
		},
		WrappedKeys:      wrappedKeys,
		GroupWrappedKeys: groupWrappedKeys,
		TransactionHash:  hash[:],
	}

	logger.Debug(fmt.Sprintf("protect: issued tx_id=%d recipients=%d groups=%d warnings=%d",
		txID, len(wrappedKeys), len(groupWrappedKeys), len(warnings)))

	return &ProtectResult{Document: doc, Warnings: warnings}, nil
}

func addWrappedKey(dst map[string]WrappedKey, name string, recipientPublic [32]byte, payload []byte) error {
	env, err := wrap.Wrap(recipientPublic, payload)
	if err != nil {
		return err
	}
	dst[name] = WrappedKey{
		EphemeralPublicKey: env.EphemeralPublicKey[:],
		EncryptedKey: AEADBox{
			Nonce:      env.Nonce,
			Ciphertext: env.Ciphertext,
		},
	}
	return nil
}

func deriveGroupKey(dataKey []byte, groupID string, txID int64) ([]byte, error) {
	info := fmt.Sprintf("group:%s:tx:%d", groupID, txID)
	return primitive.HKDF(dataKey, info, primitive.KeySize)
}

func dedupStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func dedupExcluding(in []string, exclude ...string) []string {
	excluded := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		excluded[e] = true
	}
	var filtered []string
	for _, s := range in {
		if !excluded[s] {
			filtered = append(filtered, s)
		}
	}
	return dedupStrings(filtered)
}

// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package engine implements the protection engine: Protect assembles a
// protected document from a plaintext transaction, Check verifies its
// structure and signatures without requiring key access, Unprotect
// selects an access path and recovers the plaintext, and BuyerSign
// appends the buyer's countersignature.
package engine

// Version is the only wire version this engine produces or accepts.
const Version = "1.0"

// AEADBox is the wire shape for an AES-256-GCM nonce/ciphertext pair.
// []byte fields marshal to base64 automatically under encoding/json.
type AEADBox struct {
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

// WrappedKey is the wire shape for a wrapped-key envelope: an
// ephemeral X25519 public key plus the AEAD box carrying the wrapped
// 32-byte payload.
type WrappedKey struct {
	EphemeralPublicKey []byte  `json:"ephemeral_public_key"`
	EncryptedKey       AEADBox `json:"encrypted_key"`
}

// GroupEntry is the wire shape for one group's disclosure: a
// per-member wrapped group-derived key, plus the bridge that lets any
// member recover the transaction's data key from it.
type GroupEntry struct {
	Members       map[string]WrappedKey `json:"members"`
	DataKeyBridge AEADBox               `json:"data_key_bridge"`
}

// SignatureEntry names the signer and carries their Ed25519 signature
// over the document's transaction_hash.
type SignatureEntry struct {
	Company   string `json:"company"`
	Signature []byte `json:"signature"`
}

// Signatures holds the mandatory seller signature and the optional
// buyer countersignature.
type Signatures struct {
	Seller SignatureEntry  `json:"seller"`
	Buyer  *SignatureEntry `json:"buyer"`
}

// Document is the protected document: immutable after issuance except
// for the buyer-signature slot, which BuyerSign fills. BuyerSign itself
// does not refuse a second signature; the storage boundary
// (internal/storageservice) accepts a buyer signature only once.
type Document struct {
	Version              string                `json:"version"`
	TransactionID        int64                 `json:"transaction_id"`
	EncryptedTransaction AEADBox               `json:"encrypted_transaction"`
	Signatures           Signatures            `json:"signatures"`
	WrappedKeys          map[string]WrappedKey `json:"wrapped_keys"`
	GroupWrappedKeys     map[string]GroupEntry `json:"group_wrapped_keys"`
	TransactionHash      []byte                `json:"transaction_hash"`
}

// Warning describes a non-fatal condition collected during Protect:
// an optional recipient or group that could not be resolved. It never
// degrades the document to invalidity.
type Warning struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

const (
	WarningUnresolvedRecipient = "unresolved_recipient"
	WarningUnknownGroup        = "unknown_group"
	WarningUnresolvedMember    = "unresolved_member"
)

// ProtectResult carries the issued document plus any warnings
// collected while resolving optional recipients and groups.
type ProtectResult struct {
	Document *Document
	Warnings []Warning
}

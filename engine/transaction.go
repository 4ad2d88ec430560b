// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package engine

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/luxfi/dvpguard/errs"
	"github.com/luxfi/dvpguard/internal/canon"
)

// Transaction is a DvP transaction: a mapping with the required
// fields named below. Additional fields are preserved verbatim across
// protection and recovery.
type Transaction map[string]interface{}

var requiredFields = []string{"id", "timestamp", "seller", "buyer", "product", "units", "amount"}

// ParseTransaction decodes raw JSON into a Transaction, preserving
// numeric precision via json.Number so canonicalization is exact.
func ParseTransaction(raw []byte) (Transaction, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var m map[string]interface{}
	if err := dec.Decode(&m); err != nil {
		return nil, errs.Wrap(errs.InvalidDocument, "malformed transaction JSON", err)
	}
	return Transaction(m), nil
}

// Validate checks that every required field is present and
// well-typed. It does not check seller/buyer against expected values;
// that is Protect's job (FieldMismatch).
func (t Transaction) Validate() error {
	for _, f := range requiredFields {
		if _, ok := t[f]; !ok {
			return errs.New(errs.MissingField, f)
		}
	}
	if _, err := t.id(); err != nil {
		return err
	}
	if _, err := t.timestamp(); err != nil {
		return err
	}
	if _, err := t.Seller(); err != nil {
		return err
	}
	if _, err := t.Buyer(); err != nil {
		return err
	}
	if _, ok := t["product"].(string); !ok {
		return errs.New(errs.MissingField, "product")
	}
	if _, err := t.units(); err != nil {
		return err
	}
	if _, err := t.amount(); err != nil {
		return err
	}
	return nil
}

// ID returns the transaction's integer id.
func (t Transaction) ID() (int64, error) { return t.id() }

func (t Transaction) id() (int64, error) { return toInt64(t["id"], "id") }

// Timestamp returns the transaction's epoch-seconds timestamp.
func (t Transaction) Timestamp() (int64, error) { return t.timestamp() }

func (t Transaction) timestamp() (int64, error) { return toInt64(t["timestamp"], "timestamp") }

// Seller returns the seller company name.
func (t Transaction) Seller() (string, error) {
	s, ok := t["seller"].(string)
	if !ok || s == "" {
		return "", errs.New(errs.MissingField, "seller")
	}
	return s, nil
}

// Buyer returns the buyer company name.
func (t Transaction) Buyer() (string, error) {
	s, ok := t["buyer"].(string)
	if !ok || s == "" {
		return "", errs.New(errs.MissingField, "buyer")
	}
	return s, nil
}

// Units returns the non-negative unit count.
func (t Transaction) Units() (uint64, error) { return t.units() }

func (t Transaction) units() (uint64, error) { return toUint64(t["units"], "units") }

// Amount returns the non-negative minor-unit amount.
func (t Transaction) Amount() (uint64, error) { return t.amount() }

func (t Transaction) amount() (uint64, error) { return toUint64(t["amount"], "amount") }

// Canonical returns the byte-deterministic encoding of t: the value
// that is hashed, signed, encrypted, and recovered.
func (t Transaction) Canonical() ([]byte, error) {
	return canon.Marshal(map[string]interface{}(t))
}

func toInt64(v interface{}, field string) (int64, error) {
	n, ok := v.(json.Number)
	if !ok {
		if f, ok := v.(float64); ok {
			return int64(f), nil
		}
		return 0, errs.New(errs.MissingField, field)
	}
	i, err := n.Int64()
	if err != nil {
		return 0, errs.Wrap(errs.MissingField, field, err)
	}
	return i, nil
}

func toUint64(v interface{}, field string) (uint64, error) {
	i, err := toInt64(v, field)
	if err != nil {
		return 0, err
	}
	if i < 0 {
		return 0, errs.New(errs.MissingField, fmt.Sprintf("%s must be non-negative", field))
	}
	return uint64(i), nil
}

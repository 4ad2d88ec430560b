// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/dvpguard/engine"
	"github.com/luxfi/dvpguard/errs"
)

const sampleTransaction = `{
	"id": 1001,
	"timestamp": 1780000000,
	"seller": "acme",
	"buyer": "globex",
	"product": "widgets",
	"units": 500,
	"amount": 125000,
	"memo": "Q3 delivery"
}`

func TestParseTransactionRoundTrip(t *testing.T) {
	require := require.New(t)

	tx, err := engine.ParseTransaction([]byte(sampleTransaction))
	require.NoError(err)
	require.NoError(tx.Validate())

	id, err := tx.ID()
	require.NoError(err)
	require.EqualValues(1001, id)

	seller, err := tx.Seller()
	require.NoError(err)
	require.Equal("acme", seller)

	require.Equal("Q3 delivery", tx["memo"])
}

func TestValidateRejectsMissingField(t *testing.T) {
	require := require.New(t)

	tx, err := engine.ParseTransaction([]byte(`{"id":1,"timestamp":1,"seller":"a","buyer":"b","product":"p","units":1}`))
	require.NoError(err)

	err = tx.Validate()
	require.Error(err)
	require.True(errs.Is(err, errs.MissingField))
}

func TestCanonicalIsDeterministicAcrossFieldOrder(t *testing.T) {
	require := require.New(t)

	tx1, err := engine.ParseTransaction([]byte(`{"id":1,"seller":"a","buyer":"b"}`))
	require.NoError(err)
	tx2, err := engine.ParseTransaction([]byte(`{"buyer":"b","id":1,"seller":"a"}`))
	require.NoError(err)

	c1, err := tx1.Canonical()
	require.NoError(err)
	c2, err := tx2.Canonical()
	require.NoError(err)
	require.Equal(c1, c2)
}

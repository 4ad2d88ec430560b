// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/dvpguard/engine"
	"github.com/luxfi/dvpguard/errs"
)

const scenarioTransaction = `{"id":123,"timestamp":1766336340,"seller":"ChingChongExtractions","buyer":"LaysChips","product":"Indium","units":40000,"amount":90000000}`

func scenarioDeps(dir *memoryDirectory) engine.Deps {
	return engine.Deps{Companies: dir, Vault: dir, Groups: dir}
}

func TestScenarioIndividualAccessRecoversPlaintext(t *testing.T) {
	require := require.New(t)
	dir := newMemoryDirectory()
	dir.addCompany("ChingChongExtractions")
	dir.addCompany("LaysChips")

	tx, err := engine.ParseTransaction([]byte(scenarioTransaction))
	require.NoError(err)
	result, err := engine.Protect(tx, "ChingChongExtractions", "LaysChips", nil, nil, scenarioDeps(dir))
	require.NoError(err)

	out, err := engine.Unprotect(result.Document, "LaysChips", scenarioDeps(dir))
	require.NoError(err)
	require.Equal(engine.AccessIndividual, out.AccessMethod)

	units, err := out.Transaction.Units()
	require.NoError(err)
	require.EqualValues(40000, units)
}

func TestScenarioRecipientAccessAndDenial(t *testing.T) {
	require := require.New(t)
	dir := newMemoryDirectory()
	dir.addCompany("ChingChongExtractions")
	dir.addCompany("LaysChips")
	dir.addCompany("AuditorCorp")
	dir.addCompany("RandomCo")

	tx, err := engine.ParseTransaction([]byte(scenarioTransaction))
	require.NoError(err)
	result, err := engine.Protect(tx, "ChingChongExtractions", "LaysChips", []string{"AuditorCorp"}, nil, scenarioDeps(dir))
	require.NoError(err)

	_, err = engine.Unprotect(result.Document, "AuditorCorp", scenarioDeps(dir))
	require.NoError(err)

	_, err = engine.Unprotect(result.Document, "RandomCo", scenarioDeps(dir))
	require.Error(err)
	require.True(errs.Is(err, errs.NoAccess))
}

func TestScenarioLateGroupJoinerHasNoAccess(t *testing.T) {
	require := require.New(t)
	dir := newMemoryDirectory()
	dir.addCompany("ChingChongExtractions")
	dir.addCompany("LaysChips")
	dir.addCompany("AuditorCorp")
	dir.addCompany("LateJoiner")
	dir.addGroup("tech_partners", "AuditorCorp")

	tx, err := engine.ParseTransaction([]byte(scenarioTransaction))
	require.NoError(err)
	result, err := engine.Protect(tx, "ChingChongExtractions", "LaysChips", nil, []string{"tech_partners"}, scenarioDeps(dir))
	require.NoError(err)

	// Membership changes after issuance never retroactively grant access:
	// the group entry in the document only ever reflects the snapshot
	// Protect observed.
	dir.groups["tech_partners"] = append(dir.groups["tech_partners"], "LateJoiner")

	_, err = engine.Unprotect(result.Document, "LateJoiner", scenarioDeps(dir))
	require.Error(err)
	require.True(errs.Is(err, errs.NoAccess))
}

func TestScenarioBuyerSignThenCheckBothValid(t *testing.T) {
	require := require.New(t)
	dir := newMemoryDirectory()
	dir.addCompany("ChingChongExtractions")
	dir.addCompany("LaysChips")

	tx, err := engine.ParseTransaction([]byte(scenarioTransaction))
	require.NoError(err)
	result, err := engine.Protect(tx, "ChingChongExtractions", "LaysChips", nil, nil, scenarioDeps(dir))
	require.NoError(err)

	signed, err := engine.BuyerSign(result.Document, "LaysChips", scenarioDeps(dir))
	require.NoError(err)

	report := engine.Check(signed, dir)
	require.True(report.Valid)
	require.Equal("valid", report.Details["seller_signature"])
	require.Equal("valid", report.Details["buyer_signature"])
}

func TestScenarioCorruptedCiphertextChecksValidButUnprotectFails(t *testing.T) {
	require := require.New(t)
	dir := newMemoryDirectory()
	dir.addCompany("ChingChongExtractions")
	dir.addCompany("LaysChips")

	tx, err := engine.ParseTransaction([]byte(scenarioTransaction))
	require.NoError(err)
	result, err := engine.Protect(tx, "ChingChongExtractions", "LaysChips", nil, nil, scenarioDeps(dir))
	require.NoError(err)

	result.Document.EncryptedTransaction.Ciphertext[0] ^= 0xFF

	report := engine.Check(result.Document, dir)
	require.True(report.Valid)
	require.Equal("valid", report.Details["seller_signature"])

	_, err = engine.Unprotect(result.Document, "LaysChips", scenarioDeps(dir))
	require.Error(err)
	require.True(errs.Is(err, errs.DecryptAuth))
}

func TestScenarioCorruptedHashInvalidatesSellerSignature(t *testing.T) {
	require := require.New(t)
	dir := newMemoryDirectory()
	dir.addCompany("ChingChongExtractions")
	dir.addCompany("LaysChips")

	tx, err := engine.ParseTransaction([]byte(scenarioTransaction))
	require.NoError(err)
	result, err := engine.Protect(tx, "ChingChongExtractions", "LaysChips", nil, nil, scenarioDeps(dir))
	require.NoError(err)

	result.Document.TransactionHash[0] ^= 0xFF

	report := engine.Check(result.Document, dir)
	require.False(report.Valid)
	require.Equal("invalid", report.Details["seller_signature"])
}

// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package canon

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarshalSortsKeys(t *testing.T) {
	require := require.New(t)

	out, err := Marshal(map[string]interface{}{
		"seller": "acme",
		"amount": 100,
		"buyer":  "globex",
	})
	require.NoError(err)
	require.Equal(`{"amount":100,"buyer":"globex","seller":"acme"}`, string(out))
}

func TestMarshalIsOrderIndependent(t *testing.T) {
	require := require.New(t)

	a, err := Marshal(map[string]interface{}{"a": 1, "b": 2, "c": 3})
	require.NoError(err)
	b, err := Marshal(map[string]interface{}{"c": 3, "a": 1, "b": 2})
	require.NoError(err)
	require.Equal(a, b)
}

func TestMarshalPreservesNestedStructures(t *testing.T) {
	require := require.New(t)

	out, err := Marshal(map[string]interface{}{
		"items": []interface{}{
			map[string]interface{}{"z": 1, "a": 2},
			"plain",
		},
	})
	require.NoError(err)
	require.Equal(`{"items":[{"a":2,"z":1},"plain"]}`, string(out))
}

func TestMarshalPreservesLargeIntegerPrecision(t *testing.T) {
	require := require.New(t)

	out, err := Marshal(map[string]interface{}{"id": 9007199254740993})
	require.NoError(err)
	require.Equal(`{"id":9007199254740993}`, string(out))
}

func TestMarshalRoundTripFromJSONNumber(t *testing.T) {
	require := require.New(t)

	out1, err := Marshal(map[string]interface{}{"amount": 250})
	require.NoError(err)

	normalized, err := normalize(map[string]interface{}{"amount": 250})
	require.NoError(err)
	out2, err := Marshal(normalized)
	require.NoError(err)

	require.Equal(out1, out2)
}

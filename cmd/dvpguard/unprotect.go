// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/luxfi/dvpguard/engine"
)

func runUnprotect(args []string) error {
	fs := flag.NewFlagSet("unprotect", flag.ExitOnError)
	stateDir := fs.String("state-dir", defaultStateDir, "directory holding keys and directory state")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 3 {
		return fmt.Errorf("unprotect: expected <doc.json> <as_company> <out.json>, got %d args", fs.NArg())
	}

	doc, err := readDocument(fs.Arg(0))
	if err != nil {
		return err
	}
	asCompany := fs.Arg(1)

	st, err := openState(*stateDir)
	if err != nil {
		return err
	}
	defer st.close()

	result, err := engine.Unprotect(doc, asCompany, st.deps())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "dvpguard: recovered via %s\n", result.AccessMethod)

	raw, err := json.MarshalIndent(map[string]interface{}(result.Transaction), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(fs.Arg(2), raw, 0o644)
}

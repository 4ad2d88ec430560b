// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/luxfi/dvpguard/engine"
)

func runProtect(args []string) error {
	fs := flag.NewFlagSet("protect", flag.ExitOnError)
	seller := fs.String("seller", "", "seller company name")
	buyer := fs.String("buyer", "", "buyer company name")
	recipients := fs.String("recipients", "", "comma-separated additional recipient company names")
	groups := fs.String("groups", "", "comma-separated group identifiers")
	stateDir := fs.String("state-dir", defaultStateDir, "directory holding keys and directory state")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("protect: expected <in.json> <out.json>, got %d args", fs.NArg())
	}
	if *seller == "" || *buyer == "" {
		return fmt.Errorf("protect: --seller and --buyer are required")
	}

	raw, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	tx, err := engine.ParseTransaction(raw)
	if err != nil {
		return err
	}

	st, err := openState(*stateDir)
	if err != nil {
		return err
	}
	defer st.close()

	result, err := engine.Protect(tx, *seller, *buyer, splitCSV(*recipients), splitCSV(*groups), st.deps())
	if err != nil {
		return err
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "dvpguard: warning: %s: %s\n", w.Code, w.Detail)
	}

	return writeDocument(fs.Arg(1), result.Document)
}

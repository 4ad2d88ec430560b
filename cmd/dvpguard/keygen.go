// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"flag"
	"fmt"
)

func runKeygen(args []string) error {
	fs := flag.NewFlagSet("keygen", flag.ExitOnError)
	stateDir := fs.String("state-dir", defaultStateDir, "directory holding keys and directory state")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("keygen: expected exactly one company name, got %d", fs.NArg())
	}
	company := fs.Arg(0)

	st, err := openState(*stateDir)
	if err != nil {
		return err
	}
	defer st.close()

	keys, err := st.vault.Generate(company)
	if err != nil {
		return fmt.Errorf("generating keys for %s: %w", company, err)
	}
	if err := st.companies.Register(company, keys); err != nil {
		return fmt.Errorf("registering %s: %w", company, err)
	}

	fmt.Printf("generated and registered keys for %s under %s\n", company, *stateDir)
	return nil
}

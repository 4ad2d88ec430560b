// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/luxfi/dvpguard/engine"
)

func runCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	stateDir := fs.String("state-dir", defaultStateDir, "directory holding keys and directory state")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("check: expected <doc.json>, got %d args", fs.NArg())
	}

	doc, err := readDocument(fs.Arg(0))
	if err != nil {
		return err
	}

	st, err := openState(*stateDir)
	if err != nil {
		return err
	}
	defer st.close()

	report := engine.Check(doc, st.companies)

	fmt.Printf("valid: %v\n", report.Valid)
	fmt.Printf("recipients: %d  groups: %d\n", report.RecipientCount, report.GroupCount)
	for k, v := range report.Details {
		fmt.Printf("  %s: %s\n", k, v)
	}
	for _, w := range report.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
	for _, e := range report.Errors {
		fmt.Fprintf(os.Stderr, "error: %s\n", e)
	}

	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

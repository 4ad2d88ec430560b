// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"flag"
	"fmt"

	"github.com/luxfi/dvpguard/engine"
)

func runBuyerSign(args []string) error {
	fs := flag.NewFlagSet("buyer-sign", flag.ExitOnError)
	stateDir := fs.String("state-dir", defaultStateDir, "directory holding keys and directory state")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 3 {
		return fmt.Errorf("buyer-sign: expected <doc.json> <buyer> <out.json>, got %d args", fs.NArg())
	}

	doc, err := readDocument(fs.Arg(0))
	if err != nil {
		return err
	}
	buyer := fs.Arg(1)

	st, err := openState(*stateDir)
	if err != nil {
		return err
	}
	defer st.close()

	signed, err := engine.BuyerSign(doc, buyer, st.deps())
	if err != nil {
		return err
	}

	return writeDocument(fs.Arg(2), signed)
}

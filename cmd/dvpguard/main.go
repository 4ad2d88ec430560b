// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Command dvpguard is the CLI surface for the DvP document protection
// engine: keygen, protect, check, unprotect, buyer-sign. It exits 0 on
// success and non-zero on any fatal error, per spec.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "keygen":
		err = runKeygen(os.Args[2:])
	case "protect":
		err = runProtect(os.Args[2:])
	case "check":
		err = runCheck(os.Args[2:])
	case "unprotect":
		err = runUnprotect(os.Args[2:])
	case "buyer-sign":
		err = runBuyerSign(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "dvpguard: unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "dvpguard: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: dvpguard <command> [flags] <args>

commands:
  keygen [--state-dir=dir] <company>
  protect --seller=name --buyer=name [--recipients=a,b] [--groups=g1,g2] [--state-dir=dir] <in.json> <out.json>
  check [--state-dir=dir] <doc.json>
  unprotect [--state-dir=dir] <doc.json> <as_company> <out.json>
  buyer-sign [--state-dir=dir] <doc.json> <buyer> <out.json>

Flags must come before the positional arguments; anything after the
first positional argument is read as a positional argument.`)
}

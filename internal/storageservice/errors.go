// Copyright (C) 2025, DvPGuard Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package storageservice

import "errors"

var errBadKeyLength = errors.New("storageservice: key must decode to 32 bytes")

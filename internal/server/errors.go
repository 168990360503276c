// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var errNothingToServe = errors.New("server: no HTTP handler or listen address configured")

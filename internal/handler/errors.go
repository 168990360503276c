// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

var (
	// errNoHandlersAreCreated is returned by NewHandlers when the server
	// configuration has no HTTP address, so there is nothing to serve.
	errNoHandlersAreCreated = errors.New("no handlers are created")

	// errNoServices is returned when the handlers would have no endpoint to
	// delegate to.
	errNoServices = errors.New("no services to serve")
)

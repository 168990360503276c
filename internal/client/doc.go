// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client is the composition root of ledgersync.
//
// It turns a configuration into the local storages, the remote factory and
// the service layer, connects the endpoint to a backend, and runs the
// background workers and the local API server.
package client

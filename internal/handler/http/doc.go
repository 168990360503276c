// Package http implements the local REST API of the sync engine.
//
// It exposes the Endpoint facade over chi routes so that other processes on
// the machine can list books, submit batches and trigger syncs. Tracing,
// access logging, compression and optional token authentication are handled
// here before requests reach the service layer.
package http

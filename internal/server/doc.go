// Package server runs the local REST API with graceful shutdown.
package server

// Package server runs the HTTP server and the background workers.
//
// It handles startup, signal handling, and graceful shutdown of both.
package server

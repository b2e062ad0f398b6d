// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the quote keeper command-line client.
//
// [App] builds a cobra command tree over an [adapter.ServerAdapter]. Results
// are printed to stdout as JSON; diagnostics go to stderr. The token pair
// survives between invocations in a JSON file readable only by the owner.
package client

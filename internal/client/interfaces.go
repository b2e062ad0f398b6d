// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client is a runnable command-line application.
type Client interface {
	// Run executes the command named by args and blocks until it finishes.
	Run(ctx context.Context, args []string) error
}

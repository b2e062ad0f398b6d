// Package config provides configuration loading, merging, and validation
// for the quote keeper server.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. .env file
//  2. Environment variables
//  3. Command-line flags
//  4. JSON or YAML config file
//
// The main entry point is [GetStructuredConfig].
package config

//go:build tools

// This file tracks development tool dependencies so they are pinned in go.sum.
// Run the linter with: go run github.com/golangci/golangci-lint/cmd/golangci-lint run ./...
package tools

import (
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
)

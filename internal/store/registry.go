//-------------------------------------------------------------------------
//
// pgEdge Textile Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownDriver is returned by Open for unregistered drivers.
var ErrUnknownDriver = errors.New("unknown database driver")

// Opener opens a store for a connection string.
type Opener func(ctx context.Context, connection string) (Store, error)

var (
	registry = make(map[string]Opener)
	mu       sync.RWMutex
)

// Register adds a backend to the registry.
func Register(driver string, open Opener) {
	mu.Lock()
	defer mu.Unlock()
	registry[driver] = open
}

// Open opens a store using the named driver.
func Open(ctx context.Context, driver, connection string) (Store, error) {
	mu.RLock()
	open, ok := registry[driver]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
	return open(ctx, connection)
}

// List returns all registered driver names, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

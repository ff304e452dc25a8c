//-------------------------------------------------------------------------
//
// pgEdge Textile Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package holidays

import (
	"context"
	"fmt"

	"github.com/spf13/viper"
)

// FileProvider reads holidays from a YAML or JSON file of the form:
//
//	holidays:
//	  "2024-01-26": Republic Day
//	  "2024-08-15": Independence Day
//
// The format is picked from the file extension.
type FileProvider struct {
	Path string
}

// NewFileProvider creates a file-backed provider.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{Path: path}
}

// Name returns the provider name.
func (p *FileProvider) Name() string {
	return "file"
}

// Fetch returns the file's holidays that fall in the given years.
func (p *FileProvider) Fetch(ctx context.Context, years []int) (Calendar, error) {
	v := viper.New()
	v.SetConfigFile(p.Path)
	if err := v.ReadInConfig(); err != nil {
		return Calendar{}, fmt.Errorf("failed to read holiday file %s: %w", p.Path, err)
	}

	cal := Calendar{}
	for date, name := range v.GetStringMapString("holidays") {
		if !inYears(date, years) {
			continue
		}
		cal[date] = name
	}
	return cal, nil
}

// Package manifest writes the asset file WordPress reads to enqueue the
// scripts a bundle depends on.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"micromachine.dev/blockbuild/lib/php"
)

type Format string

const (
	FormatPHP  Format = "php"
	FormatJSON Format = "json"
)

type Manifest struct {
	Dependencies []string `json:"dependencies"`
	Version      *string  `json:"version"`
}

// New returns a manifest with the handles sorted and duplicates removed.
func New(handles []string) Manifest {
	deps := slices.Clone(handles)
	if deps == nil {
		deps = []string{}
	}
	slices.Sort(deps)
	deps = slices.Compact(deps)

	return Manifest{Dependencies: deps}
}

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatPHP:
		return FormatPHP, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown manifest format %q", s)
}

func FileName(format Format) string {
	if format == FormatJSON {
		return "index.asset.json"
	}
	return "index.asset.php"
}

func (m Manifest) Render(format Format) ([]byte, error) {
	deps := m.Dependencies
	if deps == nil {
		deps = []string{}
	}

	switch format {
	case FormatJSON:
		return json.Marshal(Manifest{Dependencies: deps, Version: m.Version})
	case FormatPHP, "":
		literal, err := php.Marshal(php.Map{
			{Key: "dependencies", Value: deps},
			{Key: "version", Value: m.Version},
		})
		if err != nil {
			return nil, err
		}
		return []byte("<?php return " + literal + ";"), nil
	}

	return nil, fmt.Errorf("unknown manifest format %q", format)
}

// Write renders the manifest into dir/name. The file is replaced with a
// rename so a reader never observes a half written manifest.
func (m Manifest) Write(dir, name string, format Format) (string, error) {
	contents, err := m.Render(format)
	if err != nil {
		return "", err
	}

	target := filepath.Join(dir, name)

	tmp, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return "", fmt.Errorf("could not create manifest: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(contents); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("could not write manifest: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("could not write manifest: %w", err)
	}

	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("could not write manifest: %w", err)
	}

	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("could not replace %s: %w", target, err)
	}

	return target, nil
}

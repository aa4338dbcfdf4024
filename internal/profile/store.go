// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Svetlana Sibiryakova

package profile

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

const (
	configDirName  = "pulsar"
	configFileName = "pulsar_x2_v3_config.json"
)

// Store reads and writes the configuration document at a fixed path.
type Store struct {
	Path string
}

// NewStore returns a store rooted in the user's configuration directory
// (e.g. ~/.config/pulsar/pulsar_x2_v3_config.json).
func NewStore() (*Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("cannot resolve user config directory: %w", err)
	}
	return &Store{Path: filepath.Join(dir, configDirName, configFileName)}, nil
}

// Load reads the document from disk. A missing, unreadable or malformed
// file is not an error: the default document is returned instead and a
// diagnostic is logged.
func (s *Store) Load() *Document {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("no saved configuration found, using defaults")
		} else {
			log.Printf("error reading configuration: %v", err)
		}
		return Default()
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Printf("error parsing configuration: %v", err)
		return Default()
	}
	if doc.Profiles == nil {
		log.Printf("configuration has no profiles, using defaults")
		return Default()
	}
	return &doc
}

// Save writes the document to disk with stable indentation, creating the
// configuration directory on demand. I/O failures are returned, never
// panicked; the in-memory document is untouched either way.
func (s *Store) Save(doc *Document) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("cannot encode configuration: %w", err)
	}

	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write configuration: %w", err)
	}
	return nil
}

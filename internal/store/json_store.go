package store

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// JSONFile keeps every key in one JSON document on disk.
type JSONFile struct {
	filePath string
	mu       sync.RWMutex
	values   map[string]string
}

// NewJSONFile loads the document at filePath. A missing file starts empty, and
// so does an unreadable document, which is moved aside to filePath+".corrupt".
func NewJSONFile(filePath string) (*JSONFile, error) {
	s := &JSONFile{
		filePath: filePath,
		values:   make(map[string]string),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Get returns the raw value stored under key.
func (s *JSONFile) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok, nil
}

// Set overwrites the value stored under key and rewrites the document.
func (s *JSONFile) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make(map[string]string, len(s.values)+1)
	for k, v := range s.values {
		next[k] = v
	}
	next[key] = value
	if err := s.persist(next); err != nil {
		return err
	}
	s.values = next
	return nil
}

// Close is a no-op; every Set is already flushed.
func (s *JSONFile) Close() error {
	return nil
}

func (s *JSONFile) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		log.Printf("store file %s is corrupt, starting empty: %v", s.filePath, err)
		if rerr := os.Rename(s.filePath, s.filePath+".corrupt"); rerr != nil {
			log.Printf("failed to move corrupt store file aside: %v", rerr)
		}
		return nil
	}
	if values == nil {
		values = make(map[string]string)
	}
	s.values = values
	return nil
}

func (s *JSONFile) persist(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := s.filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpPath, s.filePath)
}

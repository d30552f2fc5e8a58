// Package file persists stepping sessions as JSON files, one per session.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/rpda/pkg/domain"
)

const ext = ".json"

// Store implements ports.SnapshotStore on the local filesystem.
type Store struct {
	BasePath string
}

// New creates a Store rooted at basePath.
// An empty basePath defaults to ".rpda/sessions".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".rpda", "sessions")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(sessionID string) (string, error) {
	if sessionID == "" {
		return "", errors.New("session id cannot be empty")
	}
	if strings.ContainsAny(sessionID, `/\`) || sessionID == "." || sessionID == ".." {
		return "", fmt.Errorf("invalid session id %q", sessionID)
	}
	return filepath.Join(s.BasePath, sessionID+ext), nil
}

// Save writes the snapshot atomically: a synced temp file in the same
// directory is renamed over the destination.
func (s *Store) Save(ctx context.Context, sessionID string, snap *domain.Snapshot) error {
	dest, err := s.path(sessionID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure session directory: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(s.BasePath, "tmp-"+sessionID+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// os.Rename does not replace an existing file on Windows.
	if _, err := os.Stat(dest); err == nil {
		if err := os.Remove(dest); err != nil {
			return fmt.Errorf("failed to replace session file: %w", err)
		}
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("failed to rename session file: %w", err)
	}
	return nil
}

// Load reads the snapshot of sessionID.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.Snapshot, error) {
	p, err := s.path(sessionID)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	if snap.Stack == nil {
		snap.Stack = []domain.Symbol{}
	}
	return &snap, nil
}

// Delete removes the session file. Deleting a missing session is not an error.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	p, err := s.path(sessionID)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}

// List returns the stored session IDs in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	sessions := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ext || strings.HasPrefix(name, "tmp-") {
			continue
		}
		sessions = append(sessions, strings.TrimSuffix(name, ext))
	}
	slices.Sort(sessions)
	return sessions, nil
}

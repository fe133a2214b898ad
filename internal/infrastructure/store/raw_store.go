package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/nuchoate/league-archive/internal/domain/snapshot"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// RawStore keeps provider payloads on disk, byte for byte as received.
//
// Layout:
//
//	<root>/players.json
//	<root>/<season>/<endpoint>.json
//	<root>/<season>/week_<n>/<endpoint>.json
type RawStore struct {
	root string
}

func NewRawStore(root string) *RawStore {
	return &RawStore{root: root}
}

func (s *RawStore) WriteRaw(key snapshot.Key, body []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	if err := os.WriteFile(path, body, filePerm); err != nil {
		return fmt.Errorf("write snapshot %s: %w", path, err)
	}

	return nil
}

func (s *RawStore) ReadRaw(key snapshot.Key) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}

	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}

	return body, nil
}

// Seasons lists the archived season directories in ascending order.
func (s *RawStore) Seasons() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read raw root %s: %w", s.root, err)
	}

	seasons := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			seasons = append(seasons, entry.Name())
		}
	}
	sort.Strings(seasons)

	return seasons, nil
}

func (s *RawStore) HasSeason(season string) bool {
	info, err := os.Stat(filepath.Join(s.root, season))
	return err == nil && info.IsDir()
}

func (s *RawStore) path(key snapshot.Key) (string, error) {
	if key.Endpoint == "" {
		return "", fmt.Errorf("snapshot endpoint must not be empty")
	}

	name := string(key.Endpoint) + ".json"
	switch {
	case key.Endpoint == snapshot.EndpointPlayers:
		return filepath.Join(s.root, name), nil
	case key.Season == "":
		return "", fmt.Errorf("snapshot season must not be empty for endpoint %s", key.Endpoint)
	case key.Week > 0:
		return filepath.Join(s.root, key.Season, fmt.Sprintf("week_%d", key.Week), name), nil
	default:
		return filepath.Join(s.root, key.Season, name), nil
	}
}

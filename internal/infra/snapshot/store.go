// Package snapshot persists the full working set to a local JSON file so the
// application survives backend outages: the last synced state is reloaded on
// start and served until a fresh sync succeeds.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tesourariapro/tesouraria-bff/internal/domain"

	"go.uber.org/zap"
)

// FileName is the fixed snapshot file name. The version suffix guards
// against loading state written by an incompatible schema.
const FileName = "tesouraria_pro_data_v3.json"

// Store reads and writes AppData snapshots under a base directory.
type Store struct {
	path   string
	logger *zap.Logger
}

// NewStore creates a snapshot store rooted at dir.
func NewStore(dir string, logger *zap.Logger) *Store {
	return &Store{
		path:   filepath.Join(dir, FileName),
		logger: logger,
	}
}

// Load reads the last persisted snapshot. A missing or unreadable file is not
// an error: the seed working set is returned so the application always has
// something to serve.
func (s *Store) Load() (*domain.AppData, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Info("snapshot: no local snapshot, using seed data",
				zap.String("path", s.path),
			)
			data := domain.DefaultAppData()
			return &data, nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var data domain.AppData
	if err := json.Unmarshal(raw, &data); err != nil {
		s.logger.Warn("snapshot: corrupt snapshot file, falling back to seed data",
			zap.String("path", s.path),
			zap.Error(err),
		)
		seed := domain.DefaultAppData()
		return &seed, nil
	}

	s.logger.Info("snapshot: loaded",
		zap.String("path", s.path),
		zap.Int("transactions", len(data.Transactions)),
		zap.Int("accounts", len(data.Accounts)),
	)
	return &data, nil
}

// Save persists the working set. The write goes through a temp file and a
// rename so a crash mid-write never leaves a truncated snapshot behind.
func (s *Store) Save(data *domain.AppData) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}

	s.logger.Debug("snapshot: saved",
		zap.String("path", s.path),
		zap.Int("bytes", len(raw)),
	)
	return nil
}

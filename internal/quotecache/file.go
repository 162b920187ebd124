package quotecache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"StockMind/internal/domain/models"
	"StockMind/internal/domain/repository"
)

// FileStore keeps one CSV file per symbol under a data directory. It is
// the default cache backend. A coarse lock serializes writers; the file
// mtime doubles as the last-write timestamp.
type FileStore struct {
	dir string
	mu  sync.RWMutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Get(_ context.Context, symbol string) (models.Series, time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path := s.path(symbol)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, time.Time{}, repository.ErrCacheMiss
		}
		return nil, time.Time{}, fmt.Errorf("stat cache file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("read cache file: %w", err)
	}
	series, err := DecodeSeries(data)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("decode %s: %w", symbol, err)
	}
	return series, info.ModTime(), nil
}

func (s *FileStore) Put(_ context.Context, symbol string, series models.Series) error {
	data, err := EncodeSeries(series)
	if err != nil {
		return fmt.Errorf("encode %s: %w", symbol, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Write-then-rename keeps readers from observing a partial series.
	path := s.path(symbol)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename cache file: %w", err)
	}
	return nil
}

func (s *FileStore) path(symbol string) string {
	safe := strings.ToUpper(symbol)
	safe = strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(safe)
	return filepath.Join(s.dir, safe+".csv")
}

var _ repository.QuoteCache = (*FileStore)(nil)

package memory

import (
	"context"
	"sync"

	"github.com/puesto-lab/puesto/internal/core/storage"
)

type table struct {
	header []string
	rows   [][]string
}

// Store is an in-memory implementation of storage.TableStore.
// Useful for testing and demos. Values are kept as text so a Save/Load round-trip
// behaves like the spreadsheet driver. The mutex only protects the map; it does not
// serialize load-modify-save cycles.
type Store struct {
	mu     sync.RWMutex
	tables map[string]*table
}

// NewStore creates a new in-memory table store.
func NewStore() *Store {
	return &Store{
		tables: make(map[string]*table),
	}
}

func (s *Store) Ensure(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tables[name]; !exists {
		s.tables[name] = &table{}
	}
	return nil
}

func (s *Store) Load(ctx context.Context, name string) ([]*storage.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.tables[name]
	if !exists {
		return []*storage.Record{}, nil
	}

	records := make([]*storage.Record, 0, len(t.rows))
	for _, row := range t.rows {
		r := storage.NewRecord()
		for i, col := range t.header {
			r.Set(col, row[i])
		}
		records = append(records, r)
	}
	return records, nil
}

func (s *Store) Save(ctx context.Context, name string, records []*storage.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	header := storage.UnionColumns(records)
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		row := make([]string, len(header))
		for i, col := range header {
			row[i] = storage.ToString(r.Get(col))
		}
		rows = append(rows, row)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[name] = &table{header: header, rows: rows}
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

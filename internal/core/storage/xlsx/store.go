package xlsx

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/puesto-lab/puesto/internal/core/storage"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the sheet every table lives on.
const DefaultSheet = "Hoja1"

const fileExt = ".xlsx"

// Store implements storage.TableStore with one spreadsheet workbook per table.
// It expects a directory layout: dataDir/{table}.xlsx, with the header row as field names.
type Store struct {
	dataDir string
	sheet   string
}

// NewStore creates a spreadsheet-backed store rooted at dataDir, creating the directory
// if needed. An empty sheet name falls back to DefaultSheet.
func NewStore(dataDir, sheet string) (*Store, error) {
	if strings.TrimSpace(dataDir) == "" {
		return nil, fmt.Errorf("xlsx store: data dir is required")
	}
	if sheet == "" {
		sheet = DefaultSheet
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir %q: %w", dataDir, err)
	}
	return &Store{dataDir: dataDir, sheet: sheet}, nil
}

// Path returns the file backing a table.
func (s *Store) Path(table string) string {
	return filepath.Join(s.dataDir, table+fileExt)
}

// Ensure writes an empty workbook for the table when its file does not exist.
func (s *Store) Ensure(ctx context.Context, table string) error {
	_, err := os.Stat(s.Path(table))
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat table %s: %w", table, err)
	}
	slog.Info("Creating empty table", "table", table, "path", s.Path(table))
	return s.Save(ctx, table, nil)
}

// Load reads every row of the table's sheet. A missing file or sheet yields no records.
// Cells are returned as text; short rows are padded with "".
func (s *Store) Load(ctx context.Context, table string) ([]*storage.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.Path(table)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []*storage.Record{}, nil
		}
		return nil, fmt.Errorf("stat table %s: %w", table, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table %s: %w", table, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("Failed to close workbook", "table", table, "error", cerr)
		}
	}()

	idx, err := f.GetSheetIndex(s.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to look up sheet %q in %s: %w", s.sheet, table, err)
	}
	if idx == -1 {
		return []*storage.Record{}, nil
	}

	rows, err := f.GetRows(s.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", table, err)
	}
	if len(rows) == 0 {
		return []*storage.Record{}, nil
	}

	header := rows[0]
	records := make([]*storage.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		r := storage.NewRecord()
		for i, col := range header {
			if col == "" {
				continue
			}
			value := ""
			if i < len(row) {
				value = row[i]
			}
			r.Set(col, value)
		}
		records = append(records, r)
	}
	return records, nil
}

// Save writes records as the table's only content. The workbook is written to a temp file
// in the same directory and renamed over the target.
func (s *Store) Save(ctx context.Context, table string, records []*storage.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), s.sheet); err != nil {
		return fmt.Errorf("failed to name sheet for %s: %w", table, err)
	}

	header := storage.UnionColumns(records)
	for col, name := range header {
		if err := s.setCell(f, col+1, 1, name); err != nil {
			return fmt.Errorf("failed to write header of %s: %w", table, err)
		}
	}
	for i, r := range records {
		for col, name := range header {
			if err := s.setCell(f, col+1, i+2, r.Get(name)); err != nil {
				return fmt.Errorf("failed to write row %d of %s: %w", i+1, table, err)
			}
		}
	}

	tmp, err := os.CreateTemp(s.dataDir, "."+table+"-*"+fileExt)
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", table, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if _, err := f.WriteTo(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write table %s: %w", table, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync table %s: %w", table, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close table %s: %w", table, err)
	}
	if err := os.Rename(tmpPath, s.Path(table)); err != nil {
		return fmt.Errorf("failed to replace table %s: %w", table, err)
	}
	return nil
}

// Ping verifies the data directory is still reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(s.dataDir)
	if err != nil {
		return fmt.Errorf("data dir unreachable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data dir %q is not a directory", s.dataDir)
	}
	return nil
}

func (s *Store) setCell(f *excelize.File, col, row int, value interface{}) error {
	value = cellValue(value)
	if value == nil {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(s.sheet, cell, value)
}

// cellValue maps record values onto types excelize stores natively.
// nil and "" leave the cell empty.
func cellValue(v interface{}) interface{} {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		if val == "" {
			return nil
		}
		return val
	case decimal.Decimal:
		return val.InexactFloat64()
	default:
		return val
	}
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

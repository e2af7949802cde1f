package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/vreb/brokerage-workflow/internal/storage"
	"go.uber.org/zap"
)

// Row is one table row keyed by column name
type Row map[string]string

// Table is a flat file with a fixed column schema. Every write rewrites the
// whole file; there is no locking, so the last writer wins.
type Table struct {
	path    string
	columns []string
	codec   Codec
	files   storage.FileStorage
	logger  *zap.Logger
}

// NewTable creates a Table over path
func NewTable(path string, columns []string, codec Codec, files storage.FileStorage, logger *zap.Logger) *Table {
	return &Table{
		path:    path,
		columns: columns,
		codec:   codec,
		files:   files,
		logger:  logger,
	}
}

// Path returns the backing file path
func (t *Table) Path() string {
	return t.path
}

// Columns returns the fixed column order
func (t *Table) Columns() []string {
	return t.columns
}

// Init creates the file with only a header row when it does not exist yet
func (t *Table) Init() error {
	_, err := os.Stat(t.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to open store %s: %w", t.path, err)
	}

	t.logger.Info("Creating store file with headers",
		zap.String("path", t.path),
		zap.Int("columns", len(t.columns)))
	return t.WriteAll(nil)
}

// ReadAll returns every data row. Cells are matched to columns by header
// name; unknown columns are dropped and missing ones read as empty.
func (t *Table) ReadAll() ([]Row, error) {
	raw, err := t.codec.Read(t.path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := t.Init(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store %s: %w", t.path, err)
	}
	if len(raw) == 0 || len(raw[0]) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidHeader, t.path)
	}

	header := make([]string, len(raw[0]))
	for i, h := range raw[0] {
		header[i] = strings.TrimSpace(h)
	}

	rows := make([]Row, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		if isBlank(cells) {
			continue
		}
		row := make(Row, len(t.columns))
		for _, col := range t.columns {
			row[col] = ""
		}
		for i, cell := range cells {
			if i < len(header) {
				if _, known := row[header[i]]; known {
					row[header[i]] = cell
				}
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteAll replaces the file with the header followed by rows
func (t *Table) WriteAll(rows []Row) error {
	out := make([][]string, 0, len(rows)+1)
	out = append(out, append([]string(nil), t.columns...))
	for _, row := range rows {
		cells := make([]string, len(t.columns))
		for i, col := range t.columns {
			cells[i] = row[col]
		}
		out = append(out, cells)
	}

	err := t.files.WriteAtomic(t.path, t.fileType(), func(w io.Writer) error {
		return t.codec.Write(w, out)
	})
	if err != nil {
		t.logger.Error("Failed to write store",
			zap.String("path", t.path),
			zap.Error(err))
		return fmt.Errorf("failed to write store %s: %w", t.path, err)
	}

	t.logger.Debug("Store written",
		zap.String("path", t.path),
		zap.Int("rows", len(rows)))
	return nil
}

func (t *Table) fileType() storage.FileType {
	if t.codec.Extension() == ".xlsx" {
		return storage.FileTypeExcel
	}
	return storage.FileTypeCSV
}

// matches reports whether any cell of the row contains term, case-insensitively
func (r Row) matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, v := range r {
		if strings.Contains(strings.ToLower(v), term) {
			return true
		}
	}
	return false
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

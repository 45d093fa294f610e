package heap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/tuannm99/novalite/internal/record"
	"github.com/tuannm99/novalite/internal/storage"
)

const (
	RowsPerPage = storage.PageSize / record.RowSize
	MaxRows     = RowsPerPage * storage.TableMaxPages
)

var (
	ErrTableFull      = errors.New("heap: table full")
	ErrTableClosed    = errors.New("heap: table is closed")
	ErrRowOutOfBounds = errors.New("heap: row number out of bounds")
)

type Options struct {
	// SyncOnClose fsyncs the file after the last page is written.
	SyncOnClose bool
}

func DefaultOptions() Options {
	return Options{SyncOnClose: true}
}

// Table is a heap of fixed-size rows packed into the pages of one file.
// Row n lives in page n/RowsPerPage at byte (n%RowsPerPage)*RowSize.
// A Table is not safe for concurrent use.
type Table struct {
	Path string

	pager   *storage.Pager
	numRows int
	opts    Options
	closed  bool
}

func Open(path string) (*Table, error) {
	return OpenWithOptions(path, DefaultOptions())
}

// OpenWithOptions opens the table file and derives the row count from its length.
// A trailing partial row is ignored.
func OpenWithOptions(path string, opts Options) (*Table, error) {
	pager, err := storage.OpenPager(path)
	if err != nil {
		return nil, err
	}

	numRows := int(min(pager.FileLength()/record.RowSize, MaxRows))
	slog.Info("heap: table opened", "path", path, "rows", numRows, "file_length", pager.FileLength())

	return &Table{
		Path:    path,
		pager:   pager,
		numRows: numRows,
		opts:    opts,
	}, nil
}

func (t *Table) NumRows() int {
	return t.numRows
}

// RowSlot returns the RowSize window of row rowNum inside its resident page.
// The window aliases the page cache; keep it only for the current operation.
func (t *Table) RowSlot(rowNum int) ([]byte, error) {
	if t.closed {
		return nil, ErrTableClosed
	}
	if rowNum < 0 || rowNum >= MaxRows {
		panic(fmt.Errorf("%w: %d (max %d)", ErrRowOutOfBounds, rowNum, MaxRows))
	}

	page, err := t.pager.GetPage(rowNum / RowsPerPage)
	if err != nil {
		return nil, err
	}
	off := (rowNum % RowsPerPage) * record.RowSize
	return page[off : off+record.RowSize], nil
}

// Insert appends row at the end of the table.
func (t *Table) Insert(row record.Row) error {
	if t.closed {
		return ErrTableClosed
	}
	if t.numRows >= MaxRows {
		return ErrTableFull
	}

	slot, err := t.End().Value()
	if err != nil {
		return err
	}
	row.Serialize(slot)
	t.numRows++
	return nil
}

// Append validates the text fields and inserts a new row.
func (t *Table) Append(id uint32, username, email string) error {
	row, err := record.NewRow(id, username, email)
	if err != nil {
		return err
	}
	return t.Insert(row)
}

// Scan iterates through all rows in insertion order.
func (t *Table) Scan(fn func(rowNum int, row record.Row) error) error {
	c := t.Start()
	for c.Next() {
		if err := fn(c.RowNum(), c.Row()); err != nil {
			return err
		}
	}
	return c.Err()
}

// Close writes the live pages back and closes the file. Full pages are written
// whole, the last one only up to its last row. On a write failure the pages
// already written stay on disk and the remaining ones are skipped.
func (t *Table) Close() error {
	if t.closed {
		return ErrTableClosed
	}
	t.closed = true

	err := t.flush()
	if err == nil && t.opts.SyncOnClose {
		err = t.pager.Sync()
	}
	if cerr := t.pager.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("close table %s: %w", t.Path, err)
	}

	slog.Info("heap: table closed", "path", t.Path, "rows", t.numRows)
	return nil
}

func (t *Table) flush() error {
	fullPages := t.numRows / RowsPerPage
	for pageNum := range fullPages {
		if err := t.flushPage(pageNum, storage.PageSize); err != nil {
			return err
		}
	}

	if rem := t.numRows % RowsPerPage; rem > 0 {
		return t.flushPage(fullPages, rem*record.RowSize)
	}
	return nil
}

// flushPage skips pages never loaded in this session: their bytes on disk
// are already current.
func (t *Table) flushPage(pageNum, size int) error {
	if !t.pager.IsResident(pageNum) {
		return nil
	}
	return t.pager.FlushPage(pageNum, size)
}

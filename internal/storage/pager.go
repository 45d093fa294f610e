package storage

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/tuannm99/novalite/internal/alias/util"
)

// Pager owns the table file and keeps every page it has loaded in memory
// until the session ends. Nothing is evicted.
type Pager struct {
	file       *os.File              // Table file
	path       string                // Path used for logging
	fileLength int64                 // Size of the file observed at open time
	pages      [TableMaxPages][]byte // nil == not loaded yet
}

// OpenPager opens (or creates) the table file for read/write without truncating it.
func OpenPager(path string) (*Pager, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, FileMode0600)
	if err != nil {
		return nil, fmt.Errorf("%w: open table file: %w", ErrStorageIO, err)
	}

	info, err := file.Stat()
	if err != nil {
		util.CloseQuietly(file, path)
		return nil, fmt.Errorf("%w: stat table file: %w", ErrStorageIO, err)
	}

	return &Pager{
		file:       file,
		path:       path,
		fileLength: info.Size(),
	}, nil
}

// GetPage returns the resident buffer for pageNum, loading it from disk on the
// first access. The returned slice aliases the cache; callers must not keep it
// across other pager calls.
func (p *Pager) GetPage(pageNum int) ([]byte, error) {
	checkPageNum(pageNum)

	if page := p.pages[pageNum]; page != nil {
		return page, nil
	}

	// Cache miss: a zero page, with whatever the file holds for it copied
	// into the prefix. The last page on disk may be partial.
	page := make([]byte, PageSize)
	offset := int64(pageNum) * PageSize
	if offset < p.fileLength {
		n := min(int64(PageSize), p.fileLength-offset)
		if _, err := p.file.ReadAt(page[:n], offset); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: read page %d: %w", ErrStorageIO, pageNum, err)
		}
		slog.Debug("pager: page loaded", "file", p.path, "page", pageNum, "bytes", n)
	}

	p.pages[pageNum] = page
	return page, nil
}

// FlushPage writes the first size bytes of a resident page back to its offset.
// Only the live prefix of a partially filled page should be written.
func (p *Pager) FlushPage(pageNum int, size int) error {
	checkPageNum(pageNum)
	if size < 0 || size > PageSize {
		panic(fmt.Errorf("%w: flush size %d for page %d", ErrPageOutOfBounds, size, pageNum))
	}

	page := p.pages[pageNum]
	if page == nil {
		panic(fmt.Errorf("%w: %d", ErrPageNotLoaded, pageNum))
	}

	offset := int64(pageNum) * PageSize
	n, err := p.file.WriteAt(page[:size], offset)
	if err != nil {
		return fmt.Errorf("%w: write page %d: %w", ErrStorageIO, pageNum, err)
	}
	if n != size {
		return fmt.Errorf("%w: write page %d: %w", ErrStorageIO, pageNum, io.ErrShortWrite)
	}

	slog.Debug("pager: page flushed", "file", p.path, "page", pageNum, "bytes", size)
	return nil
}

// Sync commits the file contents to stable storage.
func (p *Pager) Sync() error {
	if err := p.file.Sync(); err != nil {
		return fmt.Errorf("%w: sync: %w", ErrStorageIO, err)
	}
	return nil
}

// Close closes the table file. Resident pages are not written; see FlushPage.
func (p *Pager) Close() error {
	if err := p.file.Close(); err != nil {
		return fmt.Errorf("%w: close: %w", ErrStorageIO, err)
	}
	return nil
}

// FileLength returns the file size observed when the pager was opened.
func (p *Pager) FileLength() int64 {
	return p.fileLength
}

func (p *Pager) IsResident(pageNum int) bool {
	checkPageNum(pageNum)
	return p.pages[pageNum] != nil
}

// ResidentPages returns the number of loaded pages.
func (p *Pager) ResidentPages() int {
	n := 0
	for _, page := range p.pages {
		if page != nil {
			n++
		}
	}
	return n
}

func checkPageNum(pageNum int) {
	if pageNum < 0 || pageNum >= TableMaxPages {
		panic(fmt.Errorf("%w: %d (max %d)", ErrPageOutOfBounds, pageNum, TableMaxPages))
	}
}

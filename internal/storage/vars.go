package storage

import (
	"errors"
)

const (
	OneKB = 1 << 10 // 1,024

	PageSize      = 4 * OneKB // 4,096 (4 KiB)
	TableMaxPages = 100       // pages per table file
)

const (
	FileMode0600 = 0o600 // rw-------
	FileMode0644 = 0o644
	FileMode0755 = 0o755
)

var (
	ErrStorageIO = errors.New("storage: I/O error")

	// contract violations; the pager panics with these wrapped
	ErrPageOutOfBounds = errors.New("storage: page number out of bounds")
	ErrPageNotLoaded   = errors.New("storage: flushed a never-loaded page")
)

package heap

import (
	"github.com/tuannm99/novalite/internal/record"
	"github.com/tuannm99/novalite/internal/storage"
)

// PageStats describes one live page of the table.
type PageStats struct {
	PageNum  int
	Rows     int
	Bytes    int // bytes written for this page on close
	Resident bool
}

type Stats struct {
	Path        string
	FileLength  int64 // at open time
	NumRows     int
	MaxRows     int
	RowsPerPage int
	RowSize     int
	PageSize    int
	Resident    int
	Pages       []PageStats
}

func (t *Table) Stats() Stats {
	st := Stats{
		Path:        t.Path,
		FileLength:  t.pager.FileLength(),
		NumRows:     t.numRows,
		MaxRows:     MaxRows,
		RowsPerPage: RowsPerPage,
		RowSize:     record.RowSize,
		PageSize:    storage.PageSize,
		Resident:    t.pager.ResidentPages(),
	}

	for pageNum := 0; pageNum*RowsPerPage < t.numRows; pageNum++ {
		rows := min(RowsPerPage, t.numRows-pageNum*RowsPerPage)
		bytes := rows * record.RowSize
		if rows == RowsPerPage {
			bytes = storage.PageSize
		}
		st.Pages = append(st.Pages, PageStats{
			PageNum:  pageNum,
			Rows:     rows,
			Bytes:    bytes,
			Resident: t.pager.IsResident(pageNum),
		})
	}
	return st
}

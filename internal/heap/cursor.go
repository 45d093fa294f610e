package heap

import (
	"github.com/tuannm99/novalite/internal/record"
)

// Cursor walks the rows of a table forward, one pass only. Use it the way
// bufio.Scanner is used:
//
//	c := tbl.Start()
//	for c.Next() {
//		row := c.Row()
//	}
//	if err := c.Err(); err != nil { ... }
type Cursor struct {
	table      *Table
	rowNum     int
	endOfTable bool

	row record.Row
	cur int
	err error
}

// Start positions a cursor at the first row.
func (t *Table) Start() *Cursor {
	return &Cursor{
		table:      t,
		rowNum:     0,
		endOfTable: t.numRows == 0,
		cur:        -1,
	}
}

// End positions a cursor one past the last row, where the next row is appended.
func (t *Table) End() *Cursor {
	return &Cursor{
		table:      t,
		rowNum:     t.numRows,
		endOfTable: true,
		cur:        -1,
	}
}

// Value returns the slot of the row under the cursor.
func (c *Cursor) Value() ([]byte, error) {
	return c.table.RowSlot(c.rowNum)
}

func (c *Cursor) Advance() {
	c.rowNum++
	if c.rowNum >= c.table.numRows {
		c.endOfTable = true
	}
}

func (c *Cursor) EndOfTable() bool {
	return c.endOfTable
}

// Next decodes the row under the cursor and advances. It returns false at the
// end of the table or after an error.
func (c *Cursor) Next() bool {
	if c.endOfTable || c.err != nil {
		return false
	}

	slot, err := c.Value()
	if err != nil {
		c.err = err
		c.endOfTable = true
		return false
	}

	c.row = record.Deserialize(slot)
	c.cur = c.rowNum
	c.Advance()
	return true
}

// Row returns the row decoded by the last successful Next.
func (c *Cursor) Row() record.Row {
	return c.row
}

// RowNum returns the index of the row returned by Row, or -1 before the first Next.
func (c *Cursor) RowNum() int {
	return c.cur
}

func (c *Cursor) Err() error {
	return c.err
}

package executor

import (
	"fmt"
	"log/slog"

	"github.com/tuannm99/novalite/internal/heap"
	"github.com/tuannm99/novalite/internal/record"
	"github.com/tuannm99/novalite/internal/sql/parser"
)

// Columns of the single table, in storage order.
var Columns = []string{"id", "username", "email"}

// rowStore is a small seam for unit-testing Executor without a real table.
type rowStore interface {
	Insert(row record.Row) error
	Scan(fn func(rowNum int, row record.Row) error) error
}

var _ rowStore = (*heap.Table)(nil)

// Executor runs prepared statements against one table.
type Executor struct {
	store rowStore
}

func New(tbl *heap.Table) *Executor {
	return &Executor{store: tbl}
}

func newForTest(store rowStore) *Executor {
	return &Executor{store: store}
}

// ExecString prepares input and executes it.
func (e *Executor) ExecString(input string) (*Result, error) {
	stmt, err := parser.Parse(input)
	if err != nil {
		return nil, err
	}
	return e.Execute(stmt)
}

func (e *Executor) Execute(stmt parser.Statement) (*Result, error) {
	switch s := stmt.(type) {
	case *parser.InsertStmt:
		return e.execInsert(s)
	case *parser.SelectStmt:
		return e.execSelect()
	default:
		return nil, fmt.Errorf("executor: unsupported statement type %T", stmt)
	}
}

func (e *Executor) execInsert(s *parser.InsertStmt) (*Result, error) {
	row, err := record.NewRow(s.ID, s.Username, s.Email)
	if err != nil {
		return nil, err
	}
	if err := e.store.Insert(row); err != nil {
		return nil, err
	}

	slog.Debug("executor: row inserted", "id", s.ID)
	return &Result{AffectedRows: 1}, nil
}

func (e *Executor) execSelect() (*Result, error) {
	res := &Result{Columns: Columns}

	err := e.store.Scan(func(_ int, row record.Row) error {
		res.Rows = append(res.Rows, []any{row.ID, row.UsernameString(), row.EmailString()})
		return nil
	})
	if err != nil {
		return nil, err
	}

	res.AffectedRows = int64(len(res.Rows))
	return res, nil
}

package repl

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/chzyer/readline"

	"github.com/tuannm99/novalite/internal/heap"
	"github.com/tuannm99/novalite/internal/inspect"
	"github.com/tuannm99/novalite/internal/record"
	"github.com/tuannm99/novalite/internal/sql/executor"
	"github.com/tuannm99/novalite/internal/sql/parser"
)

// LineReader is the part of *readline.Instance the loop needs.
type LineReader interface {
	Readline() (string, error)
	Close() error
}

var _ LineReader = (*readline.Instance)(nil)

const helpText = `meta commands:
  .exit      flush the table and quit
  .pages     show the page layout
  .help      show help

statements:
  insert <id> <username> <email>
  select`

// NewReadline builds the interactive line reader. An empty historyFile
// keeps history in memory only.
func NewReadline(prompt, historyFile string) (*readline.Instance, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       ".exit",
	})
	if err != nil {
		return nil, fmt.Errorf("readline: %w", err)
	}
	return rl, nil
}

// REPL reads statements line by line and runs them against one table.
// The table is closed when the loop ends.
type REPL struct {
	tbl    *heap.Table
	exec   *executor.Executor
	in     LineReader
	out    io.Writer
	logger *slog.Logger
}

func New(tbl *heap.Table, in LineReader, out io.Writer, logger *slog.Logger) *REPL {
	if logger == nil {
		logger = slog.Default()
	}
	return &REPL{
		tbl:    tbl,
		exec:   executor.New(tbl),
		in:     in,
		out:    out,
		logger: logger,
	}
}

// Run loops until .exit or end of input, then closes the table.
func (r *REPL) Run() error {
	for {
		line, err := r.in.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return r.close()
		}
		if err != nil {
			return errors.Join(fmt.Errorf("read input: %w", err), r.close())
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if meta, ok := parser.ParseMeta(line); ok {
			if meta == parser.MetaExit {
				return r.close()
			}
			r.runMeta(meta, line)
			continue
		}

		r.runStatement(line)
	}
}

func (r *REPL) runMeta(meta parser.MetaCommand, line string) {
	switch meta {
	case parser.MetaPages:
		if err := inspect.Render(r.out, r.tbl.Stats()); err != nil {
			r.logger.Warn("repl: render pages", "err", err)
		}
	case parser.MetaHelp:
		r.println(helpText)
	default:
		r.println(fmt.Sprintf("Unrecognized command: %s.", line))
	}
}

func (r *REPL) runStatement(line string) {
	res, err := r.exec.ExecString(line)
	if err != nil {
		r.logger.Debug("repl: statement failed", "input", line, "err", err)
		r.println(message(err))
		return
	}

	for _, row := range res.Rows {
		r.println(fmt.Sprintf("(%v, %v, %v)", row[0], row[1], row[2]))
	}
	r.println("Executed.")
}

func (r *REPL) close() error {
	if err := r.in.Close(); err != nil {
		r.logger.Warn("repl: close input", "err", err)
	}
	return r.tbl.Close()
}

func (r *REPL) println(s string) {
	if _, err := fmt.Fprintln(r.out, s); err != nil {
		r.logger.Warn("repl: write output", "err", err)
	}
}

// message maps an error to the line printed at the prompt.
func message(err error) string {
	switch {
	case errors.Is(err, parser.ErrSyntax):
		return "Syntax error: Expected 'insert <id> <username> <email>'"
	case errors.Is(err, parser.ErrInvalidID):
		return "ID must be positive."
	case errors.Is(err, parser.ErrStringTooLong), errors.Is(err, record.ErrStringTooLong):
		return "String is too long."
	case errors.Is(err, parser.ErrUnrecognizedStatement):
		return "Unrecognized statement."
	case errors.Is(err, heap.ErrTableFull):
		return "Error: Table full."
	default:
		return fmt.Sprintf("IO Error: %v", err)
	}
}

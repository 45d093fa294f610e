package parser

import (
	"errors"
	"strconv"
	"strings"

	"github.com/tuannm99/novalite/internal/record"
)

var (
	ErrSyntax                = errors.New("parser: expected 'insert <id> <username> <email>'")
	ErrInvalidID             = errors.New("parser: id must be a non-negative 32-bit integer")
	ErrStringTooLong         = errors.New("parser: string is too long")
	ErrUnrecognizedStatement = errors.New("parser: unrecognized statement")
)

// ParseMeta reports whether input is a meta command and which one.
func ParseMeta(input string) (MetaCommand, bool) {
	s := strings.TrimSpace(input)
	if !strings.HasPrefix(s, ".") {
		return 0, false
	}

	switch s {
	case ".exit":
		return MetaExit, true
	case ".pages":
		return MetaPages, true
	case ".help":
		return MetaHelp, true
	default:
		return MetaUnrecognized, true
	}
}

// Parse prepares a single statement:
//
//	insert <id> <username> <email>
//	select
func Parse(input string) (Statement, error) {
	s := strings.TrimSpace(input)

	switch {
	case strings.HasPrefix(s, "select"):
		return &SelectStmt{}, nil
	case strings.HasPrefix(s, "insert"):
		return parseInsert(s)
	default:
		return nil, ErrUnrecognizedStatement
	}
}

func parseInsert(s string) (*InsertStmt, error) {
	parts := strings.Fields(s)
	if len(parts) != 4 {
		return nil, ErrSyntax
	}

	id, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return nil, ErrInvalidID
	}

	username, email := parts[2], parts[3]
	if len(username) > record.UsernameSize || len(email) > record.EmailSize {
		return nil, ErrStringTooLong
	}

	return &InsertStmt{
		ID:       uint32(id),
		Username: username,
		Email:    email,
	}, nil
}

package parser

// Statement is the root interface for all statements.
type Statement interface {
	stmtNode()
}

// ----- INSERT -----
type InsertStmt struct {
	ID       uint32
	Username string
	Email    string
}

func (*InsertStmt) stmtNode() {}

// ----- SELECT -----
// SelectStmt scans every row; there is no projection or filter.
type SelectStmt struct{}

func (*SelectStmt) stmtNode() {}

// MetaCommand is a non-SQL directive such as ".exit".
type MetaCommand int

const (
	MetaUnrecognized MetaCommand = iota
	MetaExit
	MetaPages
	MetaHelp
)

func (m MetaCommand) String() string {
	switch m {
	case MetaExit:
		return ".exit"
	case MetaPages:
		return ".pages"
	case MetaHelp:
		return ".help"
	default:
		return "unrecognized"
	}
}

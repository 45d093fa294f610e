package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/novalite/internal/record"
)

func TestParse_Select(t *testing.T) {
	stmt, err := Parse("select")
	require.NoError(t, err)

	_, ok := stmt.(*SelectStmt)
	require.True(t, ok, "want *SelectStmt, got %T", stmt)
}

func TestParse_Insert(t *testing.T) {
	stmt, err := Parse("insert 1 user1 person1@example.com")
	require.NoError(t, err)

	s, ok := stmt.(*InsertStmt)
	require.True(t, ok, "want *InsertStmt, got %T", stmt)
	assert.Equal(t, uint32(1), s.ID)
	assert.Equal(t, "user1", s.Username)
	assert.Equal(t, "person1@example.com", s.Email)
}

func TestParse_Insert_ExtraWhitespace(t *testing.T) {
	stmt, err := Parse("  insert   42  bob   bob@example.com  ")
	require.NoError(t, err)

	s := stmt.(*InsertStmt)
	assert.Equal(t, uint32(42), s.ID)
	assert.Equal(t, "bob", s.Username)
}

func TestParse_Insert_WrongArity(t *testing.T) {
	for _, in := range []string{
		"insert",
		"insert 1 user1",
		"insert 1 user1 a@b.c extra",
	} {
		_, err := Parse(in)
		require.ErrorIs(t, err, ErrSyntax, in)
	}
}

func TestParse_Insert_InvalidID(t *testing.T) {
	for _, in := range []string{
		"insert -1 user1 person1@example.com",
		"insert abc user1 person1@example.com",
		"insert 4294967296 user1 person1@example.com",
	} {
		_, err := Parse(in)
		require.ErrorIs(t, err, ErrInvalidID, in)
	}
}

func TestParse_Insert_MaxID(t *testing.T) {
	stmt, err := Parse("insert 4294967295 u e")
	require.NoError(t, err)
	assert.Equal(t, ^uint32(0), stmt.(*InsertStmt).ID)
}

func TestParse_Insert_StringLengths(t *testing.T) {
	longUser := strings.Repeat("a", record.UsernameSize)
	longEmail := strings.Repeat("a", record.EmailSize)

	_, err := Parse("insert 1 " + longUser + " " + longEmail)
	require.NoError(t, err)

	_, err = Parse("insert 1 " + longUser + "a " + longEmail)
	require.ErrorIs(t, err, ErrStringTooLong)

	_, err = Parse("insert 1 " + longUser + " " + longEmail + "a")
	require.ErrorIs(t, err, ErrStringTooLong)
}

func TestParse_Unrecognized(t *testing.T) {
	_, err := Parse("update users set x = 1")
	require.ErrorIs(t, err, ErrUnrecognizedStatement)

	_, err = Parse("")
	require.ErrorIs(t, err, ErrUnrecognizedStatement)
}

func TestParseMeta(t *testing.T) {
	cases := map[string]MetaCommand{
		".exit":  MetaExit,
		".pages": MetaPages,
		".help":  MetaHelp,
		".foo":   MetaUnrecognized,
		".":      MetaUnrecognized,
	}
	for in, want := range cases {
		got, ok := ParseMeta(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseMeta("select")
	assert.False(t, ok)
}

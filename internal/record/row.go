package record

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/tuannm99/novalite/internal/alias/bx"
)

// On-disk row layout:
//
//	| id (u32 LE) | username (32B, zero padded) | email (255B, zero padded) |
const (
	IDSize       = 4
	UsernameSize = 32
	EmailSize    = 255

	IDOffset       = 0
	UsernameOffset = IDOffset + IDSize
	EmailOffset    = UsernameOffset + UsernameSize

	RowSize = IDSize + UsernameSize + EmailSize
)

var ErrStringTooLong = errors.New("record: string is too long")

// Row is the single record shape of a table.
type Row struct {
	ID       uint32
	Username [UsernameSize]byte
	Email    [EmailSize]byte
}

// NewRow builds a row from text fields, rejecting values wider than their column.
func NewRow(id uint32, username, email string) (Row, error) {
	var r Row
	if len(username) > UsernameSize {
		return r, fmt.Errorf("%w: username has %d bytes (max %d)", ErrStringTooLong, len(username), UsernameSize)
	}
	if len(email) > EmailSize {
		return r, fmt.Errorf("%w: email has %d bytes (max %d)", ErrStringTooLong, len(email), EmailSize)
	}

	r.ID = id
	copy(r.Username[:], username)
	copy(r.Email[:], email)
	return r, nil
}

// Serialize writes exactly RowSize bytes into dst.
func (r Row) Serialize(dst []byte) {
	if len(dst) < RowSize {
		panic(fmt.Sprintf("record: serialize into %d bytes, need %d", len(dst), RowSize))
	}
	bx.PutU32At(dst, IDOffset, r.ID)
	copy(dst[UsernameOffset:UsernameOffset+UsernameSize], r.Username[:])
	copy(dst[EmailOffset:EmailOffset+EmailSize], r.Email[:])
}

// Deserialize copies a row out of src; the result does not alias src.
func Deserialize(src []byte) Row {
	if len(src) < RowSize {
		panic(fmt.Sprintf("record: deserialize from %d bytes, need %d", len(src), RowSize))
	}
	var r Row
	r.ID = bx.U32At(src, IDOffset)
	copy(r.Username[:], src[UsernameOffset:UsernameOffset+UsernameSize])
	copy(r.Email[:], src[EmailOffset:EmailOffset+EmailSize])
	return r
}

func (r Row) UsernameString() string { return fieldString(r.Username[:]) }
func (r Row) EmailString() string    { return fieldString(r.Email[:]) }

// String renders the row as "(id, username, email)".
func (r Row) String() string {
	return fmt.Sprintf("(%d, %s, %s)", r.ID, r.UsernameString(), r.EmailString())
}

// fieldString cuts a padded field at its first NUL. Bytes that are not valid
// UTF-8 render as an empty string.
func fieldString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	if !utf8.Valid(b) {
		return ""
	}
	return string(b)
}

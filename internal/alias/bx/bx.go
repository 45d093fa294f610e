// stand for bytes helper
package bx

import "encoding/binary"

// LE is the byte order of every integer stored in a table file.
var LE = binary.LittleEndian

func U32(b []byte) uint32       { return LE.Uint32(b) }
func PutU32(b []byte, v uint32) { LE.PutUint32(b, v) }

// --- At (offset) ---
func U32At(b []byte, off int) uint32       { return U32(b[off:]) }
func PutU32At(b []byte, off int, v uint32) { PutU32(b[off:], v) }

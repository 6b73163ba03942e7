package model

import "fmt"

// Location is an immutable value identifying a byte/line range inside a
// source file. Bytes are authoritative for exact range matching; line/column
// are 1-based/0-based respectively per the wire schema.
type Location struct {
	FilePath    string
	StartLine   int
	StartCol    int
	EndLine     int
	EndCol      int
	StartByte   int
	EndByte     int
}

// Valid reports whether l satisfies the location well-formedness invariant:
// StartByte <= EndByte and (StartLine, StartCol) <= (EndLine, EndCol)
// lexicographically.
func (l Location) Valid() bool {
	if l.StartByte > l.EndByte {
		return false
	}
	if l.StartLine > l.EndLine {
		return false
	}
	if l.StartLine == l.EndLine && l.StartCol > l.EndCol {
		return false
	}
	return true
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d-%d:%d", l.FilePath, l.StartLine, l.StartCol, l.EndLine, l.EndCol)
}

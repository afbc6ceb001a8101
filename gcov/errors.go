package gcov

import "fmt"

// BadMagicError is returned when a notes or data file's header does
// not begin with the expected magic number.
type BadMagicError struct {
	Path     string
	Found    uint32
	Expected uint32
}

func (e *BadMagicError) Error() string {
	return fmt.Sprintf("%s: bad magic number, found %#x, expected %#x", e.Path, e.Found, e.Expected)
}

// VersionMismatchError is returned when a data file's version does
// not match the version recorded by its companion notes file.
type VersionMismatchError struct {
	Path, Found, Expected string
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("%s: version mismatch, found %q, expected %q", e.Path, e.Found, e.Expected)
}

// StampMismatchError is returned when a data file's stamp does not
// match the stamp recorded by its companion notes file.
type StampMismatchError struct {
	Path, Found, Expected string
}

func (e *StampMismatchError) Error() string {
	return fmt.Sprintf("%s: stamp mismatch, found %q, expected %q", e.Path, e.Found, e.Expected)
}

// TruncatedRecordError is returned when the 12-byte file header, a
// record's payload, or the fields of a FUNCTION record run past the
// end of the available bytes. A trailing zero tag, or a final record
// header cut short to fewer than 8 bytes (which covers the data-file
// NUL padding quirk), is tolerated silently and does not produce this
// error.
type TruncatedRecordError struct {
	Path string
	Tag  uint32
}

func (e *TruncatedRecordError) Error() string {
	return fmt.Sprintf("%s: truncated record (tag %#x)", e.Path, e.Tag)
}

// UnknownFunctionError is returned when a data file's FUNCTION record
// references an identifier that was never declared by the companion
// notes file.
type UnknownFunctionError struct {
	Path  string
	Ident uint32
}

func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("%s: data file references unknown function id %d", e.Path, e.Ident)
}

// CounterMismatchError is returned when a data file's COUNTERS record
// does not contain exactly twice as many words as there are
// non-computed arcs in the corresponding function.
type CounterMismatchError struct {
	Path      string
	FuncName  string
	Want, Got int
}

func (e *CounterMismatchError) Error() string {
	return fmt.Sprintf("%s: counter count mismatch in function %q: want %d words, got %d", e.Path, e.FuncName, e.Want, e.Got)
}

// UnsolvableGraphError is returned when the flow solver makes no
// progress on a pass while unsolved arcs or blocks remain. Dump holds
// a per-block, per-arc rendering of the graph's known/unsolved state
// at the point of failure (spec.md §4.4, "optionally dumping the
// graph for diagnosis"), for callers that want to log it.
type UnsolvableGraphError struct {
	FuncName     string
	Dump         string
	UnsolvedArcs int
	UnsolvedBBs  int
}

func (e *UnsolvableGraphError) Error() string {
	return fmt.Sprintf("function %q: unsolvable flow graph (%d arcs, %d blocks left unsolved)",
		e.FuncName, e.UnsolvedArcs, e.UnsolvedBBs)
}

// NegativeCountError is returned when flow-balance arithmetic on a
// solvable graph produces a negative intermediate or final count.
type NegativeCountError struct {
	FuncName string
	Block    int
	Value    int64
}

func (e *NegativeCountError) Error() string {
	return fmt.Sprintf("function %q: negative inferred count %d at block %d", e.FuncName, e.Value, e.Block)
}

package ziwei

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSymbol is returned when a stem or branch symbol is not
	// one of the 10 stems or 12 branches.
	ErrInvalidSymbol = errors.New("invalid stem or branch symbol")

	// ErrInvalidInput is returned when birth facts are out of range.
	ErrInvalidInput = errors.New("invalid birth facts")

	// ErrLookupMiss signals a key outside a table's closed domain. The
	// tables are total over their documented domains, so this always
	// indicates a table defect rather than bad user input.
	ErrLookupMiss = errors.New("lookup table miss")
)

// lookupMiss is the panic value raised by table lookups. ComputeChart
// recovers it and returns the wrapped error.
type lookupMiss struct {
	err error
}

func missf(table string, key any) lookupMiss {
	return lookupMiss{err: fmt.Errorf("%w: %s has no entry for %v", ErrLookupMiss, table, key)}
}

// recoverLookup converts a lookupMiss panic into an error. Any other
// panic is re-raised.
func recoverLookup(err *error) {
	if r := recover(); r != nil {
		miss, ok := r.(lookupMiss)
		if !ok {
			panic(r)
		}
		*err = miss.err
	}
}

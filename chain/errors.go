package chain

import (
	"errors"
	"fmt"
)

var (
	// ErrChainCall marks every transport or contract-call failure.
	ErrChainCall = errors.New("chain call failed")

	// ErrReverted is returned by WaitMined for a failed transaction.
	ErrReverted = errors.New("transaction reverted")

	// ErrReadOnly is returned by write methods of a client without a key.
	ErrReadOnly = errors.New("client has no signing key")

	// ErrCatalogMismatch is returned by VerifyCatalog.
	ErrCatalogMismatch = errors.New("catalog does not match contract")
)

// CallError wraps a failed chain operation with its name.
type CallError struct {
	Op  string
	Err error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrChainCall, e.Op, e.Err)
}

// Unwrap exposes the underlying error.
func (e *CallError) Unwrap() error {
	return e.Err
}

// Is makes every CallError match ErrChainCall.
func (e *CallError) Is(target error) bool {
	return target == ErrChainCall
}

func callErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var ce *CallError
	if errors.As(err, &ce) {
		return err
	}
	return &CallError{Op: op, Err: err}
}

package bank

import "errors"

var (
	// ErrInvalidSize indicates a grid size or field count out of range.
	ErrInvalidSize = errors.New("bank: invalid size")
	// ErrInvalidSymbol indicates an unexpected byte during mirror loading.
	ErrInvalidSymbol = errors.New("bank: invalid mirror symbol")
	// ErrIncomplete indicates the definition stream ended early.
	ErrIncomplete = errors.New("bank: incomplete definition")
)

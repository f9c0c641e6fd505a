package cipher

import "errors"

// Sentinel errors for cipher sessions.
var (
	// ErrNilBank is returned when NewSession gets a nil bank.
	ErrNilBank = errors.New("cipher: bank is nil")
	// ErrBankNotLinked is returned when the bank was not validated and linked.
	ErrBankNotLinked = errors.New("cipher: bank is not linked")
	// ErrCharacterNotFound is returned when a byte is absent from the
	// active field's perimeter. It is fatal for the stream.
	ErrCharacterNotFound = errors.New("cipher: character not found in perimeter")
	// ErrInvalidState is returned when a snapshot cannot be restored.
	ErrInvalidState = errors.New("cipher: invalid state snapshot")
)

package network

import "github.com/pkg/errors"

var (
	errEmptyResponse = errors.New("empty response")
	errInvalidResult = errors.New("invalid result")

	// ErrTxReverted is returned when a mined transaction has a failed receipt
	ErrTxReverted = errors.New("transaction reverted")
)

package session

import (
	"github.com/DrDelphi/LottoBot/utils"
	"github.com/pkg/errors"
)

// environment errors: the session could not be established at all
var (
	ErrNoWallet     = errors.New("no wallet provider available")
	ErrWrongNetwork = errors.New("wrong network")
)

var (
	ErrNotConnected    = errors.New("wallet not connected")
	ErrInvalidAmount   = utils.ErrInvalidAmount
	ErrInFlight        = errors.New("action already in progress")
	ErrNotOwner        = errors.New("connected account is not the lotto owner")
	ErrPartialSnapshot = errors.New("lotto snapshot partially refreshed")
)

// IsEnvironment - returns true for errors caused by a missing wallet or a wrong network
func IsEnvironment(err error) bool {
	return errors.Is(err, ErrNoWallet) || errors.Is(err, ErrWrongNetwork)
}

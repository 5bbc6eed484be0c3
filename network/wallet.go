package network

import (
	"context"
	"crypto/ecdsa"
	"math/big"

	"github.com/DrDelphi/LottoBot/session"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Wallet - a seed derived account served through a node backend. It is the
// wallet provider of a player's session.
type Wallet struct {
	backend Backend
	key     *ecdsa.PrivateKey
	address common.Address
}

var _ session.Provider = (*Wallet)(nil)

// NewWallet - creates a wallet signing with key through backend
func NewWallet(backend Backend, key *ecdsa.PrivateKey) *Wallet {
	return &Wallet{
		backend: backend,
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}
}

// RequestAccount - returns the wallet address
func (w *Wallet) RequestAccount(_ context.Context) (common.Address, error) {
	return w.address, nil
}

// ChainID - returns the chain identifier reported by the node
func (w *Wallet) ChainID(ctx context.Context) (*big.Int, error) {
	chainID, err := w.backend.ChainID(ctx)
	if err != nil {
		log.Error("can not get chain id", "error", err)
		return nil, err
	}

	return chainID, nil
}

// BalanceAt - returns the latest native balance of account, in wei
func (w *Wallet) BalanceAt(ctx context.Context, account common.Address) (*big.Int, error) {
	balance, err := w.backend.BalanceAt(ctx, account, nil)
	if err != nil {
		log.Error("getBalance", "address", account.Hex(), "error", err)
		return nil, err
	}

	return balance, nil
}

// BindLotto - binds the lotto contract to the wallet's key
func (w *Wallet) BindLotto(contract common.Address, chainID *big.Int) (session.Lotto, error) {
	return NewLotto(contract, w.backend, w.key, chainID)
}

package network

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// LottoABI describes the subset of the lotto contract used by the bot
const LottoABI = `[
	{"type":"function","name":"getBalance","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getPlayers","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address[]"}]},
	{"type":"function","name":"lottoId","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getWinnerByLotto","stateMutability":"view","inputs":[{"name":"lotto","type":"uint256"}],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"owner","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"enter","stateMutability":"payable","inputs":[],"outputs":[]},
	{"type":"function","name":"pickWinner","stateMutability":"nonpayable","inputs":[],"outputs":[]}
]`

var parsedLottoABI = mustParseABI(LottoABI)

func mustParseABI(definition string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(definition))
	if err != nil {
		panic(err)
	}

	return parsed
}

// Backend - the node capabilities needed to read the lotto contract and to
// send transactions to it
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	ChainID(ctx context.Context) (*big.Int, error)
}

// Lotto - contract handle bound to a signer
type Lotto struct {
	address  common.Address
	contract *bind.BoundContract
	backend  Backend
	key      *ecdsa.PrivateKey
	from     common.Address
	chainID  *big.Int
}

// NewLotto - binds the lotto contract at address to the given signing key
func NewLotto(address common.Address, backend Backend, key *ecdsa.PrivateKey, chainID *big.Int) (*Lotto, error) {
	if backend == nil || key == nil || chainID == nil {
		return nil, errors.New("lotto binding needs a backend, a key and a chain id")
	}

	return &Lotto{
		address:  address,
		contract: bind.NewBoundContract(address, parsedLottoABI, backend, backend, backend),
		backend:  backend,
		key:      key,
		from:     crypto.PubkeyToAddress(key.PublicKey),
		chainID:  new(big.Int).Set(chainID),
	}, nil
}

// Address - returns the contract address
func (l *Lotto) Address() common.Address {
	return l.address
}

func (l *Lotto) call(ctx context.Context, method string, params ...interface{}) ([]interface{}, error) {
	var out []interface{}
	err := l.contract.Call(&bind.CallOpts{Context: ctx, From: l.from}, &out, method, params...)
	if err != nil {
		log.Error("contract call", "function", method, "args", params, "error", err)
		return nil, errors.Wrapf(err, "call %s", method)
	}

	if len(out) == 0 {
		return nil, errEmptyResponse
	}

	return out, nil
}

func (l *Lotto) getBigInt(ctx context.Context, method string, params ...interface{}) (*big.Int, error) {
	out, err := l.call(ctx, method, params...)
	if err != nil {
		return nil, err
	}

	value, ok := out[0].(*big.Int)
	if !ok {
		return nil, errors.Wrapf(errInvalidResult, "%s returned %T", method, out[0])
	}

	return value, nil
}

func (l *Lotto) getAddress(ctx context.Context, method string, params ...interface{}) (common.Address, error) {
	out, err := l.call(ctx, method, params...)
	if err != nil {
		return common.Address{}, err
	}

	address, ok := out[0].(common.Address)
	if !ok {
		return common.Address{}, errors.Wrapf(errInvalidResult, "%s returned %T", method, out[0])
	}

	return address, nil
}

func (l *Lotto) GetBalance(ctx context.Context) (*big.Int, error) {
	return l.getBigInt(ctx, "getBalance")
}

func (l *Lotto) GetPlayers(ctx context.Context) ([]common.Address, error) {
	out, err := l.call(ctx, "getPlayers")
	if err != nil {
		return nil, err
	}

	players, ok := out[0].([]common.Address)
	if !ok {
		return nil, errors.Wrapf(errInvalidResult, "getPlayers returned %T", out[0])
	}

	return players, nil
}

func (l *Lotto) LottoID(ctx context.Context) (*big.Int, error) {
	return l.getBigInt(ctx, "lottoId")
}

func (l *Lotto) GetWinnerByLotto(ctx context.Context, lottoID *big.Int) (common.Address, error) {
	return l.getAddress(ctx, "getWinnerByLotto", lottoID)
}

func (l *Lotto) Owner(ctx context.Context) (common.Address, error) {
	return l.getAddress(ctx, "owner")
}

// Enter - sends an entry carrying value wei and waits until it is mined
func (l *Lotto) Enter(ctx context.Context, value *big.Int) (*types.Receipt, error) {
	return l.transact(ctx, value, "enter")
}

// PickWinner - asks the contract to draw the current round and waits until
// the transaction is mined
func (l *Lotto) PickWinner(ctx context.Context) (*types.Receipt, error) {
	return l.transact(ctx, nil, "pickWinner")
}

func (l *Lotto) transact(ctx context.Context, value *big.Int, method string, params ...interface{}) (*types.Receipt, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(l.key, l.chainID)
	if err != nil {
		log.Error("unable to create transactor", "error", err)
		return nil, err
	}
	opts.Context = ctx
	opts.Value = value

	tx, err := l.contract.Transact(opts, method, params...)
	if err != nil {
		log.Error("unable to send transaction", "function", method, "from", l.from.Hex(), "error", err)
		return nil, err
	}
	log.Info("transaction sent", "function", method, "hash", tx.Hash().Hex(), "value", value)

	receipt, err := bind.WaitMined(ctx, l.backend, tx)
	if err != nil {
		log.Error("waiting for transaction", "hash", tx.Hash().Hex(), "error", err)
		return nil, errors.Wrapf(err, "wait for %s", tx.Hash().Hex())
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		log.Warn("transaction reverted", "function", method, "hash", tx.Hash().Hex())
		return receipt, errors.Wrapf(ErrTxReverted, "%s in tx %s", method, tx.Hash().Hex())
	}

	return receipt, nil
}

package network

import (
	"sync"

	"github.com/DrDelphi/LottoBot/data"
	"github.com/DrDelphi/LottoBot/session"
	"github.com/DrDelphi/LottoBot/utils"
	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
)

var log = logger.GetOrCreate("network")

// NetworkManager - holds the required fields of a network manager
type NetworkManager struct {
	cfg     *data.AppConfig
	backend Backend
	client  *ethclient.Client

	mut       sync.Mutex
	addresses map[int64]string
}

// NewNetworkManager - creates a new NetworkManager object. Without an RPC
// endpoint the manager still works but hands out no wallets.
func NewNetworkManager(cfg *data.AppConfig) (*NetworkManager, error) {
	if !common.IsHexAddress(cfg.ContractAddress) {
		return nil, errors.Errorf("invalid contract address %q", cfg.ContractAddress)
	}

	nm := &NetworkManager{
		cfg:       cfg,
		addresses: make(map[int64]string),
	}

	if cfg.Network.RPC == "" {
		log.Warn("no rpc endpoint configured, wallets are disabled")
		return nm, nil
	}

	client, err := ethclient.Dial(cfg.Network.RPC)
	if err != nil {
		log.Error("can not dial rpc endpoint", "rpc", cfg.Network.RPC, "error", err)
		return nil, err
	}
	nm.client = client
	nm.backend = client

	return nm, nil
}

// NewNetworkManagerWithBackend - creates a NetworkManager over an existing backend
func NewNetworkManagerWithBackend(cfg *data.AppConfig, backend Backend) (*NetworkManager, error) {
	if !common.IsHexAddress(cfg.ContractAddress) {
		return nil, errors.Errorf("invalid contract address %q", cfg.ContractAddress)
	}

	return &NetworkManager{
		cfg:       cfg,
		backend:   backend,
		addresses: make(map[int64]string),
	}, nil
}

// SessionConfig - returns the parameters shared by all player sessions
func (nm *NetworkManager) SessionConfig() session.Config {
	return session.Config{
		ContractAddress: common.HexToAddress(nm.cfg.ContractAddress),
		ChainID:         nm.cfg.Network.ChainID,
		Decimals:        nm.cfg.Network.Decimals,
		FirstRoundID:    nm.cfg.Network.FirstRoundID,
	}
}

// Provider - returns the wallet provider of a player, or nil when no wallet
// can be offered (no rpc endpoint, no seed or a broken seed)
func (nm *NetworkManager) Provider(userID int64) session.Provider {
	if nm.backend == nil || nm.cfg.Seedphrase == "" {
		return nil
	}

	pk, err := utils.GetPrivateKeyFromSeed(nm.cfg.Seedphrase, userID)
	if err != nil {
		log.Error("can not derive wallet", "user", userID, "error", err)
		return nil
	}

	return NewWallet(nm.backend, pk)
}

// WalletAddress - returns the address of a player's wallet
func (nm *NetworkManager) WalletAddress(userID int64) (string, error) {
	nm.mut.Lock()
	defer nm.mut.Unlock()

	if address, ok := nm.addresses[userID]; ok {
		return address, nil
	}

	if nm.cfg.Seedphrase == "" {
		return "", errors.New("no seed phrase configured")
	}

	pk, err := utils.GetPrivateKeyFromSeed(nm.cfg.Seedphrase, userID)
	if err != nil {
		return "", err
	}

	address := utils.GetAddressFromPrivateKey(pk)
	nm.addresses[userID] = address

	return address, nil
}

// Close - closes the rpc connection
func (nm *NetworkManager) Close() {
	if nm.client != nil {
		nm.client.Close()
	}
}

package session

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/DrDelphi/LottoBot/data"
	"github.com/DrDelphi/LottoBot/utils"
	logger "github.com/ElrondNetwork/elrond-go-logger"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
)

var log = logger.GetOrCreate("session")

// State of a session's wallet connection
type State int32

const (
	Disconnected State = iota
	Connecting
	Connected
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "unknown"
	}
}

type action int

const (
	actionConnect action = iota
	actionEnter
	actionPickWinner
)

// Provider grants access to an account and its signing capability
type Provider interface {
	RequestAccount(ctx context.Context) (common.Address, error)
	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address) (*big.Int, error)
	BindLotto(contract common.Address, chainID *big.Int) (Lotto, error)
}

// Lotto is the contract handle used for every read and write of a connection
type Lotto interface {
	GetBalance(ctx context.Context) (*big.Int, error)
	GetPlayers(ctx context.Context) ([]common.Address, error)
	LottoID(ctx context.Context) (*big.Int, error)
	GetWinnerByLotto(ctx context.Context, lottoID *big.Int) (common.Address, error)
	Owner(ctx context.Context) (common.Address, error)
	Enter(ctx context.Context, value *big.Int) (*types.Receipt, error)
	PickWinner(ctx context.Context) (*types.Receipt, error)
}

// Config - the fixed parameters of every session
type Config struct {
	ContractAddress common.Address
	ChainID         int64
	Decimals        int32
	// the previous round winner is only looked up for round ids above this one
	FirstRoundID uint64
}

// connection bundles everything that lives exactly as long as a connected wallet
type connection struct {
	account    common.Address
	wallet     data.WalletSession
	lotto      Lotto
	owner      common.Address
	ownerKnown bool
	snapshot   *data.LottoSnapshot
	// sequence number of the refresh that produced snapshot
	snapshotSeq uint64
}

func (c *connection) isOwner() bool {
	return c.ownerKnown && c.owner == c.account
}

// Session - a player's wallet connection to the lotto contract
type Session struct {
	cfg      Config
	provider Provider

	mu       sync.Mutex
	state    State
	conn     *connection
	inFlight map[action]bool
	// bumped by every Connect attempt and every Disconnect
	attempt    uint64
	refreshSeq uint64
}

// NewSession - creates a disconnected session. A nil provider means no wallet
// is available and every Connect fails with ErrNoWallet.
func NewSession(cfg Config, provider Provider) *Session {
	if cfg.Decimals == 0 {
		cfg.Decimals = utils.EtherDecimals
	}
	if cfg.FirstRoundID == 0 {
		cfg.FirstRoundID = utils.DefaultFirstRoundID
	}

	return &Session{
		cfg:      cfg,
		provider: provider,
		state:    Disconnected,
		inFlight: make(map[action]bool),
	}
}

// State - returns the current connection state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Wallet - returns the connected wallet, if any
func (s *Session) Wallet() (data.WalletSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Connected || s.conn == nil {
		return data.WalletSession{}, false
	}

	return s.conn.wallet, true
}

// Snapshot - returns a copy of the last lotto snapshot of the current connection
func (s *Session) Snapshot() (*data.LottoSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Connected || s.conn == nil || s.conn.snapshot == nil {
		return nil, false
	}

	return s.conn.snapshot.Clone(), true
}

// IsOwner - true when the connected account is the resolved contract owner
func (s *Session) IsOwner() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state == Connected && s.conn != nil && s.conn.isOwner()
}

// Connect - requests the wallet account, checks the network, binds the lotto
// contract and reads its state
func (s *Session) Connect(ctx context.Context) (data.WalletSession, error) {
	if err := s.begin(actionConnect); err != nil {
		return data.WalletSession{}, err
	}
	defer s.end(actionConnect)

	if s.provider == nil {
		connectFailure.Inc(1)
		s.Disconnect()
		log.Warn("connect aborted", "error", ErrNoWallet)
		return data.WalletSession{}, ErrNoWallet
	}

	s.mu.Lock()
	s.attempt++
	attempt := s.attempt
	s.state = Connecting
	s.conn = nil
	s.mu.Unlock()

	conn, err := s.connect(ctx)
	if err != nil {
		connectFailure.Inc(1)
		s.finishAttempt(attempt, nil)
		log.Error("connection failed", "error", err)
		return data.WalletSession{}, err
	}

	if !s.finishAttempt(attempt, conn) {
		connectFailure.Inc(1)
		log.Info("connection dropped, disconnected while connecting", "address", conn.account.Hex())
		return data.WalletSession{}, errors.Wrap(ErrNotConnected, "disconnected while connecting")
	}

	wallet := conn.wallet
	log.Info("wallet connected", "address", wallet.Address, "chainID", wallet.ChainID, "owner", conn.isOwner())
	connectSuccess.Inc(1)

	if err = s.Refresh(ctx); err != nil {
		log.Warn("initial refresh failed", "address", wallet.Address, "error", err)
	}

	return wallet, nil
}

func (s *Session) connect(ctx context.Context) (*connection, error) {
	account, err := s.provider.RequestAccount(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "request account")
	}

	chainID, err := s.provider.ChainID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "get network")
	}

	if chainID == nil || chainID.Cmp(big.NewInt(s.cfg.ChainID)) != 0 {
		return nil, errors.Wrapf(ErrWrongNetwork, "connected to chain %v, expected %v", chainID, s.cfg.ChainID)
	}

	balance, err := s.provider.BalanceAt(ctx, account)
	if err != nil {
		return nil, errors.Wrap(err, "get balance")
	}

	lotto, err := s.provider.BindLotto(s.cfg.ContractAddress, chainID)
	if err != nil {
		return nil, errors.Wrap(err, "bind lotto contract")
	}

	conn := &connection{
		account: account,
		wallet: data.WalletSession{
			Address: account.Hex(),
			Balance: utils.MoveDecimalLeft(balance, s.cfg.Decimals),
			ChainID: chainID.Int64(),
		},
		lotto: lotto,
	}

	owner, err := lotto.Owner(ctx)
	if err != nil {
		log.Warn("can not resolve lotto owner", "error", err)
	} else {
		conn.owner = owner
		conn.ownerKnown = true
	}

	return conn, nil
}

// Disconnect - drops the wallet, the contract handle and the snapshot. A
// Connect still in progress is abandoned.
func (s *Session) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attempt++
	s.setConnection(nil)
}

// finishAttempt installs conn (nil means failed) only if no Disconnect or newer
// Connect happened since the attempt started.
func (s *Session) finishAttempt(attempt uint64, conn *connection) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attempt != attempt {
		return false
	}
	s.setConnection(conn)

	return true
}

// setConnection must be called with s.mu held
func (s *Session) setConnection(conn *connection) {
	s.conn = conn
	if conn == nil {
		s.state = Disconnected
		return
	}
	s.state = Connected
}

// Refresh - reads the lotto state into a new snapshot. When a read fails the
// remaining reads are skipped and the snapshot is stored marked as partial.
// A refresh finishing after a later started one is not stored.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	conn := s.conn
	if s.state != Connected || conn == nil {
		s.mu.Unlock()
		return ErrNotConnected
	}
	prev := conn.snapshot.Clone()
	needOwner := !conn.ownerKnown
	s.refreshSeq++
	seq := s.refreshSeq
	s.mu.Unlock()

	start := time.Now()
	snapshot, err := s.readSnapshot(ctx, conn.lotto, prev)
	refreshTimer.UpdateSince(start)

	var owner common.Address
	var ownerErr error
	if needOwner {
		owner, ownerErr = conn.lotto.Owner(ctx)
		if ownerErr != nil {
			log.Warn("can not resolve lotto owner", "error", ownerErr)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != conn {
		log.Debug("discarding refresh of a closed connection")
		return ErrNotConnected
	}

	if seq > conn.snapshotSeq {
		conn.snapshot = snapshot
		conn.snapshotSeq = seq
	} else {
		log.Debug("discarding refresh older than the stored snapshot", "seq", seq, "stored", conn.snapshotSeq)
	}
	if needOwner && ownerErr == nil {
		conn.owner = owner
		conn.ownerKnown = true
	}

	return err
}

func (s *Session) readSnapshot(ctx context.Context, lotto Lotto, prev *data.LottoSnapshot) (*data.LottoSnapshot, error) {
	snapshot := prev
	if snapshot == nil {
		snapshot = &data.LottoSnapshot{}
	}

	fail := func(read string, err error) (*data.LottoSnapshot, error) {
		log.Error("refresh failed", "read", read, "error", err)
		refreshPartial.Inc(1)
		snapshot.Partial = true
		snapshot.FailedRead = read
		snapshot.UpdatedAt = time.Now()

		return snapshot, errors.Wrapf(ErrPartialSnapshot, "%s: %v", read, err)
	}

	balance, err := lotto.GetBalance(ctx)
	if err != nil {
		return fail("getBalance", err)
	}
	snapshot.Balance = utils.MoveDecimalLeft(balance, s.cfg.Decimals)

	players, err := lotto.GetPlayers(ctx)
	if err != nil {
		return fail("getPlayers", err)
	}
	snapshot.Players = make([]string, 0, len(players))
	for _, player := range players {
		snapshot.Players = append(snapshot.Players, player.Hex())
	}

	roundID, err := lotto.LottoID(ctx)
	if err == nil && !roundID.IsUint64() {
		err = errors.Errorf("round id %v out of range", roundID)
	}
	if err != nil {
		return fail("lottoId", err)
	}
	snapshot.CurrentRoundID = roundID.Uint64()

	lastWinner := ""
	if s.winnerLookupNeeded(snapshot.CurrentRoundID) {
		prevRound := new(big.Int).Sub(roundID, big.NewInt(1))
		winner, err := lotto.GetWinnerByLotto(ctx, prevRound)
		if err != nil {
			return fail("getWinnerByLotto", err)
		}
		if winner != (common.Address{}) {
			lastWinner = winner.Hex()
		}
	}
	snapshot.LastWinner = lastWinner

	snapshot.Partial = false
	snapshot.FailedRead = ""
	snapshot.UpdatedAt = time.Now()

	return snapshot, nil
}

func (s *Session) winnerLookupNeeded(roundID uint64) bool {
	return roundID > s.cfg.FirstRoundID
}

// Enter - sends an entry worth amount (display decimal) and waits for it to be mined
func (s *Session) Enter(ctx context.Context, amount string) (*types.Receipt, error) {
	value, err := utils.ParseAmount(amount, s.cfg.Decimals)
	if err != nil {
		rejectedActions.Inc(1)
		return nil, err
	}

	conn, err := s.beginOnConnection(actionEnter)
	if err != nil {
		return nil, err
	}
	defer s.end(actionEnter)

	receipt, err := conn.lotto.Enter(ctx, value)
	if err != nil {
		enterFailure.Inc(1)
		log.Error("entry failed", "address", conn.account.Hex(), "amount", amount, "error", err)
		return receipt, err
	}

	enterSuccess.Inc(1)
	log.Info("entered the lotto", "address", conn.account.Hex(), "amount", amount, "hash", receipt.TxHash.Hex())
	s.afterTransaction(ctx, conn)

	return receipt, nil
}

// PickWinner - asks the contract to draw the current round. Only the owner may do it.
func (s *Session) PickWinner(ctx context.Context) (*types.Receipt, error) {
	conn, err := s.beginOnConnection(actionPickWinner)
	if err != nil {
		return nil, err
	}
	defer s.end(actionPickWinner)

	s.mu.Lock()
	owner := conn.isOwner()
	s.mu.Unlock()
	if !owner {
		rejectedActions.Inc(1)
		return nil, ErrNotOwner
	}

	receipt, err := conn.lotto.PickWinner(ctx)
	if err != nil {
		pickWinnerFail.Inc(1)
		log.Error("pick winner failed", "address", conn.account.Hex(), "error", err)
		return receipt, err
	}

	pickWinnerCount.Inc(1)
	log.Info("winner picked", "hash", receipt.TxHash.Hex())
	s.afterTransaction(ctx, conn)

	return receipt, nil
}

func (s *Session) afterTransaction(ctx context.Context, conn *connection) {
	if err := s.Refresh(ctx); err != nil {
		log.Warn("refresh after transaction", "error", err)
	}

	balance, err := s.provider.BalanceAt(ctx, conn.account)
	if err != nil {
		log.Warn("can not read wallet balance", "address", conn.account.Hex(), "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != conn {
		return
	}
	conn.wallet = data.WalletSession{
		Address: conn.account.Hex(),
		Balance: utils.MoveDecimalLeft(balance, s.cfg.Decimals),
		ChainID: conn.wallet.ChainID,
	}
}

func (s *Session) begin(a action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight[a] {
		rejectedActions.Inc(1)
		return ErrInFlight
	}
	s.inFlight[a] = true

	return nil
}

func (s *Session) beginOnConnection(a action) (*connection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Connected || s.conn == nil {
		rejectedActions.Inc(1)
		return nil, ErrNotConnected
	}
	if s.inFlight[a] {
		rejectedActions.Inc(1)
		return nil, ErrInFlight
	}
	s.inFlight[a] = true

	return s.conn, nil
}

func (s *Session) end(a action) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.inFlight, a)
}

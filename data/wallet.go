package data

// WalletSession describes the connected account
type WalletSession struct {
	Address string
	Balance string
	ChainID int64
}
